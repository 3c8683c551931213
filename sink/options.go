package sink

import (
	"errors"

	"go.uber.org/zap"

	"github.com/spacemeshos/writestream/config"
)

type option struct {
	logger   *zap.Logger
	cfg      *config.Config
	borrowed bool
}

func defaultOption() *option {
	return &option{
		logger: zap.NewNop(),
		cfg:    config.DefaultConfig(),
	}
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}

	if o.cfg == nil {
		return errors.New("`cfg` is required")
	}

	return o.cfg.Validate()
}

func applyOptions(opts []OptionFunc) (*option, error) {
	options := defaultOption()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// OptionFunc is a function that sets an option for a sink.
type OptionFunc func(*option) error

// WithLogger sets the logger used by the sink.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(opts *option) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		opts.logger = logger
		return nil
	}
}

// WithConfig sets the file options used by a FileSink.
func WithConfig(cfg *config.Config) OptionFunc {
	return func(opts *option) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		opts.cfg = cfg
		return nil
	}
}

// WithBorrowed makes a StreamSink leave its handle open on Close.
func WithBorrowed() OptionFunc {
	return func(opts *option) error {
		opts.borrowed = true
		return nil
	}
}
