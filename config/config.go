package config

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/viper"

	"github.com/spacemeshos/writestream/shared"
)

const (
	MinBufferSize = 16
	MaxBufferSize = 64 * bytefmt.MEGABYTE
)

const (
	DefaultBufferSize   = "4K"
	DefaultMinFreeSpace = "0"
	DefaultFileMode     = shared.OwnerReadWrite
	DefaultAtomicCommit = false
)

// Config holds the options shared by the file backed sinks.
type Config struct {
	// BufferSize is the size of the write buffer placed in front of a file, in
	// human readable form (e.g. "64K").
	BufferSize string `mapstructure:"buffer-size"`

	// MinFreeSpace is the amount of free disk space required for a file to be opened.
	// "0" disables the check.
	MinFreeSpace string `mapstructure:"min-free-space"`

	FileMode     uint32 `mapstructure:"file-mode"`
	AtomicCommit bool   `mapstructure:"atomic-commit"`
}

func DefaultConfig() *Config {
	return &Config{
		BufferSize:   DefaultBufferSize,
		MinFreeSpace: DefaultMinFreeSpace,
		FileMode:     DefaultFileMode,
		AtomicCommit: DefaultAtomicCommit,
	}
}

func (cfg *Config) Validate() error {
	size, err := cfg.BufferBytes()
	if err != nil {
		return err
	}
	if size < MinBufferSize {
		return fmt.Errorf("invalid `BufferSize`; expected: >= %d, given: %d", MinBufferSize, size)
	}
	if size > MaxBufferSize {
		return fmt.Errorf("invalid `BufferSize`; expected: <= %d, given: %d", uint64(MaxBufferSize), size)
	}

	if _, err := cfg.MinFreeSpaceBytes(); err != nil {
		return err
	}

	if cfg.FileMode&^uint32(os.ModePerm) != 0 {
		return fmt.Errorf("invalid `FileMode`; expected: permission bits only, given: %#o", cfg.FileMode)
	}
	if cfg.FileMode&0o200 == 0 {
		return fmt.Errorf("invalid `FileMode`; expected: owner writable, given: %#o", cfg.FileMode)
	}

	return nil
}

// BufferBytes returns BufferSize in bytes.
func (cfg *Config) BufferBytes() (uint64, error) {
	return parseSize("BufferSize", cfg.BufferSize)
}

// MinFreeSpaceBytes returns MinFreeSpace in bytes.
func (cfg *Config) MinFreeSpaceBytes() (uint64, error) {
	if cfg.MinFreeSpace == "" || cfg.MinFreeSpace == "0" {
		return 0, nil
	}
	return parseSize("MinFreeSpace", cfg.MinFreeSpace)
}

func (cfg *Config) Mode() os.FileMode {
	return os.FileMode(cfg.FileMode)
}

func parseSize(param, value string) (uint64, error) {
	size, err := bytefmt.ToBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid `%s`: %w", param, err)
	}
	return size, nil
}

// Load reads the config file at path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	vip := viper.New()
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
