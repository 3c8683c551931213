package sink

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/writestream/shared"
)

type aggregatorState struct {
	children []ByteSink
}

// Aggregator fans every write out to its children, in the order they were given to Open.
//
// The children are not owned: Close releases only the aggregator's own record,
// so a sink may belong to several aggregators or be used on its own as well.
// Callers close children themselves.
type Aggregator struct {
	logger *zap.Logger

	state state
	data  *aggregatorState
}

// A compile time check to ensure that Aggregator fully implements the ByteSink interface.
var _ ByteSink = (*Aggregator)(nil)

func NewAggregator(opts ...OptionFunc) (*Aggregator, error) {
	options, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Aggregator{logger: options.logger}, nil
}

// Open installs children as the fan-out targets. Duplicates are allowed.
// If the aggregator is already open its previous record is released first;
// the previous children are left as they are.
func (a *Aggregator) Open(children ...ByteSink) error {
	for i, child := range children {
		if child == nil {
			return fmt.Errorf("child %d is nil", i)
		}
	}

	if a.state == stateOpen {
		if err := a.Close(); err != nil {
			return err
		}
	}

	a.data = &aggregatorState{
		children: append([]ByteSink(nil), children...),
	}
	a.state = stateOpen

	a.logger.Debug("opened aggregator", zap.Int("children", len(children)))
	return nil
}

// Write passes p to every child in turn. On the first failure it returns a
// shared.ChildWriteError; children before the failing one keep the write.
func (a *Aggregator) Write(p []byte) error {
	if err := a.state.usable(); err != nil {
		return err
	}

	for i, child := range a.data.children {
		if err := child.Write(p); err != nil {
			return shared.ChildWriteError{Index: i, Err: err}
		}
	}
	return nil
}

func (a *Aggregator) WriteString(str string) error {
	return WriteString(a, str)
}

func (a *Aggregator) WriteInt(n int) error {
	return WriteInt(a, n)
}

// Len returns the number of children.
func (a *Aggregator) Len() int {
	if a.data == nil {
		return 0
	}
	return len(a.data.children)
}

func (a *Aggregator) Close() error {
	if err := a.state.usable(); err != nil {
		return err
	}

	a.logger.Debug("released aggregator state", zap.Int("children", len(a.data.children)))
	a.data = nil
	a.state = stateClosed
	return nil
}
