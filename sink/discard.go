package sink

// Discard accepts and drops every write.
type Discard struct {
	state state
}

// A compile time check to ensure that Discard fully implements the ByteSink interface.
var _ ByteSink = (*Discard)(nil)

func NewDiscard() *Discard {
	return new(Discard)
}

func (d *Discard) Open() error {
	if err := d.state.openable(); err != nil {
		return err
	}
	d.state = stateOpen
	return nil
}

func (d *Discard) Write([]byte) error {
	return d.state.usable()
}

func (d *Discard) WriteString(str string) error {
	return WriteString(d, str)
}

func (d *Discard) WriteInt(n int) error {
	return WriteInt(d, n)
}

func (d *Discard) Close() error {
	if err := d.state.usable(); err != nil {
		return err
	}
	d.state = stateClosed
	return nil
}
