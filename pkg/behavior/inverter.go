package behavior

import "fmt"

// Inverter decorates exactly one child and flips Success <-> Failure;
// Running and errors pass through unchanged.
type Inverter struct {
	baseNode
	child Node
}

func NewInverter(name string) *Inverter {
	return &Inverter{baseNode: baseNode{name: name}}
}

// SetChild attaches the single child. A second call reports ErrInverterChild.
func (d *Inverter) SetChild(child Node) error {
	if d.child != nil {
		return fmt.Errorf("%w: %s", ErrInverterChild, d.name)
	}
	d.child = child
	return nil
}

// Child returns the decorated node, or nil if none was attached.
func (d *Inverter) Child() Node { return d.child }

func (d *Inverter) acceptChild(child Node) error { return d.SetChild(child) }

func (d *Inverter) Tick(t TickContext) (Status, error) {
	if d.child == nil {
		return StatusFailure, fmt.Errorf("%w: %s", ErrInverterNoChild, d.name)
	}
	st, err := d.child.Tick(t)
	if err != nil {
		return StatusFailure, err
	}
	switch st {
	case StatusSuccess:
		return StatusFailure, nil
	case StatusFailure:
		return StatusSuccess, nil
	default:
		return st, nil
	}
}
