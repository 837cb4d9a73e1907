package decorators

import "github.com/aretw0/canopy/pkg/core"

// Inverter swaps its child's SUCCESS and FAILURE. RUNNING and ERROR pass
// through unchanged.
type Inverter struct {
	core.Decorator
}

// NewInverter creates an Inverter around child.
func NewInverter(child core.Node) *Inverter {
	return &Inverter{Decorator: core.NewDecorator("Inverter", child)}
}

// Tick executes the child and inverts terminal outcomes.
func (d *Inverter) Tick(t *core.Tick) core.Status {
	child := d.Child()
	if child == nil {
		return core.StatusError
	}
	switch status := core.Execute(child, t); status {
	case core.StatusSuccess:
		return core.StatusFailure
	case core.StatusFailure:
		return core.StatusSuccess
	default:
		return status
	}
}
