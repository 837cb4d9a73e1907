package decorators

import "github.com/aretw0/canopy/pkg/core"

// Succeeder reports SUCCESS whenever its child reaches a terminal outcome.
// RUNNING passes through.
type Succeeder struct {
	core.Decorator
}

// NewSucceeder creates a Succeeder around child.
func NewSucceeder(child core.Node) *Succeeder {
	return &Succeeder{Decorator: core.NewDecorator("Succeeder", child)}
}

func (d *Succeeder) Tick(t *core.Tick) core.Status {
	child := d.Child()
	if child == nil {
		return core.StatusError
	}
	if status := core.Execute(child, t); status == core.StatusRunning {
		return status
	}
	return core.StatusSuccess
}

// Failer reports FAILURE whenever its child reaches a terminal outcome.
// RUNNING passes through.
type Failer struct {
	core.Decorator
}

// NewFailer creates a Failer around child.
func NewFailer(child core.Node) *Failer {
	return &Failer{Decorator: core.NewDecorator("Failer", child)}
}

func (d *Failer) Tick(t *core.Tick) core.Status {
	child := d.Child()
	if child == nil {
		return core.StatusError
	}
	if status := core.Execute(child, t); status == core.StatusRunning {
		return status
	}
	return core.StatusFailure
}
