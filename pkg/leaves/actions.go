package leaves

import (
	"time"

	"github.com/aretw0/canopy/pkg/core"
)

// Succeed is an action that always reports SUCCESS.
type Succeed struct {
	core.BaseNode
}

// NewSucceed creates a Succeed action.
func NewSucceed() *Succeed {
	return &Succeed{BaseNode: core.NewBaseNode(core.CategoryAction, "Succeed")}
}

func (a *Succeed) Tick(t *core.Tick) core.Status { return core.StatusSuccess }

// Fail is an action that always reports FAILURE.
type Fail struct {
	core.BaseNode
}

// NewFail creates a Fail action.
func NewFail() *Fail {
	return &Fail{BaseNode: core.NewBaseNode(core.CategoryAction, "Fail")}
}

func (a *Fail) Tick(t *core.Tick) core.Status { return core.StatusFailure }

// Err is an action that always reports ERROR.
type Err struct {
	core.BaseNode
}

// NewErr creates an Err action.
func NewErr() *Err {
	return &Err{BaseNode: core.NewBaseNode(core.CategoryAction, "Error")}
}

func (a *Err) Tick(t *core.Tick) core.Status { return core.StatusError }

// Runner is an action that always reports RUNNING, useful as a placeholder
// for long-lived behaviors.
type Runner struct {
	core.BaseNode
}

// NewRunner creates a Runner action.
func NewRunner() *Runner {
	return &Runner{BaseNode: core.NewBaseNode(core.CategoryAction, "Runner")}
}

func (a *Runner) Tick(t *core.Tick) core.Status { return core.StatusRunning }

// KeyStartTime is the blackboard key where Wait stores its activation start.
const KeyStartTime = "startTime"

// Wait reports RUNNING until the configured duration has elapsed since the
// activation opened, then SUCCESS.
type Wait struct {
	core.BaseNode
	duration time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewWait creates a Wait action for the given duration.
func NewWait(d time.Duration) *Wait {
	return &Wait{
		BaseNode: core.NewBaseNode(core.CategoryAction, "Wait"),
		duration: d,
		now:      time.Now,
	}
}

// Duration returns the configured wait time.
func (a *Wait) Duration() time.Duration { return a.duration }

// Open records the activation start time.
func (a *Wait) Open(t *core.Tick) {
	t.Blackboard().Set(KeyStartTime, a.now().UnixMilli(), t.Tree().ID(), a.ID())
}

func (a *Wait) Tick(t *core.Tick) core.Status {
	v, ok := t.Blackboard().Get(KeyStartTime, t.Tree().ID(), a.ID())
	if !ok {
		return core.StatusError
	}
	start, ok := v.(int64)
	if !ok {
		start = int64(t.Blackboard().GetInt(KeyStartTime, t.Tree().ID(), a.ID()))
	}
	if a.now().UnixMilli()-start >= a.duration.Milliseconds() {
		return core.StatusSuccess
	}
	return core.StatusRunning
}

// Close releases the recorded start time.
func (a *Wait) Close(t *core.Tick) {
	t.Blackboard().Remove(KeyStartTime, t.Tree().ID(), a.ID())
}
