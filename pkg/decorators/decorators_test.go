package decorators_test

import (
	"testing"

	"github.com/aretw0/canopy/internal/testutils"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/decorators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverter(t *testing.T) {
	cases := []struct {
		child core.Status
		want  core.Status
	}{
		{core.StatusSuccess, core.StatusFailure},
		{core.StatusFailure, core.StatusSuccess},
		{core.StatusRunning, core.StatusRunning},
		{core.StatusError, core.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.child.String(), func(t *testing.T) {
			status, _ := testutils.TickOnce(decorators.NewInverter(testutils.NewProbe(tc.child)))
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestInverterNilChild(t *testing.T) {
	status, _ := testutils.TickOnce(decorators.NewInverter(nil))
	assert.Equal(t, core.StatusError, status)
}

func TestRepeatUntilFailureLoopsAcrossTicks(t *testing.T) {
	child := testutils.NewProbe(core.StatusSuccess, core.StatusSuccess, core.StatusFailure)
	bt := testutils.Tree(decorators.NewRepeatUntilFailure(0, child))
	bb := core.NewBlackboard()

	// One child execution per tick: two successful iterations keep the loop
	// RUNNING, the failing one ends it with SUCCESS.
	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))
	assert.Equal(t, 3, child.Ticks)
}

func TestRepeatUntilFailureChildReopensEachIteration(t *testing.T) {
	child := testutils.NewProbe(core.StatusSuccess, core.StatusFailure)
	bt := testutils.Tree(decorators.NewRepeatUntilFailure(0, child))
	bb := core.NewBlackboard()

	bt.Tick(nil, bb)
	bt.Tick(nil, bb)

	// Each terminal outcome closed the child, so the next tick re-opened it.
	assert.Equal(t, 2, child.Opens)
	assert.Equal(t, 2, child.Closes)
}

func TestRepeatUntilFailureMaxLoop(t *testing.T) {
	child := testutils.NewProbe(core.StatusSuccess)
	bt := testutils.Tree(decorators.NewRepeatUntilFailure(2, child))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb), "cap reached ends the loop")
	assert.Equal(t, 2, child.Ticks)
}

func TestRepeatUntilFailurePassesThroughRunning(t *testing.T) {
	child := testutils.NewProbe(core.StatusRunning)
	status, _ := testutils.TickOnce(decorators.NewRepeatUntilFailure(0, child))
	assert.Equal(t, core.StatusRunning, status)
}

func TestRepeatUntilFailurePassesThroughError(t *testing.T) {
	child := testutils.NewProbe(core.StatusError)
	status, _ := testutils.TickOnce(decorators.NewRepeatUntilFailure(0, child))
	assert.Equal(t, core.StatusError, status)
}

func TestRepeatUntilFailureCounterResets(t *testing.T) {
	dec := decorators.NewRepeatUntilFailure(3, testutils.NewProbe(
		core.StatusSuccess, core.StatusFailure,
		core.StatusSuccess, core.StatusFailure,
	))
	bt := testutils.Tree(dec)
	bb := core.NewBlackboard()

	require.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	require.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))

	// A completed activation released its counter; the next starts at zero.
	_, ok := bb.Get(decorators.KeyIterations, bt.ID(), dec.ID())
	require.False(t, ok)

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))
}

func TestLimiterPassesThroughWithinBudget(t *testing.T) {
	child := testutils.NewProbe(core.StatusRunning, core.StatusSuccess)
	bt := testutils.Tree(decorators.NewLimiter(2, child))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))
	assert.Equal(t, 2, child.Ticks)
}

func TestLimiterExhaustedBudgetFailsWithoutTickingChild(t *testing.T) {
	child := testutils.NewProbe(core.StatusSuccess)
	bt := testutils.Tree(decorators.NewLimiter(0, child))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusFailure, bt.Tick(nil, bb))
	assert.Equal(t, 0, child.Ticks)
}

func TestLimiterNilChild(t *testing.T) {
	status, _ := testutils.TickOnce(decorators.NewLimiter(1, nil))
	assert.Equal(t, core.StatusError, status)
}

func TestSucceeder(t *testing.T) {
	cases := []struct {
		child core.Status
		want  core.Status
	}{
		{core.StatusSuccess, core.StatusSuccess},
		{core.StatusFailure, core.StatusSuccess},
		{core.StatusError, core.StatusSuccess},
		{core.StatusRunning, core.StatusRunning},
	}
	for _, tc := range cases {
		t.Run(tc.child.String(), func(t *testing.T) {
			status, _ := testutils.TickOnce(decorators.NewSucceeder(testutils.NewProbe(tc.child)))
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestFailer(t *testing.T) {
	cases := []struct {
		child core.Status
		want  core.Status
	}{
		{core.StatusSuccess, core.StatusFailure},
		{core.StatusFailure, core.StatusFailure},
		{core.StatusError, core.StatusFailure},
		{core.StatusRunning, core.StatusRunning},
	}
	for _, tc := range cases {
		t.Run(tc.child.String(), func(t *testing.T) {
			status, _ := testutils.TickOnce(decorators.NewFailer(testutils.NewProbe(tc.child)))
			assert.Equal(t, tc.want, status)
		})
	}
}
