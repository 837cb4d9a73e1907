package composites_test

import (
	"testing"

	"github.com/aretw0/canopy/internal/testutils"
	"github.com/aretw0/canopy/pkg/composites"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceAllSucceed(t *testing.T) {
	a := testutils.NewProbe(core.StatusSuccess)
	b := testutils.NewProbe(core.StatusSuccess)

	status, _ := testutils.TickOnce(composites.NewSequence(a, b))
	assert.Equal(t, core.StatusSuccess, status)
	assert.Equal(t, 1, a.Ticks)
	assert.Equal(t, 1, b.Ticks)
}

func TestSequenceShortCircuits(t *testing.T) {
	cases := []struct {
		name string
		stop core.Status
	}{
		{"failure", core.StatusFailure},
		{"running", core.StatusRunning},
		{"error", core.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := testutils.NewProbe(tc.stop)
			second := testutils.NewProbe(core.StatusSuccess)

			status, _ := testutils.TickOnce(composites.NewSequence(first, second))
			assert.Equal(t, tc.stop, status)
			assert.Equal(t, 0, second.Ticks, "children after the stop must not run")
		})
	}
}

func TestSequenceEmpty(t *testing.T) {
	status, _ := testutils.TickOnce(composites.NewSequence())
	assert.Equal(t, core.StatusSuccess, status)
}

func TestSequenceHasNoMemory(t *testing.T) {
	// RUNNING child does not save position: the next tick restarts at the
	// first child.
	first := testutils.NewProbe(core.StatusSuccess)
	second := testutils.NewProbe(core.StatusRunning, core.StatusSuccess)

	bt := testutils.Tree(composites.NewSequence(first, second))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))
	assert.Equal(t, 2, first.Ticks)
}

func TestSelectorFirstSuccessWins(t *testing.T) {
	a := testutils.NewProbe(core.StatusFailure)
	b := testutils.NewProbe(core.StatusSuccess)
	c := testutils.NewProbe(core.StatusSuccess)

	status, _ := testutils.TickOnce(composites.NewSelector(a, b, c))
	assert.Equal(t, core.StatusSuccess, status)
	assert.Equal(t, 0, c.Ticks)
}

func TestSelectorShortCircuits(t *testing.T) {
	cases := []struct {
		name string
		stop core.Status
	}{
		{"success", core.StatusSuccess},
		{"running", core.StatusRunning},
		{"error", core.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := testutils.NewProbe(tc.stop)
			second := testutils.NewProbe(core.StatusSuccess)

			status, _ := testutils.TickOnce(composites.NewSelector(first, second))
			assert.Equal(t, tc.stop, status)
			assert.Equal(t, 0, second.Ticks)
		})
	}
}

func TestSelectorEmpty(t *testing.T) {
	status, _ := testutils.TickOnce(composites.NewSelector())
	assert.Equal(t, core.StatusFailure, status)
}

func TestSelectorAllFail(t *testing.T) {
	status, _ := testutils.TickOnce(composites.NewSelector(
		testutils.NewProbe(core.StatusFailure),
		testutils.NewProbe(core.StatusFailure),
	))
	assert.Equal(t, core.StatusFailure, status)
}

func TestMemSequenceResumes(t *testing.T) {
	first := testutils.NewProbe(core.StatusSuccess)
	second := testutils.NewProbe(core.StatusRunning, core.StatusSuccess)
	third := testutils.NewProbe(core.StatusSuccess)

	bt := testutils.Tree(composites.NewMemSequence(first, second, third))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))

	// The resume skipped the already-successful first child.
	assert.Equal(t, 1, first.Ticks)
	assert.Equal(t, 2, second.Ticks)
	assert.Equal(t, 1, third.Ticks)
}

func TestMemSequenceResetsAfterCompletion(t *testing.T) {
	seq := composites.NewMemSequence(
		testutils.NewProbe(core.StatusSuccess),
		testutils.NewProbe(core.StatusRunning, core.StatusSuccess),
	)
	bt := testutils.Tree(seq)
	bb := core.NewBlackboard()

	require.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	require.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))

	// Completion released the resume index.
	_, ok := bb.Get(composites.KeyRunningChild, bt.ID(), seq.ID())
	assert.False(t, ok)
}

func TestMemSelectorResumes(t *testing.T) {
	first := testutils.NewProbe(core.StatusFailure)
	second := testutils.NewProbe(core.StatusRunning, core.StatusFailure)
	third := testutils.NewProbe(core.StatusSuccess)

	bt := testutils.Tree(composites.NewMemSelector(first, second, third))
	bb := core.NewBlackboard()

	assert.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))

	assert.Equal(t, 1, first.Ticks)
	assert.Equal(t, 2, second.Ticks)
	assert.Equal(t, 1, third.Ticks)
}

func TestMemoryIsPerAgent(t *testing.T) {
	second := testutils.NewProbe(core.StatusRunning, core.StatusRunning)
	first := testutils.NewProbe(core.StatusSuccess)
	bt := testutils.Tree(composites.NewMemSequence(first, second))

	alice := core.NewBlackboard()
	bob := core.NewBlackboard()

	bt.Tick(nil, alice)
	bt.Tick(nil, bob)

	// Each agent ran the first child once; neither saw the other's resume
	// index.
	assert.Equal(t, 2, first.Ticks)
}

func TestParallelThresholds(t *testing.T) {
	s := core.StatusSuccess
	f := core.StatusFailure
	r := core.StatusRunning
	e := core.StatusError

	cases := []struct {
		name             string
		children         []core.Status
		failureThreshold int
		successThreshold int
		want             core.Status
	}{
		{"enough successes", []core.Status{s, s, f}, 2, 2, s},
		{"enough failures", []core.Status{f, f, s}, 2, 2, f},
		{"neither threshold met", []core.Status{r, s, f}, 2, 2, r},
		{"success checked first", []core.Status{s, s, f, f}, 2, 2, s},
		{"running counts toward neither", []core.Status{r, r, r}, 1, 1, r},
		{"error counts toward neither", []core.Status{e, e, f}, 2, 2, r},
		{"single failure trips f1", []core.Status{f, r, r}, 1, 2, f},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			children := make([]core.Node, len(tc.children))
			probes := make([]*testutils.Probe, len(tc.children))
			for i, st := range tc.children {
				p := testutils.NewProbe(st)
				probes[i] = p
				children[i] = p
			}

			par := composites.NewParallel(tc.failureThreshold, tc.successThreshold, children...)
			status, _ := testutils.TickOnce(par)
			assert.Equal(t, tc.want, status)

			// Parallel never short-circuits.
			for i, p := range probes {
				assert.Equal(t, 1, p.Ticks, "child %d", i)
			}
		})
	}
}

func TestParallelReticksEveryChild(t *testing.T) {
	a := testutils.NewProbe(core.StatusSuccess)
	b := testutils.NewProbe(core.StatusRunning, core.StatusRunning)

	bt := testutils.Tree(composites.NewParallel(2, 2, a, b))
	bb := core.NewBlackboard()

	bt.Tick(nil, bb)
	bt.Tick(nil, bb)

	// No per-child memory: the successful child runs again next cycle.
	assert.Equal(t, 2, a.Ticks)
	assert.Equal(t, 2, b.Ticks)
}
