package registry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/canopy/pkg/composites"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/decorators"
	"github.com/aretw0/canopy/pkg/leaves"
	"github.com/aretw0/canopy/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistersBuiltins(t *testing.T) {
	r := registry.Default()
	for _, name := range []string{
		"Sequence", "Selector", "MemSequence", "MemSelector", "Parallel",
		"Inverter", "RepeatUntilFailure", "Limiter", "Succeeder", "Failer",
		"Succeed", "Fail", "Error", "Runner", "Wait",
	} {
		_, ok := r.Resolve(name)
		assert.True(t, ok, "builtin %q must resolve", name)
	}
}

func TestBuildUnknownName(t *testing.T) {
	r := registry.Default()
	_, err := r.Build("NoSuchNode", nil)
	require.Error(t, err)

	var unknown *registry.UnknownNodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "NoSuchNode", unknown.Name)
	assert.Contains(t, err.Error(), "NoSuchNode")
}

func TestCustomShadowsBuiltin(t *testing.T) {
	r := registry.Default()
	r.Register("Succeed", func(props map[string]any) (core.Node, error) {
		return leaves.NewFail(), nil
	})

	n, err := r.Build("Succeed", nil)
	require.NoError(t, err)
	assert.IsType(t, &leaves.Fail{}, n)
}

func TestRegisterOverwrites(t *testing.T) {
	r := registry.New()
	r.Register("X", func(props map[string]any) (core.Node, error) {
		return leaves.NewSucceed(), nil
	})
	r.Register("X", func(props map[string]any) (core.Node, error) {
		return leaves.NewFail(), nil
	})

	n, err := r.Build("X", nil)
	require.NoError(t, err)
	assert.IsType(t, &leaves.Fail{}, n)
}

func TestFactoryErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	r := registry.New()
	r.Register("Broken", func(props map[string]any) (core.Node, error) {
		return nil, boom
	})

	_, err := r.Build("Broken", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Broken")
}

func TestParallelProperties(t *testing.T) {
	r := registry.Default()

	n, err := r.Build("Parallel", map[string]any{
		"successThreshold": 2,
		"failureThreshold": 1,
	})
	require.NoError(t, err)

	p, ok := n.(*composites.Parallel)
	require.True(t, ok)
	assert.Equal(t, 2, p.SuccessThreshold())
	assert.Equal(t, 1, p.FailureThreshold())
}

func TestPropertiesTolerateJSONNumbers(t *testing.T) {
	// JSON decodes numbers as float64; factories must still accept them.
	r := registry.Default()

	n, err := r.Build("RepeatUntilFailure", map[string]any{"maxLoop": float64(3)})
	require.NoError(t, err)
	d, ok := n.(*decorators.RepeatUntilFailure)
	require.True(t, ok)
	assert.Equal(t, 3, d.MaxLoop())

	n, err = r.Build("Wait", map[string]any{"milliseconds": float64(250)})
	require.NoError(t, err)
	w, ok := n.(*leaves.Wait)
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, w.Duration())
}

func TestBuiltNodesKeepProperties(t *testing.T) {
	r := registry.Default()
	props := map[string]any{"maxLoop": 5, "note": "patrol"}

	n, err := r.Build("Limiter", props)
	require.NoError(t, err)
	assert.Equal(t, 5, n.Properties()["maxLoop"])
	assert.Equal(t, "patrol", n.Properties()["note"])
}

func TestNamesDeduplicated(t *testing.T) {
	r := registry.Default()
	r.Register("Succeed", func(props map[string]any) (core.Node, error) {
		return leaves.NewSucceed(), nil
	})

	count := 0
	for _, name := range r.Names() {
		if name == "Succeed" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
