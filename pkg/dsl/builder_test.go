package dsl_test

import (
	"testing"
	"time"

	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/dsl"
	"github.com/aretw0/canopy/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAssignsDepthFirstIDs(t *testing.T) {
	spec, err := dsl.NewTree("patrol").
		Title("Patrol Route").
		Root(dsl.Sequence(
			dsl.Leaf("Succeed", nil),
			dsl.Inverter(dsl.Leaf("Fail", nil)),
		)).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "patrol", spec.ID)
	assert.Equal(t, "Patrol Route", spec.Title)
	assert.Equal(t, "n1", spec.Root)
	require.Len(t, spec.Nodes, 4)

	root := spec.Nodes["n1"]
	assert.Equal(t, "Sequence", root.Name)
	assert.Equal(t, []string{"n2", "n3"}, root.Children)
	assert.Equal(t, "n4", spec.Nodes["n3"].Child)
	assert.Equal(t, "Fail", spec.Nodes["n4"].Name)
}

func TestBuildRequiresRoot(t *testing.T) {
	_, err := dsl.NewTree("empty").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no root")
}

func TestBuiltTreeLoadsAndTicks(t *testing.T) {
	project, err := dsl.Project(
		dsl.NewTree("patrol").Root(
			dsl.Selector(
				dsl.Failer(dsl.Leaf("Succeed", nil)),
				dsl.MemSequence(
					dsl.Wait(10*time.Millisecond),
					dsl.Leaf("Succeed", nil),
				),
			),
		),
	)
	require.NoError(t, err)

	trees, err := loader.New().LoadProject(project)
	require.NoError(t, err)

	bt := trees["patrol"]
	bb := core.NewBlackboard()

	require.Equal(t, core.StatusRunning, bt.Tick(nil, bb))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, core.StatusSuccess, bt.Tick(nil, bb))
}

func TestParallelHelperSetsThresholds(t *testing.T) {
	spec, err := dsl.NewTree("t").Root(
		dsl.Parallel(1, 2,
			dsl.Leaf("Succeed", nil),
			dsl.Leaf("Runner", nil),
		),
	).Build()
	require.NoError(t, err)

	props := spec.Nodes[spec.Root].Properties
	assert.Equal(t, 1, props["failureThreshold"])
	assert.Equal(t, 2, props["successThreshold"])
}

func TestSharedNodeKeepsOneIdentity(t *testing.T) {
	shared := dsl.Leaf("Succeed", nil)
	spec, err := dsl.NewTree("t").Root(
		dsl.Sequence(shared, shared),
	).Build()
	require.NoError(t, err)

	require.Len(t, spec.Nodes, 2)
	root := spec.Nodes[spec.Root]
	assert.Equal(t, root.Children[0], root.Children[1])
}

func TestSubTreeReference(t *testing.T) {
	project, err := dsl.Project(
		dsl.NewTree("main").Root(
			dsl.Sequence(
				dsl.SubTree("greet"),
				dsl.Leaf("Succeed", nil),
			),
		),
		dsl.NewTree("greet").Root(dsl.Leaf("Succeed", nil)),
	)
	require.NoError(t, err)

	trees, err := loader.New().LoadProject(project)
	require.NoError(t, err)
	require.Len(t, trees, 2)

	main := trees["main"]
	seq, ok := main.Root().(core.ContainerNode)
	require.True(t, ok)
	assert.Same(t, trees["greet"].Root(), seq.Children()[0])
	assert.Equal(t, core.StatusSuccess, main.Tick(nil, core.NewBlackboard()))
}

func TestRepeatAndLimiterHelpers(t *testing.T) {
	spec, err := dsl.NewTree("t").Root(
		dsl.RepeatUntilFailure(3, dsl.Limiter(2, dsl.Leaf("Succeed", nil))),
	).Build()
	require.NoError(t, err)

	root := spec.Nodes[spec.Root]
	assert.Equal(t, "RepeatUntilFailure", root.Name)
	assert.Equal(t, 3, root.Properties["maxLoop"])

	lim := spec.Nodes[root.Child]
	assert.Equal(t, "Limiter", lim.Name)
	assert.Equal(t, 2, lim.Properties["maxLoop"])
}
