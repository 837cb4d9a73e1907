/*
Package canopy is a tick-driven behavior-tree execution engine for autonomous
agent logic.

A behavior tree is a hierarchy of decision and action nodes evaluated once
per invocation (a "tick"), reporting one of four outcomes: SUCCESS, FAILURE,
RUNNING or ERROR. Tree definitions are stateless and immutable after load;
every piece of cross-tick state lives in a per-agent Blackboard, so a single
definition can drive any number of agents without cross-contamination.

Trees are described declaratively (YAML or JSON) and loaded through a
two-tier node registry, so applications plug in their own ACTION and
CONDITION leaves next to the built-in composites and decorators:

	reg := registry.Default()
	reg.Register("IsHungry", func(props map[string]any) (core.Node, error) {
		return leaves.NewCondition("IsHungry", func(t *core.Tick) bool {
			return t.Target().(*Agent).Hunger > 50
		}), nil
	})

	engine := canopy.New(canopy.WithRegistry(reg))
	if err := engine.LoadFile("behaviors.yaml"); err != nil {
		log.Fatal(err)
	}

	// Once per agent per frame:
	status, err := engine.Tick(ctx, "patrol", agentID, agent)

The engine does not schedule ticks; the caller decides cadence and thread.
"Parallel" composition describes result aggregation, not concurrency: all
children tick sequentially, left to right, within one call.
*/
package canopy
