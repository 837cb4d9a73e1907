package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/adapters/redis"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <project-file>",
	Short: "Tick a tree for an agent until it settles",
	Long: `Loads a project document and ticks one of its trees on behalf of a single
agent, once per interval, until the tree reports something other than RUNNING
or the tick budget runs out.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTicks(cmd, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("tree", "t", "", "Tree ID to tick (defaults to the first tree)")
	runCmd.Flags().StringP("agent", "a", "", "Agent ID (defaults to a fresh UUID)")
	runCmd.Flags().Int("max-ticks", 100, "Stop after this many ticks even if still RUNNING")
	runCmd.Flags().Duration("interval", 100*time.Millisecond, "Delay between ticks")
	runCmd.Flags().String("redis", "", "Redis address for durable agent state (e.g. localhost:6379)")
}

func runTicks(cmd *cobra.Command, path string) error {
	opts := []canopy.Option{canopy.WithLogger(newLogger(cmd))}

	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		store := redis.New(addr, "", 0)
		defer store.Close()
		opts = append(opts,
			canopy.WithBlackboardStore(store),
			canopy.WithLocker(store.Locker()),
		)
	}

	engine := canopy.New(opts...)
	if err := engine.LoadFile(path); err != nil {
		return err
	}

	treeID, _ := cmd.Flags().GetString("tree")
	bt, err := pickTree(engine, treeID)
	if err != nil {
		return err
	}

	agentID, _ := cmd.Flags().GetString("agent")
	if agentID == "" {
		agentID = core.NewID()
	}
	maxTicks, _ := cmd.Flags().GetInt("max-ticks")
	interval, _ := cmd.Flags().GetDuration("interval")

	ctx := cmd.Context()
	fmt.Printf("Ticking tree %q for agent %q\n", bt.ID(), agentID)

	for i := 1; i <= maxTicks; i++ {
		status, err := engine.Tick(ctx, bt.ID(), agentID, nil)
		if err != nil {
			return err
		}
		fmt.Printf("tick %d: %s\n", i, status)
		if status != core.StatusRunning {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	fmt.Println("tick budget exhausted while still RUNNING")
	return nil
}

// pickTree resolves the --tree flag, falling back to the first hosted tree.
func pickTree(engine *canopy.Engine, treeID string) (*core.BehaviorTree, error) {
	if treeID != "" {
		return engine.Tree(treeID)
	}
	trees := engine.Trees()
	if len(trees) == 0 {
		return nil, fmt.Errorf("project contains no trees")
	}
	return trees[0], nil
}
