package main

import (
	"fmt"
	"os"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <project-file>",
	Short: "Export a tree visualization",
	Long:  `Loads a project document and outputs a Mermaid diagram (graph TD) of one of its trees.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := canopy.New(canopy.WithLogger(newLogger(cmd)))
		if err := engine.LoadFile(args[0]); err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}

		treeID, _ := cmd.Flags().GetString("tree")
		bt, err := pickTree(engine, treeID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(bt))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("tree", "t", "", "Tree ID to render (defaults to the first tree)")
}
