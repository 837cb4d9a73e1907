package main

import (
	"fmt"
	"os"

	"github.com/aretw0/canopy"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project-file>",
	Short: "Check a project document for consistency",
	Long:  `Parses and fully loads a project document, reporting unknown node names, broken child references and sub-tree cycles.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := canopy.New(canopy.WithLogger(newLogger(cmd)))
		if err := engine.LoadFile(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Project is valid! ✅")
		for _, bt := range engine.Trees() {
			fmt.Printf("  tree %s (%s)\n", bt.ID(), bt.Title())
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
