package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered policies",
	Long:  `Shows the policies that can drive the agent in run, watch and serve.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'kong watch --policy <id>' to watch one play.")
}
