package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/boards"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported boards",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, def := range boards.All() {
		fmt.Printf("%-16s %s\n", def.Name, def.Device)
	}
	return nil
}
