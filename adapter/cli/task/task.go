// Package task implements the task command group.
package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, complete, and delete your tasks.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}
