// Package context implements context management commands for rosterctl.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context management.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Manage server contexts",
	Long: `Manage saved server contexts.

A context holds a server URL and the session token for it. Contexts let
you switch between multiple rosterd servers without re-entering URLs.

Examples:
  # List all contexts
  rosterctl context list

  # Show the current context
  rosterctl context current

  # Switch context
  rosterctl context use production`,
}

func init() {
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}
