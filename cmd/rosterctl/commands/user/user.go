// Package user implements directory entry management commands for rosterctl.
package user

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for user management.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Directory entry management",
	Long: `Manage directory entries on the rosterd server.

Listing and reading entries is open to any authenticated account. Creating,
editing, and deleting entries requires admin privileges.

Examples:
  # List all entries
  rosterctl user list

  # Create a new entry interactively
  rosterctl user create

  # Create an entry with flags
  rosterctl user create --name Alice --email alice@example.com

  # Edit an entry
  rosterctl user edit 42 --role admin

  # Delete an entry
  rosterctl user delete 42`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(avatarCmd)
}
