package user

import (
	"fmt"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a directory entry",
	Long: `Delete a directory entry from the rosterd server.

The entry's past mutation events and monitoring flags are retained for
audit purposes. Requires admin privileges.

Examples:
  # Delete with confirmation prompt
  rosterctl user delete 42

  # Delete without confirmation
  rosterctl user delete 42 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("user", args[0], deleteForce, func() error {
		if err := client.DeleteUser(id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
