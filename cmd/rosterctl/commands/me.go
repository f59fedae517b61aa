package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the currently authenticated account",
	Long: `Display the directory entry of the currently authenticated account.

Examples:
  # Show account as table
  rosterctl me

  # Show as JSON
  rosterctl me -o json`,
	RunE: runMe,
}

// AccountDetails wraps a single user for key-value table rendering.
type AccountDetails struct {
	User apiclient.User
}

// Headers implements TableRenderer.
func (a AccountDetails) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (a AccountDetails) Rows() [][]string {
	u := a.User
	return [][]string{
		{"ID", fmt.Sprintf("%d", u.ID)},
		{"Name", u.Name},
		{"Email", u.Email},
		{"Role", u.Role},
		{"Two-factor", cmdutil.BoolToYesNo(u.TwoFactorEnabled)},
	}
}

func runMe(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetCurrentUser()
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, user, AccountDetails{User: *user})
}
