package user

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get directory entry details",
	Long: `Get detailed information about a directory entry.

Examples:
  # Get entry details as table
  rosterctl user get 42

  # Get as JSON
  rosterctl user get 42 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// UserDetails wraps a single entry for key-value table rendering.
type UserDetails struct {
	User apiclient.User
}

// Headers implements TableRenderer.
func (d UserDetails) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (d UserDetails) Rows() [][]string {
	u := d.User
	avatar := "-"
	if u.AvatarKey != nil {
		avatar = *u.AvatarKey
	}
	return [][]string{
		{"ID", fmt.Sprintf("%d", u.ID)},
		{"Name", u.Name},
		{"Email", u.Email},
		{"Role", u.Role},
		{"Two-factor", cmdutil.BoolToYesNo(u.TwoFactorEnabled)},
		{"Avatar", avatar},
		{"Created", u.CreatedAt.Local().Format(time.RFC3339)},
		{"Updated", u.UpdatedAt.Local().Format(time.RFC3339)},
	}
}

// parseID parses a numeric entry ID argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID %q", arg)
	}
	return uint(id), nil
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, user, UserDetails{User: *user})
}
