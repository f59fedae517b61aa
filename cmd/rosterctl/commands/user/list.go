package user

import (
	"fmt"
	"os"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	listQuery  string
	listRole   string
	listSortBy string
	listDesc   bool
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory entries",
	Long: `List directory entries on the rosterd server.

Entries can be filtered by a substring match on name or email, filtered
by role, and sorted by name, email, or creation time.

Examples:
  # List entries as table
  rosterctl user list

  # Search by name or email
  rosterctl user list --query alice

  # Only admins, newest first
  rosterctl user list --role admin --sort-by created_at --desc

  # List as JSON
  rosterctl user list -o json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by substring match on name or email")
	listCmd.Flags().StringVar(&listRole, "role", "", "Filter by role (user|admin)")
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Sort field (name|email|created_at)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort in descending order")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of entries to return")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of entries to skip")
}

// UserList is a list of directory entries for table rendering.
type UserList []apiclient.User

// Headers implements TableRenderer.
func (ul UserList) Headers() []string {
	return []string{"ID", "NAME", "EMAIL", "ROLE", "2FA"}
}

// Rows implements TableRenderer.
func (ul UserList) Rows() [][]string {
	rows := make([][]string, 0, len(ul))
	for _, u := range ul {
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			u.Role,
			cmdutil.BoolToYesNo(u.TwoFactorEnabled),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	page, err := client.ListUsers(apiclient.ListUsersOptions{
		Query:      listQuery,
		Role:       listRole,
		SortBy:     listSortBy,
		Descending: listDesc,
		Limit:      listLimit,
		Offset:     listOffset,
	})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, page, len(page.Users) == 0, "No users found.", UserList(page.Users))
}
