package user

import (
	"fmt"
	"os"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	editName  string
	editEmail string
	editRole  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a directory entry",
	Long: `Edit an existing directory entry.

Only the fields passed as flags are changed; everything else is left
untouched. Requires admin privileges.

Examples:
  # Rename an entry
  rosterctl user edit 42 --name "Alice Smith"

  # Promote to admin
  rosterctl user edit 42 --role admin

  # Change email and role at once
  rosterctl user edit 42 --email alice@corp.example.com --role admin`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New display name")
	editCmd.Flags().StringVar(&editEmail, "email", "", "New email address")
	editCmd.Flags().StringVar(&editRole, "role", "", "New role (user|admin)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	req := &apiclient.UpdateUserRequest{}
	if cmd.Flags().Changed("name") {
		req.Name = &editName
	}
	if cmd.Flags().Changed("email") {
		req.Email = &editEmail
	}
	if cmd.Flags().Changed("role") {
		req.Role = &editRole
	}

	if req.Name == nil && req.Email == nil && req.Role == nil {
		return fmt.Errorf("nothing to change: pass at least one of --name, --email, --role")
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.UpdateUser(id, req)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, user,
		fmt.Sprintf("User '%s' updated successfully", user.Name))
}
