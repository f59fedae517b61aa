package user

import (
	"fmt"
	"os"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/internal/cli/prompt"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	createName     string
	createEmail    string
	createPassword string
	createRole     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new directory entry",
	Long: `Create a new directory entry on the rosterd server.

If name, email, or password are not provided via flags, you will be
prompted to enter them interactively. Requires admin privileges.

Examples:
  # Create an entry interactively
  rosterctl user create

  # Create an entry with flags
  rosterctl user create --name Alice --email alice@example.com --password secret123

  # Create an admin entry
  rosterctl user create --name Ops --email ops@example.com --password secret123 --role admin`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Display name (required)")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address (required)")
	createCmd.Flags().StringVarP(&createPassword, "password", "p", "", "Password (prompts if not provided)")
	createCmd.Flags().StringVar(&createRole, "role", "user", "Role (user|admin)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	// Check if running interactively (no flags provided)
	interactive := !cmd.Flags().Changed("name")

	name := createName
	if name == "" {
		name, err = prompt.InputRequired("Name")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	email := createEmail
	if email == "" {
		email, err = prompt.InputRequired("Email")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password := createPassword
	if password == "" {
		password, err = prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	role := createRole
	if interactive && !cmd.Flags().Changed("role") {
		role, err = prompt.Select("Role", []prompt.SelectOption{
			{Label: "user", Value: "user", Description: "Regular account with read access"},
			{Label: "admin", Value: "admin", Description: "Administrator with full access"},
		})
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	user, err := client.CreateUser(&apiclient.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, user,
		fmt.Sprintf("User '%s' created successfully (ID %d)", user.Name, user.ID))
}
