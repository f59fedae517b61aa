package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/internal/cli/credentials"
	"github.com/marmos91/rosterd/internal/cli/prompt"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	loginServer   string
	loginEmail    string
	loginPassword string
	loginCode     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a rosterd server",
	Long: `Authenticate with a rosterd server and store the session token.

On first login, you must specify the server URL. Subsequent logins will
use the stored server URL unless overridden. Accounts with a second factor
enrolled are prompted for their authenticator code after the password check.

Examples:
  # First login to a server
  rosterctl login --server http://localhost:8080 --email admin@rosterd.local

  # Login with password on command line (less secure)
  rosterctl login --server http://localhost:8080 -e admin@rosterd.local -p secret

  # Re-login to stored server
  rosterctl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL (required on first login)")
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	loginCmd.Flags().StringVar(&loginCode, "code", "", "Authenticator code (prompts if the account has a second factor)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	// Determine server URL
	serverURLStr := loginServer
	if serverURLStr == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify server URL:\n" +
				"  rosterctl login --server http://localhost:8080")
		}
		serverURLStr = ctx.ServerURL
	}

	// Validate server URL
	parsedURL, err := url.Parse(serverURLStr)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURLStr = parsedURL.String()
	}

	// Get email (prompt if not provided)
	email := loginEmail
	if email == "" {
		email, err = prompt.InputRequired("Email")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	// Get password (prompt if not provided)
	password := loginPassword
	if password == "" {
		password, err = prompt.Password("Password")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client := apiclient.New(serverURLStr)

	fmt.Printf("Logging in to %s as %s...\n", serverURLStr, email)
	resp, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	session := resp.Session
	user := resp.User

	// Second factor: exchange the pending token for a session
	if resp.RequiresTwoFactor {
		code := loginCode
		if code == "" {
			code, err = prompt.InputRequired("Authenticator code")
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
		}

		result, err := client.VerifySecondFactor(resp.PendingToken, code)
		if err != nil {
			return fmt.Errorf("second factor verification failed: %w", err)
		}
		session = result.Session
		user = result.User
	}

	if session == nil {
		return fmt.Errorf("server did not return a session token")
	}

	// Determine context name
	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURLStr)
	}

	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() && session.ExpiresIn > 0 {
		expiresAt = time.Now().Add(session.ExpiresInDuration())
	}

	ctx := &credentials.Context{
		ServerURL: serverURLStr,
		Email:     email,
		Token:     session.Token,
		ExpiresAt: expiresAt,
	}

	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if user != nil {
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	} else {
		fmt.Println("Logged in")
	}
	fmt.Printf("Session valid until %s\n", expiresAt.Local().Format(time.RFC1123))
	return nil
}
