package context

import (
	"fmt"
	"os"
	"sort"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured contexts",
	Long: `List all configured server contexts.

Shows the context name, server URL, and email for each saved context.
The current context is marked with an asterisk (*).

Examples:
  # List contexts as table
  rosterctl context list

  # List as JSON
  rosterctl context list -o json`,
	RunE: runContextList,
}

// ContextInfo represents context information for output.
type ContextInfo struct {
	Name      string `json:"name" yaml:"name"`
	Current   bool   `json:"current" yaml:"current"`
	ServerURL string `json:"server_url" yaml:"server_url"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
}

// ContextInfoList is a list of contexts for table rendering.
type ContextInfoList []ContextInfo

// Headers implements TableRenderer.
func (cl ContextInfoList) Headers() []string {
	return []string{"", "NAME", "SERVER", "EMAIL", "LOGGED IN"}
}

// Rows implements TableRenderer.
func (cl ContextInfoList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		marker := ""
		if c.Current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			c.Name,
			c.ServerURL,
			cmdutil.EmptyOr(c.Email, "-"),
			cmdutil.BoolToYesNo(c.LoggedIn),
		})
	}
	return rows
}

func runContextList(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	names := store.ListContexts()
	sort.Strings(names)

	infos := make(ContextInfoList, 0, len(names))
	for _, name := range names {
		ctx, err := store.GetContext(name)
		if err != nil {
			continue
		}
		infos = append(infos, ContextInfo{
			Name:      name,
			Current:   name == store.GetCurrentContextName(),
			ServerURL: ctx.ServerURL,
			Email:     ctx.Email,
			LoggedIn:  ctx.Token != "" && !ctx.IsExpired(),
		})
	}

	return cmdutil.PrintOutput(os.Stdout, infos, len(infos) == 0,
		"No contexts configured. Run 'rosterctl login --server <url>' to create one.", infos)
}
