package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/marmos91/rosterd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	flagsLimit  int
	flagsOffset int
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List monitoring flags",
	Long: `List flags raised by the anomaly detector, newest first.

A flag records an actor that exceeded the configured write-rate threshold
within a detection window. Flags are observational; flagged actors are
never blocked. Requires admin privileges.

Examples:
  # Show the latest flags
  rosterctl flags

  # Output as JSON
  rosterctl flags -o json`,
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().IntVar(&flagsLimit, "limit", 50, "Maximum number of flags to return")
	flagsCmd.Flags().IntVar(&flagsOffset, "offset", 0, "Number of flags to skip")
}

// FlagList is a list of monitoring flags for table rendering.
type FlagList []apiclient.MonitoringFlag

// Headers implements TableRenderer.
func (fl FlagList) Headers() []string {
	return []string{"ID", "ACTOR", "REASON", "WINDOW START", "RAISED"}
}

// Rows implements TableRenderer.
func (fl FlagList) Rows() [][]string {
	rows := make([][]string, 0, len(fl))
	for _, f := range fl {
		rows = append(rows, []string{
			fmt.Sprintf("%d", f.ID),
			fmt.Sprintf("%d", f.ActorID),
			f.Reason,
			f.WindowStart.Local().Format(time.RFC3339),
			f.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return rows
}

func runFlags(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	page, err := client.ListFlags(flagsLimit, flagsOffset)
	if err != nil {
		return fmt.Errorf("failed to list flags: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, page, len(page.Flags) == 0, "No flags found.", FlagList(page.Flags))
}
