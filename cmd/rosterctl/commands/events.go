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
	eventsLimit  int
	eventsOffset int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List mutation events",
	Long: `List the most recent directory mutation events, newest first.

Every create, update, and delete against the directory is recorded in an
append-only log. Requires admin privileges.

Examples:
  # Show the latest events
  rosterctl events

  # Page through older events
  rosterctl events --limit 20 --offset 40

  # Output as JSON
  rosterctl events -o json`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "Maximum number of events to return")
	eventsCmd.Flags().IntVar(&eventsOffset, "offset", 0, "Number of events to skip")
}

// EventList is a list of mutation events for table rendering.
type EventList []apiclient.MutationEvent

// Headers implements TableRenderer.
func (el EventList) Headers() []string {
	return []string{"ID", "ACTOR", "ACTION", "ENTITY", "WHEN"}
}

// Rows implements TableRenderer.
func (el EventList) Rows() [][]string {
	rows := make([][]string, 0, len(el))
	for _, e := range el {
		actor := "-"
		if e.ActorID != nil {
			actor = fmt.Sprintf("%d", *e.ActorID)
		}
		entity := fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			actor,
			e.Action,
			entity,
			e.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return rows
}

func runEvents(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	page, err := client.ListEvents(eventsLimit, eventsOffset)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, page, len(page.Events) == 0, "No events found.", EventList(page.Events))
}
