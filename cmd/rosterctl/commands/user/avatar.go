package user

import (
	"fmt"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/spf13/cobra"
)

var avatarUpload bool

var avatarCmd = &cobra.Command{
	Use:   "avatar <id>",
	Short: "Get a presigned avatar URL",
	Long: `Request a presigned URL for an entry's avatar image.

By default a download URL is returned. With --upload, an upload URL is
returned instead; PUT the image bytes to it directly. Avatar storage must
be enabled on the server.

Examples:
  # Get a download URL
  rosterctl user avatar 42

  # Get an upload URL
  rosterctl user avatar 42 --upload`,
	Args: cobra.ExactArgs(1),
	RunE: runAvatar,
}

func init() {
	avatarCmd.Flags().BoolVar(&avatarUpload, "upload", false, "Request an upload URL instead of a download URL")
}

func runAvatar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if avatarUpload {
		presigned, err := client.RequestAvatarUpload(id)
		if err != nil {
			return fmt.Errorf("failed to request upload URL: %w", err)
		}
		fmt.Printf("%s %s\n", presigned.Method, presigned.URL)
		fmt.Printf("Expires at %s\n", presigned.ExpiresAt)
		return nil
	}

	presigned, err := client.GetAvatarDownload(id)
	if err != nil {
		return fmt.Errorf("failed to get download URL: %w", err)
	}
	fmt.Printf("%s %s\n", presigned.Method, presigned.URL)
	fmt.Printf("Expires at %s\n", presigned.ExpiresAt)
	return nil
}
