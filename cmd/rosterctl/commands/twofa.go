package commands

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/marmos91/rosterd/cmd/rosterctl/cmdutil"
	"github.com/spf13/cobra"
)

var twofaQROutput string

var twofaCmd = &cobra.Command{
	Use:   "2fa",
	Short: "Manage two-factor authentication",
	Long: `Manage two-factor authentication for your account.

Examples:
  # Enroll a new authenticator
  rosterctl 2fa enroll

  # Enroll and save the QR code to a file
  rosterctl 2fa enroll --qr-output totp.png`,
}

var twofaEnrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a TOTP authenticator",
	Long: `Generate a fresh TOTP enrollment for your account.

The server returns a secret and a provisioning URI. Scan the QR code (or
enter the secret manually) with an authenticator app, then verify a code
at the next login to activate the second factor.`,
	RunE: runTwofaEnroll,
}

func init() {
	twofaEnrollCmd.Flags().StringVar(&twofaQROutput, "qr-output", "", "Write the QR code PNG to this file")
	twofaCmd.AddCommand(twofaEnrollCmd)
}

func runTwofaEnroll(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	enrollment, err := client.EnrollSecondFactor()
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}

	fmt.Println("Two-factor enrollment created.")
	fmt.Printf("  Secret:  %s\n", enrollment.Secret)
	fmt.Printf("  URI:     %s\n", enrollment.ProvisioningURI)

	if twofaQROutput != "" && enrollment.QRCode != "" {
		png, err := base64.StdEncoding.DecodeString(enrollment.QRCode)
		if err != nil {
			return fmt.Errorf("failed to decode QR code: %w", err)
		}
		if err := os.WriteFile(twofaQROutput, png, 0600); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
		fmt.Printf("  QR code: %s\n", twofaQROutput)
	}

	fmt.Println("\nScan the QR code with an authenticator app, then log in again")
	fmt.Println("with a code to activate the second factor.")
	return nil
}
