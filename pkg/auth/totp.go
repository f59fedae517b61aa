package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrInvalidCode is returned when a TOTP code does not match.
var ErrInvalidCode = errors.New("invalid verification code")

const qrCodeSize = 256

// totpOpts are the validation parameters for time-based codes. Skew of 1
// accepts codes from the adjacent 30-second steps to tolerate clock drift.
var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Enrollment is the material handed to a user enrolling a second factor.
type Enrollment struct {
	// Secret is the base32-encoded shared secret.
	Secret string `json:"secret"`

	// ProvisioningURI is the otpauth:// URI for authenticator apps.
	ProvisioningURI string `json:"provisioning_uri"`

	// QRCode is a data URI containing a PNG render of the provisioning URI.
	QRCode string `json:"qr_code"`
}

// GenerateEnrollment creates a fresh TOTP secret for the given account.
func GenerateEnrollment(issuer, accountName string) (*Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return &Enrollment{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		QRCode:          "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// VerifyCode checks a six-digit code against the shared secret.
func VerifyCode(code, secret string) error {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totpOpts)
	if err != nil || !ok {
		return ErrInvalidCode
	}
	return nil
}
