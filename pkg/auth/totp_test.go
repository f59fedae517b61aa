package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestGenerateEnrollment(t *testing.T) {
	enrollment, err := GenerateEnrollment("rosterd", "alice@example.com")
	if err != nil {
		t.Fatalf("failed to generate enrollment: %v", err)
	}

	if enrollment.Secret == "" {
		t.Error("expected a secret")
	}
	if !strings.HasPrefix(enrollment.ProvisioningURI, "otpauth://totp/") {
		t.Errorf("unexpected provisioning URI: %s", enrollment.ProvisioningURI)
	}
	if !strings.Contains(enrollment.ProvisioningURI, "alice%40example.com") {
		t.Errorf("expected account name in URI: %s", enrollment.ProvisioningURI)
	}
	if !strings.HasPrefix(enrollment.QRCode, "data:image/png;base64,") {
		t.Errorf("expected PNG data URI, got prefix %.40s", enrollment.QRCode)
	}
}

func TestVerifyCode(t *testing.T) {
	enrollment, err := GenerateEnrollment("rosterd", "alice@example.com")
	if err != nil {
		t.Fatalf("failed to generate enrollment: %v", err)
	}

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	if err != nil {
		t.Fatalf("failed to generate code: %v", err)
	}

	if err := VerifyCode(code, enrollment.Secret); err != nil {
		t.Errorf("expected current code to verify, got %v", err)
	}

	if err := VerifyCode("000000", enrollment.Secret); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

func TestVerifyCodeAcceptsAdjacentStep(t *testing.T) {
	enrollment, err := GenerateEnrollment("rosterd", "alice@example.com")
	if err != nil {
		t.Fatalf("failed to generate enrollment: %v", err)
	}

	// A code from the previous 30s step is still valid (skew of 1).
	code, err := totp.GenerateCode(enrollment.Secret, time.Now().Add(-30*time.Second))
	if err != nil {
		t.Fatalf("failed to generate code: %v", err)
	}

	if err := VerifyCode(code, enrollment.Secret); err != nil {
		t.Errorf("expected adjacent-step code to verify, got %v", err)
	}
}
