package services

import (
	"fmt"
	"regexp"
	"time"

	"inventory-api/internal/config"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// timeNow is stubbed in tests to exercise the skew window
var timeNow = time.Now

var totpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

type TOTPService struct {
	cfg *config.Config
}

func NewTOTPService(cfg *config.Config) *TOTPService {
	return &TOTPService{cfg: cfg}
}

// GenerateSecret generates a new TOTP shared secret for the given account.
// Returns the base32 secret and the otpauth provisioning URI for QR
// enrollment. SecretSize 20 gives 160 bits of entropy.
func (s *TOTPService) GenerateSecret(accountName string) (secret string, provisioningURI string, err error) {
	issuer := s.cfg.TOTP.Issuer
	if issuer == "" {
		issuer = "Enterprise Inventory"
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		SecretSize:  20,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	return key.Secret(), key.URL(), nil
}

// ValidateCode validates a submitted TOTP code against a secret, allowing
// ±1 time step of clock skew. Codes must be exactly six digits; anything
// else is rejected without matching.
func (s *TOTPService) ValidateCode(secret, code string) bool {
	if !totpCodePattern.MatchString(code) {
		return false
	}

	return validateTOTPAt(secret, code, timeNow())
}

func validateTOTPAt(secret, code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
