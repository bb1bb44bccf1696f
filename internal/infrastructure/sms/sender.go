package sms

import (
	"context"
	"fmt"

	"github.com/otp-auth-api/internal/config"
)

// Sender delivers a verification code to a mobile number through an external
// gateway. Implementations must be safe for concurrent use.
type Sender interface {
	SendVerificationCode(ctx context.Context, mobile, code string) error
}

// NewSender selects the gateway implementation by configuration.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.SMSProvider {
	case "kavenegar":
		return NewKavenegarSender(cfg)
	case "sns":
		return NewSNSSender(cfg)
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.SMSProvider)
	}
}
