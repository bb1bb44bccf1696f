package sms

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/otp-auth-api/internal/config"
)

// SNSSender is the AWS SNS gateway, used in regions where the primary
// provider has no coverage.
type SNSSender struct {
	client *sns.Client
}

func NewSNSSender(cfg *config.Config) (*SNSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &SNSSender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *SNSSender) SendVerificationCode(ctx context.Context, mobile, code string) error {
	message := fmt.Sprintf("Your verification code: %s", code)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &mobile,
		Message:     &message,
	})
	return err
}
