package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/otp-auth-api/internal/config"
)

const kavenegarBaseURL = "https://api.kavenegar.com/v1"

// KavenegarSender sends verification codes through the Kavenegar
// verify/lookup endpoint. Success requires HTTP 200 and a nested
// return.status of 200 in the response body; anything else is a provider
// error even when the transport succeeded.
type KavenegarSender struct {
	apiKey   string
	template string
	client   *http.Client
}

func NewKavenegarSender(cfg *config.Config) (*KavenegarSender, error) {
	if cfg.KavenegarAPIKey == "" {
		return nil, errors.New("KAVENEGAR_API_KEY not set")
	}
	return &KavenegarSender{
		apiKey:   cfg.KavenegarAPIKey,
		template: cfg.KavenegarTemplate,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type kavenegarResponse struct {
	Return struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"return"`
}

func (s *KavenegarSender) SendVerificationCode(ctx context.Context, mobile, code string) error {
	endpoint := fmt.Sprintf("%s/%s/verify/lookup.json", kavenegarBaseURL, s.apiKey)
	form := url.Values{
		"receptor": {mobile},
		"template": {s.template},
		"token":    {code},
		"type":     {"sms"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build kavenegar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("kavenegar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("kavenegar returned %d: %s", resp.StatusCode, body)
	}

	var kr kavenegarResponse
	if err := json.NewDecoder(resp.Body).Decode(&kr); err != nil {
		return fmt.Errorf("decode kavenegar response: %w", err)
	}
	if kr.Return.Status != http.StatusOK {
		return fmt.Errorf("kavenegar status %d: %s", kr.Return.Status, kr.Return.Message)
	}
	return nil
}
