package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guestlink/internal/shared/config"
)

// SMSSender sends a single SMS through the provider and returns the
// provider's message SID.
type SMSSender interface {
	SendSMS(ctx context.Context, from, to, body string) (string, error)
}

// TwilioSMSSender talks to the Twilio-compatible messages REST endpoint.
type TwilioSMSSender struct {
	config *config.SMSConfig
	client *http.Client
}

func NewTwilioSMSSender(cfg *config.SMSConfig) (*TwilioSMSSender, error) {
	if err := validateSMSConfig(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TwilioSMSSender{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func validateSMSConfig(cfg *config.SMSConfig) error {
	if cfg == nil {
		return fmt.Errorf("SMS config is nil")
	}
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("SMS API base URL is required")
	}
	if cfg.AccountSID == "" {
		return fmt.Errorf("SMS account SID is required")
	}
	if cfg.AuthToken == "" {
		return fmt.Errorf("SMS auth token is required")
	}
	return nil
}

type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Message      string `json:"message"`
	Code         int    `json:"code"`
}

func (s *TwilioSMSSender) SendSMS(ctx context.Context, from, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json",
		strings.TrimRight(s.config.APIBaseURL, "/"), s.config.AccountSID)

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("SMS request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read SMS response: %w", err)
	}

	var parsed twilioMessageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse SMS response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := parsed.Message
		if message == "" {
			message = parsed.ErrorMessage
		}
		return "", fmt.Errorf("SMS provider rejected message (status %d, code %d): %s",
			resp.StatusCode, parsed.Code, message)
	}

	if parsed.Status == "failed" || parsed.Status == "undelivered" {
		return parsed.SID, fmt.Errorf("SMS provider reported %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	return parsed.SID, nil
}
