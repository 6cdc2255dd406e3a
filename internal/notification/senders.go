package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/config"
)

// httpSender posts a JSON payload to a provider's REST endpoint. All
// three channels use the same envelope; only endpoint, key and sender
// identity differ.
type httpSender struct {
	channel  string
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
	logger   zerolog.Logger
}

func newEmailSender(cfg config.NotificationConfig, logger zerolog.Logger) Sender {
	return newHTTPSender("email", cfg.EmailEndpoint, cfg.EmailAPIKey, cfg.EmailFrom, logger)
}

func newSMSSender(cfg config.NotificationConfig, logger zerolog.Logger) Sender {
	return newHTTPSender("sms", cfg.SMSEndpoint, cfg.SMSAPIKey, cfg.SMSFrom, logger)
}

func newWhatsAppSender(cfg config.NotificationConfig, logger zerolog.Logger) Sender {
	return newHTTPSender("whatsapp", cfg.WhatsAppEndpoint, cfg.WhatsAppAPIKey, cfg.WhatsAppFrom, logger)
}

func newHTTPSender(channel, endpoint, apiKey, from string, logger zerolog.Logger) Sender {
	return &httpSender{
		channel:  channel,
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("sender", channel).Logger(),
	}
}

type providerPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Send delivers the message to the provider endpoint. Without an
// endpoint configured it logs the content and reports ErrNotConfigured
// so the dispatcher records the channel as not delivered.
func (s *httpSender) Send(ctx context.Context, msg Message) error {
	if s.endpoint == "" {
		s.logger.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Str("body", msg.Body).
			Msg("channel not configured, logging message instead of sending")
		return ErrNotConfigured
	}

	payload, err := json.Marshal(providerPayload{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", s.channel, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", s.channel, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver %s notification: %w", s.channel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s provider returned status %d", s.channel, resp.StatusCode)
	}

	s.logger.Debug().Str("to", msg.To).Msg("notification delivered")
	return nil
}
