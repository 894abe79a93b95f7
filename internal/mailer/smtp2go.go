package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sipblog/internal/config"
)

type Mailer interface {
	Send(ctx context.Context, sender, subject, textBody string) error
}

// SMTP2GoClient relays mail through an SMTP2GO-style JSON API. One attempt
// per call, bounded by the configured client timeout; retries are up to the
// person filling in the form.
type SMTP2GoClient struct {
	cfg    *config.Config
	client *http.Client
}

type sendRequest struct {
	APIKey   string   `json:"api_key"`
	Sender   string   `json:"sender"`
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body"`
}

func NewSMTP2GoClient(cfg *config.Config) *SMTP2GoClient {
	return &SMTP2GoClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Mail.Timeout},
	}
}

func (m *SMTP2GoClient) Send(ctx context.Context, sender, subject, textBody string) error {
	payload := sendRequest{
		APIKey:   m.cfg.Mail.APIKey,
		Sender:   sender,
		To:       []string{m.cfg.Mail.Recipient},
		Subject:  subject,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации письма: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Mail.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка при отправке письма: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("почтовый API вернул статус %d", resp.StatusCode)
	}

	return nil
}
