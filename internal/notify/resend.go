package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendTransport sends email through the Resend HTTP API.
type ResendTransport struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewResendTransport creates a transport for the Resend API. baseURL may
// be empty to use the production endpoint; tests point it at a local
// server.
func NewResendTransport(apiKey, baseURL string) *ResendTransport {
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendTransport{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// SendEmail posts one email to the Resend API and returns the provider
// message id.
func (t *ResendTransport) SendEmail(ctx context.Context, from, to, subject, html, text string) (string, error) {
	body, err := json.Marshal(resendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("marshal email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read resend response: %w", err)
	}
	var parsed resendResponse
	_ = json.Unmarshal(raw, &parsed)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return "", fmt.Errorf("resend api: %s (status %d)", parsed.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("resend api: status %d", resp.StatusCode)
	}
	return parsed.ID, nil
}
