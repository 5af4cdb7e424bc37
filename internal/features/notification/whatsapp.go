package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WhatsAppSender posts text messages to a WhatsApp gateway HTTP API
type WhatsAppSender struct {
	apiURL string
	token  string
	client *http.Client
}

type whatsAppRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewWhatsAppSender(apiURL, token string) *WhatsAppSender {
	return &WhatsAppSender{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *WhatsAppSender) Channel() Channel {
	return ChannelWhatsApp
}

func (s *WhatsAppSender) Deliver(ctx context.Context, recipient, _, body string) error {
	payload, err := json.Marshal(whatsAppRequest{
		Phone:   NormalizePhone(recipient),
		Message: body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// NormalizePhone converts local Indonesian numbers (08xx, +628xx) to the 628xx form gateways expect
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	p := digits.String()
	if strings.HasPrefix(p, "0") {
		return "62" + p[1:]
	}
	return p
}
