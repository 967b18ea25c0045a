// Package notify sends transactional email through an EmailJS-compatible
// HTTP endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/j-ir11/videojuegos/internal/checkout"
)

// Config identifies the EmailJS service and template to render.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

type Sender struct {
	cfg    Config
	client *http.Client
}

func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string                      `json:"service_id"`
	TemplateID     string                      `json:"template_id"`
	UserID         string                      `json:"user_id"`
	TemplateParams checkout.ConfirmationParams `json:"template_params"`
}

// SendConfirmation posts the confirmation template params. Any non-2xx
// response is an error; the caller decides whether that fails the operation.
func (s *Sender) SendConfirmation(ctx context.Context, params checkout.ConfirmationParams) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Println("[NOTIFY] [ERROR] email send rejected:", resp.StatusCode)
		return fmt.Errorf("email send failed: status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
