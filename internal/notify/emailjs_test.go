package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/j-ir11/videojuegos/internal/checkout"
)

func TestSendConfirmationPostsTemplateParams(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewSender(Config{
		Endpoint:   server.URL,
		ServiceID:  "service_abc",
		TemplateID: "template_xyz",
		PublicKey:  "public_key",
	})

	params := checkout.ConfirmationParams{
		UserName:  "Ana López",
		UserEmail: "ana@example.com",
		OrderRef:  "ABCD1234",
		Total:     "200.00",
		Date:      "1 de junio de 2024",
	}
	if err := sender.SendConfirmation(context.Background(), params); err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}

	if got.ServiceID != "service_abc" || got.TemplateID != "template_xyz" || got.UserID != "public_key" {
		t.Errorf("request identity = %+v", got)
	}
	if got.TemplateParams != params {
		t.Errorf("template params = %+v, want %+v", got.TemplateParams, params)
	}
}

func TestSendConfirmationNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := NewSender(Config{Endpoint: server.URL})
	if err := sender.SendConfirmation(context.Background(), checkout.ConfirmationParams{}); err == nil {
		t.Fatal("expected error on 429 response")
	}
}
