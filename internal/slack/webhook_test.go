package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	slackapi "github.com/slack-go/slack"
)

func TestWebhookClient_Post(t *testing.T) {
	var got slackapi.WebhookMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	c := NewWebhookClient(ts.URL, 0)
	if err := c.Post(context.Background(), "hello `world`"); err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if got.Text != "hello `world`" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestWebhookClient_PostErrors(t *testing.T) {
	t.Run("non 2xx", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("invalid_token"))
		}))
		defer ts.Close()

		err := NewWebhookClient(ts.URL, 0).Post(context.Background(), "x")
		var statusErr slackapi.StatusCodeError
		if !errors.As(err, &statusErr) {
			t.Fatalf("err = %v, want StatusCodeError", err)
		}
		if statusErr.Code != http.StatusForbidden {
			t.Errorf("Code = %d, want 403", statusErr.Code)
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := ts.URL
		ts.Close()

		if err := NewWebhookClient(url, 0).Post(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := NewWebhookClient(ts.URL, 0).Post(ctx, "x"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing url", func(t *testing.T) {
		if err := NewWebhookClient("", 0).Post(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
	})
}
