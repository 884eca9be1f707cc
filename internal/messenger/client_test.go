package messenger

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type capturedRequest struct {
	path string
	auth string
	body map[string]any
}

func newTestClient(t *testing.T, status int) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&captured.body)
		w.WriteHeader(status)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		APIBase:     srv.URL,
		AccessToken: "page-token",
		Logger:      testLogger(),
	})
	return c, captured
}

func TestSendText(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK)

	if err := c.SendText(context.Background(), "psid-1", "bonjour"); err != nil {
		t.Fatal(err)
	}

	if captured.path != "/me/messages" {
		t.Errorf("unexpected path %q", captured.path)
	}
	if captured.auth != "Bearer page-token" {
		t.Errorf("unexpected auth header %q", captured.auth)
	}
	recipient, _ := captured.body["recipient"].(map[string]any)
	if recipient["id"] != "psid-1" {
		t.Errorf("unexpected recipient: %v", captured.body["recipient"])
	}
	message, _ := captured.body["message"].(map[string]any)
	if message["text"] != "bonjour" {
		t.Errorf("unexpected message: %v", captured.body["message"])
	}
}

func TestSendAction(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK)

	if err := c.SendAction(context.Background(), "psid-1", "typing_on"); err != nil {
		t.Fatal(err)
	}

	if captured.body["sender_action"] != "typing_on" {
		t.Errorf("unexpected payload: %v", captured.body)
	}
}

func TestSend_APIError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusBadRequest)

	if err := c.SendText(context.Background(), "psid-1", "hi"); err == nil {
		t.Error("non-2xx API response should surface as an error")
	}
}
