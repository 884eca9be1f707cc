package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"lingobot/internal/dispatch"
	"lingobot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// --- fakes wired through the dispatcher ---

type fakeStore struct{}

func (fakeStore) Get(ctx context.Context, id string) (*domain.UserRecord, error) {
	return &domain.UserRecord{ID: id, Locale: "en", Language: "fr"}, nil
}
func (fakeStore) Add(ctx context.Context, id string) (*domain.UserRecord, error) {
	return &domain.UserRecord{ID: id, Locale: "en", Language: "en"}, nil
}
func (fakeStore) Update(ctx context.Context, id string, fields map[string]string) (*domain.UserRecord, error) {
	return &domain.UserRecord{ID: id, Locale: "en", Language: fields["language"]}, nil
}
func (fakeStore) Close() error { return nil }

type fakeTranslator struct{}

func (fakeTranslator) Translate(ctx context.Context, text, target, locale string) (string, error) {
	return "[" + target + "] " + text, nil
}
func (fakeTranslator) ChangeLanguage(ctx context.Context, user *domain.UserRecord, code, locale string) string {
	return "changed to " + code
}

// recordingSender pushes every delivered text onto a channel so tests can
// wait for background dispatch to finish.
type recordingSender struct {
	texts chan string
}

func (s *recordingSender) SendText(ctx context.Context, recipientID, text string) error {
	s.texts <- text
	return nil
}
func (s *recordingSender) SendAction(ctx context.Context, recipientID, action string) error {
	return nil
}

func newTestServer(sender domain.Sender) *Server {
	d := dispatch.New(dispatch.Config{
		Store:      fakeStore{},
		Translator: fakeTranslator{},
		Sender:     sender,
		Logger:     testLogger(),
	})
	return New(Config{
		WebhookPath: "/webhook",
		AppSecret:   "app-secret",
		VerifyToken: "verify-token",
		Dispatcher:  d,
		Logger:      testLogger(),
	})
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

// --- GET handshake ---

func TestVerification_Match(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=verify-token&hub.challenge=challenge-1234", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "challenge-1234" {
		t.Errorf("expected challenge echoed verbatim, got %q", rr.Body.String())
	}
}

func TestVerification_WrongToken(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=x", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestVerification_WrongMode(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	req := httptest.NewRequest("GET", "/webhook?hub.mode=unsubscribe&hub.verify_token=verify-token&hub.challenge=x", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

// --- POST delivery ---

func postDelivery(srv *Server, body []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	if sig != "" {
		req.Header.Set("X-Hub-Signature", sig)
	}
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func TestDelivery_MissingSignature(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	rr := postDelivery(srv, []byte(`{"object":"page","entry":[]}`), "")
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestDelivery_InvalidSignature(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	rr := postDelivery(srv, []byte(`{"object":"page","entry":[]}`), "sha1=deadbeef")
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestDelivery_WrongObject(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	body := []byte(`{"object":"user","entry":[]}`)
	rr := postDelivery(srv, body, signBody(body, "app-secret"))
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-page object, got %d", rr.Code)
	}
}

func TestDelivery_MalformedJSON(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	body := []byte(`{not json`)
	rr := postDelivery(srv, body, signBody(body, "app-secret"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestDelivery_ValidDispatchesAllEvents(t *testing.T) {
	sender := &recordingSender{texts: make(chan string, 8)}
	srv := newTestServer(sender)

	body := []byte(`{
		"object": "page",
		"entry": [
			{"messaging": [
				{"sender": {"id": "u1"}, "message": {"text": "hello"}},
				{"sender": {"id": "u2"}, "message": {"text": "world"}}
			]}
		]
	}`)
	rr := postDelivery(srv, body, signBody(body, "app-secret"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != respEventReceived {
		t.Errorf("expected %q body, got %q", respEventReceived, rr.Body.String())
	}

	// Processing is fire-and-forget relative to the response; wait for it.
	got := make([]string, 0, 2)
	for len(got) < 2 {
		select {
		case text := <-sender.texts:
			got = append(got, text)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for replies, got %v", got)
		}
	}
	joined := strings.Join(got, "|")
	if !strings.Contains(joined, "hello") || !strings.Contains(joined, "world") {
		t.Errorf("expected both events translated, got %v", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&recordingSender{texts: make(chan string, 8)})
	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("unexpected health body: %s", body)
	}
}
