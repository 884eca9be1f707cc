// Package webhook exposes the HTTP endpoint layer: the subscription
// handshake, event delivery, metrics, health, and the read-only log dir.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingobot/internal/dispatch"
	"lingobot/internal/domain"
	"lingobot/internal/metrics"
)

const maxBodyBytes = 1 << 20 // 1MB

// Fixed response strings. The platform only checks status codes, but fixed
// bodies make curl-level debugging unambiguous.
const (
	respEventReceived  = "EVENT_RECEIVED"
	respBadVerifyToken = "Verification token mismatch"
	respBadSignature   = "Invalid request signature"
	respUnexpectedBody = "Unexpected webhook object"
	respMalformedBody  = "Malformed request body"
)

// Server is the webhook HTTP server.
type Server struct {
	host        string
	port        int
	webhookPath string
	appSecret   string
	verifyToken string
	logDir      string

	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	server     *http.Server
}

type Config struct {
	Host        string
	Port        int
	WebhookPath string
	AppSecret   string
	VerifyToken string
	LogDir      string
	Dispatcher  *dispatch.Dispatcher
	Logger      *slog.Logger
}

func New(cfg Config) *Server {
	path := cfg.WebhookPath
	if path == "" {
		path = "/webhook"
	}
	return &Server{
		host:        cfg.Host,
		port:        cfg.Port,
		webhookPath: path,
		appSecret:   cfg.AppSecret,
		verifyToken: cfg.VerifyToken,
		logDir:      cfg.LogDir,
		dispatcher:  cfg.Dispatcher,
		logger:      cfg.Logger,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get(s.webhookPath, s.handleVerification)
	r.Post(s.webhookPath, s.handleDelivery)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if s.logDir != "" {
		fs := http.StripPrefix("/logs/", http.FileServer(http.Dir(s.logDir)))
		r.Get("/logs/*", fs.ServeHTTP)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("webhook server starting", "addr", s.server.Addr, "path", s.webhookPath)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	}
}

// handleVerification answers the one-time subscription handshake: echo the
// challenge when mode and verify token match, 403 otherwise.
func (s *Server) handleVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == s.verifyToken {
		s.logger.Info("webhook subscription verified")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, challenge)
		return
	}

	s.logger.Warn("webhook verification failed", "mode", mode)
	http.Error(w, respBadVerifyToken, http.StatusForbidden)
}

// handleDelivery validates signature and shape synchronously, then acks with
// 200 and processes events in the background. The 200 acknowledges receipt
// only, not processing completion.
func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, respMalformedBody, http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sig := signatureHeader(r.Header.Get)
	if !VerifySignature(body, sig, s.appSecret) {
		metrics.DeliveriesTotal.WithLabelValues("bad_signature").Inc()
		s.logger.Warn("invalid webhook signature", "signature", sig, "body", string(body))
		http.Error(w, respBadSignature, http.StatusForbidden)
		return
	}

	var payload domain.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.DeliveriesTotal.WithLabelValues("bad_payload").Inc()
		s.logger.Warn("malformed webhook payload", "err", err)
		http.Error(w, respMalformedBody, http.StatusBadRequest)
		return
	}

	if payload.Object != "page" {
		metrics.DeliveriesTotal.WithLabelValues("wrong_object").Inc()
		s.logger.Warn("unexpected webhook object", "object", payload.Object)
		http.Error(w, respUnexpectedBody, http.StatusForbidden)
		return
	}

	metrics.DeliveriesTotal.WithLabelValues("accepted").Inc()

	deliveryID := uuid.New().String()
	events := 0
	for _, entry := range payload.Entry {
		events += len(entry.Messaging)
	}
	s.logger.Info("webhook delivery accepted", "delivery", deliveryID, "entries", len(payload.Entry), "events", events)

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, respEventReceived)

	// Detach from the request context: processing outlives the response.
	go s.dispatcher.HandleDelivery(context.WithoutCancel(r.Context()), deliveryID, &payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// requestLogger logs one line per request with method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
