// Package dispatch routes inbound webhook events: command parsing,
// user resolution, and response construction.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lingobot/internal/domain"
	"lingobot/internal/i18n"
	"lingobot/internal/metrics"
)

// Postback payloads understood by the dispatcher.
const (
	PayloadGetStarted     = "get_started"
	PayloadGetHelp        = "get_help"
	PayloadChangeLanguage = "change_language"
)

// Alerter receives operator notifications for repeated downstream failures.
type Alerter interface {
	Notify(text string)
}

// Dispatcher processes the events of one webhook delivery. Each event is
// handled independently: one event's failure never aborts its siblings.
type Dispatcher struct {
	store      domain.UserStore
	translator domain.Translator
	sender     domain.Sender
	alerter    Alerter // optional
	logger     *slog.Logger
}

type Config struct {
	Store      domain.UserStore
	Translator domain.Translator
	Sender     domain.Sender
	Alerter    Alerter
	Logger     *slog.Logger
}

func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		store:      cfg.Store,
		translator: cfg.Translator,
		sender:     cfg.Sender,
		alerter:    cfg.Alerter,
		logger:     cfg.Logger,
	}
}

// HandleDelivery processes every event of a delivery. It runs in the
// background relative to the webhook response: the HTTP 200 acknowledges
// receipt only, not completion.
func (d *Dispatcher) HandleDelivery(ctx context.Context, deliveryID string, payload *domain.WebhookPayload) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in delivery processing", "delivery", deliveryID, "panic", r)
		}
	}()

	for _, entry := range payload.Entry {
		for i := range entry.Messaging {
			event := &entry.Messaging[i]
			start := time.Now()
			kind := event.Kind()

			if err := d.handleEvent(ctx, event, kind); err != nil {
				metrics.EventsTotal.WithLabelValues(kind.String(), "error").Inc()
				d.logger.Error("event handling failed",
					"delivery", deliveryID,
					"kind", kind.String(),
					"sender", event.Sender.ID,
					"err", err,
				)
				if d.alerter != nil {
					d.alerter.Notify(fmt.Sprintf("event handling failed (%s): %v", kind, err))
				}
				continue
			}

			switch kind {
			case domain.KindIgnorable, domain.KindUnknown:
				metrics.EventsTotal.WithLabelValues(kind.String(), "skipped").Inc()
			default:
				metrics.EventsTotal.WithLabelValues(kind.String(), "ok").Inc()
			}
			metrics.EventDuration.Observe(time.Since(start).Seconds())
		}
	}
}

func (d *Dispatcher) handleEvent(ctx context.Context, event *domain.MessagingEvent, kind domain.EventKind) error {
	switch kind {
	case domain.KindIgnorable:
		return nil
	case domain.KindUnknown:
		// Logged, never answered: the user sees silence for malformed events.
		d.logger.Warn("unknown event kind", "sender", event.Sender.ID)
		return nil
	}

	senderID := event.Sender.ID

	// Indicators are best-effort: "seen" then "typing", sequentially, and a
	// failure does not gate the reply.
	if err := d.sender.SendAction(ctx, senderID, domain.ActionMarkSeen); err != nil {
		metrics.SendFailuresTotal.Inc()
		d.logger.Warn("mark_seen failed", "sender", senderID, "err", err)
	}
	if err := d.sender.SendAction(ctx, senderID, domain.ActionTypingOn); err != nil {
		metrics.SendFailuresTotal.Inc()
		d.logger.Warn("typing_on failed", "sender", senderID, "err", err)
	}

	user, err := domain.Resolve(ctx, d.store, senderID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", senderID, err)
	}

	var reply string
	switch kind {
	case domain.KindPostback:
		reply = d.handlePostback(ctx, user, event.Postback)
	case domain.KindMessage:
		reply, err = d.handleMessage(ctx, user, event.Message)
		if err != nil {
			return err
		}
	}

	if reply == "" {
		return nil
	}
	if err := d.sender.SendText(ctx, senderID, reply); err != nil {
		metrics.SendFailuresTotal.Inc()
		return fmt.Errorf("send reply to %s: %w", senderID, err)
	}
	return nil
}

// handlePostback switches on the button payload. Unknown payloads are logged
// and produce no reply.
func (d *Dispatcher) handlePostback(ctx context.Context, user *domain.UserRecord, pb *domain.Postback) string {
	switch pb.Payload {
	case PayloadGetStarted, PayloadGetHelp:
		return i18n.T(user.Locale, i18n.KeyHelp)
	case PayloadChangeLanguage:
		code := LanguageFromTitle(pb.Title)
		return d.translator.ChangeLanguage(ctx, user, code, user.Locale)
	default:
		d.logger.Warn("unsupported postback payload", "user", user.ID, "payload", pb.Payload)
		return ""
	}
}

// handleMessage applies the command table to free text. Attachments short-
// circuit before any text processing.
func (d *Dispatcher) handleMessage(ctx context.Context, user *domain.UserRecord, msg *domain.Message) (string, error) {
	if len(msg.Attachments) > 0 {
		return i18n.T(user.Locale, i18n.KeyAttachmentsUnsupported), nil
	}

	cmd := ParseCommand(msg.Text)
	switch cmd.Kind {
	case CmdHelp:
		return i18n.T(user.Locale, i18n.KeyHelp), nil
	case CmdChangeLanguage:
		return d.translator.ChangeLanguage(ctx, user, cmd.Arg, user.Locale), nil
	default:
		translated, err := d.translator.Translate(ctx, msg.Text, user.Language, user.Locale)
		if err != nil {
			// Backend failure: log at the boundary, the user sees silence.
			return "", fmt.Errorf("translate for %s: %w", user.ID, err)
		}
		return translated, nil
	}
}
