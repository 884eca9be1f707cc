package domain

import "context"

// Translator wraps the external translation backend.
type Translator interface {
	// Translate returns text rendered into the target language. Backend
	// failures surface as errors; the caller decides whether the user sees
	// anything.
	Translate(ctx context.Context, text, target, locale string) (string, error)

	// ChangeLanguage validates code against the backend's supported set and
	// persists it as the user's target language. It always resolves to a
	// localized user-facing string, success or not, and never returns an
	// error past this boundary.
	ChangeLanguage(ctx context.Context, user *UserRecord, code, locale string) string
}

// Sender delivers text and sender actions to the messaging platform.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) error
	// SendAction sends a control action such as "mark_seen" or "typing_on".
	SendAction(ctx context.Context, recipientID, action string) error
}

// Sender actions understood by the platform send API.
const (
	ActionMarkSeen = "mark_seen"
	ActionTypingOn = "typing_on"
)
