package domain

import "context"

// UserRecord is the per-user preference record, keyed by the platform sender id.
// Locale drives system strings (help, errors); Language is the translation
// target for ordinary messages.
type UserRecord struct {
	ID       string `json:"id"`
	Locale   string `json:"locale"`
	Language string `json:"language"`
}

// UserStore is the preference datastore. Implementations are remote (REST) or
// local (SQLite); callers never cache records across events.
type UserStore interface {
	// Get returns the record for id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*UserRecord, error)
	// Add creates a record for id with default locale and language.
	Add(ctx context.Context, id string) (*UserRecord, error)
	// Update patches the named fields and returns the updated record.
	Update(ctx context.Context, id string, fields map[string]string) (*UserRecord, error)
	Close() error
}

// Resolve implements get-or-create against a store.
func Resolve(ctx context.Context, store UserStore, id string) (*UserRecord, error) {
	user, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return store.Add(ctx, id)
}
