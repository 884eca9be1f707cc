package userstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(SQLiteConfig{
		DBPath:          filepath.Join(t.TempDir(), "users.db"),
		DefaultLocale:   "en",
		DefaultLanguage: "en",
		Logger:          testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_GetAbsent(t *testing.T) {
	store := newTestSQLite(t)

	user, err := store.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		t.Errorf("absent user should be (nil, nil), got %+v", user)
	}
}

func TestSQLite_AddCreatesWithDefaults(t *testing.T) {
	store := newTestSQLite(t)

	user, err := store.Add(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "u1" || user.Locale != "en" || user.Language != "en" {
		t.Errorf("unexpected defaults: %+v", user)
	}
}

func TestSQLite_AddIdempotent(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update(ctx, "u1", map[string]string{"language": "fr"}); err != nil {
		t.Fatal(err)
	}

	// A second Add must not reset the record.
	user, err := store.Add(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if user.Language != "fr" {
		t.Errorf("re-adding an existing user must keep its fields, got %q", user.Language)
	}
}

func TestSQLite_Update(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1"); err != nil {
		t.Fatal(err)
	}

	user, err := store.Update(ctx, "u1", map[string]string{"language": "de", "locale": "fr"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Language != "de" || user.Locale != "fr" {
		t.Errorf("unexpected record after update: %+v", user)
	}
}

func TestSQLite_UpdateUnknownField(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update(ctx, "u1", map[string]string{"role": "admin"}); err == nil {
		t.Error("unknown fields must be rejected")
	}
}

func TestSQLite_UpdateMissingUser(t *testing.T) {
	store := newTestSQLite(t)

	if _, err := store.Update(context.Background(), "ghost", map[string]string{"language": "fr"}); err == nil {
		t.Error("updating a missing user should fail")
	}
}
