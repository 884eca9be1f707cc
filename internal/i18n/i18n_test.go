package i18n

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestT_KnownLocale(t *testing.T) {
	got := T("fr", KeyAttachmentsUnsupported)
	if !strings.Contains(got, "pièces jointes") {
		t.Errorf("expected French string, got %q", got)
	}
}

func TestT_FallbackToEnglish(t *testing.T) {
	got := T("zz", KeyHelp)
	if got != T("en", KeyHelp) {
		t.Errorf("unsupported locale should fall back to English, got %q", got)
	}
}

func TestT_EmptyLocale(t *testing.T) {
	if got := T("", KeyHelp); got != T("en", KeyHelp) {
		t.Errorf("empty locale should use the default, got %q", got)
	}
}

func TestT_FormatArgs(t *testing.T) {
	got := T("en", KeyLanguageChanged, "French")
	if !strings.Contains(got, "French") {
		t.Errorf("expected the language name substituted, got %q", got)
	}
}

func TestT_UnknownKey(t *testing.T) {
	if got := T("en", "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown keys are returned as-is, got %q", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	bundle := "help: \"custom nl help\"\nattachments_unsupported: \"geen bijlagen\"\n"
	if err := os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte(bundle), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := LoadOverrides(dir, logger); err != nil {
		t.Fatal(err)
	}

	if got := T("nl", KeyHelp); got != "custom nl help" {
		t.Errorf("override not applied, got %q", got)
	}
	if got := T("nl", KeyAttachmentsUnsupported); got != "geen bijlagen" {
		t.Errorf("override not applied, got %q", got)
	}
	// English stays intact.
	if got := T("en", KeyHelp); !strings.Contains(got, "--help") {
		t.Errorf("base bundle should be untouched, got %q", got)
	}
}

func TestLoadOverrides_MissingDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := LoadOverrides(filepath.Join(t.TempDir(), "absent"), logger); err != nil {
		t.Errorf("missing directory is not an error, got %v", err)
	}
}
