package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the root configuration for lingobot.
type Config struct {
	General    GeneralConfig    `json:"general"`
	Server     ServerConfig     `json:"server"`
	Messenger  MessengerConfig  `json:"messenger"`
	Translator TranslatorConfig `json:"translator"`
	Store      StoreConfig      `json:"store"`
	Alerts     AlertsConfig     `json:"alerts"`
}

type GeneralConfig struct {
	LogLevel        string `json:"logLevel"`
	LogDir          string `json:"logDir,omitempty"`    // also served read-only at /logs/
	LocaleDir       string `json:"localeDir,omitempty"` // optional YAML overrides for system strings
	DefaultLocale   string `json:"defaultLocale"`
	DefaultLanguage string `json:"defaultLanguage"`
}

type ServerConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	WebhookPath string `json:"webhookPath"`
}

// MessengerConfig holds the platform credentials. AppSecret signs every
// delivery; VerifyToken is used once during the subscription handshake.
type MessengerConfig struct {
	AppSecret   string `json:"appSecret"`
	AccessToken string `json:"accessToken"`
	VerifyToken string `json:"verifyToken"`
	APIBase     string `json:"apiBase,omitempty"`
}

type TranslatorConfig struct {
	BaseURL        string `json:"baseUrl"`
	APIKey         string `json:"apiKey,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// StoreConfig selects the preference datastore: "rest" talks to an external
// CRUD API, "sqlite" keeps records in a local database.
type StoreConfig struct {
	Mode    string `json:"mode"` // "rest" | "sqlite"
	BaseURL string `json:"baseUrl,omitempty"`
	APIKey  string `json:"apiKey,omitempty"`
	DBPath  string `json:"dbPath,omitempty"`
}

// AlertsConfig configures the optional Telegram operator notifier.
type AlertsConfig struct {
	Enabled       bool   `json:"enabled"`
	TelegramToken string `json:"telegramToken,omitempty"`
	ChatID        int64  `json:"chatId,omitempty"`
}

// DefaultConfigDir returns the default config directory (~/.lingobot).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lingobot"
	}
	return filepath.Join(home, ".lingobot")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.General.LogDir = ExpandPath(cfg.General.LogDir)
	cfg.General.LocaleDir = ExpandPath(cfg.General.LocaleDir)
	cfg.Store.DBPath = ExpandPath(cfg.Store.DBPath)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks the config before the server accepts traffic. The three
// platform credentials are required: refusing to start beats serving a
// webhook that silently rejects every delivery.
func Validate(cfg *Config) error {
	var errs []string

	// An unexpanded ${VAR} placeholder means the environment variable was
	// never set; treat it the same as an empty value.
	missing := func(v string) bool {
		return v == "" || strings.HasPrefix(v, "${")
	}

	if missing(cfg.Messenger.AppSecret) {
		errs = append(errs, "messenger.appSecret is required")
	}
	if missing(cfg.Messenger.AccessToken) {
		errs = append(errs, "messenger.accessToken is required")
	}
	if missing(cfg.Messenger.VerifyToken) {
		errs = append(errs, "messenger.verifyToken is required")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		errs = append(errs, "server.webhookPath must start with /")
	}

	if cfg.Translator.BaseURL == "" {
		errs = append(errs, "translator.baseUrl is required")
	}
	if cfg.Translator.TimeoutSeconds < 1 {
		errs = append(errs, "translator.timeoutSeconds must be >= 1")
	}

	switch cfg.Store.Mode {
	case "rest":
		if cfg.Store.BaseURL == "" {
			errs = append(errs, "store.baseUrl is required for rest mode")
		}
	case "sqlite":
		if cfg.Store.DBPath == "" {
			errs = append(errs, "store.dbPath is required for sqlite mode")
		}
	default:
		errs = append(errs, "store.mode must be one of: rest, sqlite")
	}

	if cfg.General.DefaultLocale == "" {
		errs = append(errs, "general.defaultLocale is required")
	}
	if cfg.General.DefaultLanguage == "" {
		errs = append(errs, "general.defaultLanguage is required")
	}

	if cfg.Alerts.Enabled {
		if cfg.Alerts.TelegramToken == "" {
			errs = append(errs, "alerts.telegramToken is required when alerts are enabled")
		}
		if cfg.Alerts.ChatID == 0 {
			errs = append(errs, "alerts.chatId is required when alerts are enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
