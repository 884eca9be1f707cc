package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lingobot/internal/alert"
	"lingobot/internal/config"
	"lingobot/internal/dispatch"
	"lingobot/internal/domain"
	"lingobot/internal/i18n"
	"lingobot/internal/messenger"
	"lingobot/internal/translate"
	"lingobot/internal/userstore"
	"lingobot/internal/webhook"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "lingobot",
		Short: "lingobot: Messenger translation relay",
		Long:  "lingobot relays Messenger messages to a translation backend, keeping per-user language preferences.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (default: ~/.lingobot/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := config.DefaultConfigPath()
			if configPath != "" {
				cfgPath = configPath
			}
			if err := config.Save(cfgPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			fmt.Printf("Wrote %s — fill in the messenger credentials before 'lingobot serve'.\n", cfgPath)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE:  runServe,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lingobot", version)
		},
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}

	logger, err = buildLogger(cfg)
	if err != nil {
		return err
	}

	if err := i18n.LoadOverrides(cfg.General.LocaleDir, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var alerter dispatch.Alerter
	if cfg.Alerts.Enabled {
		notifier, err := alert.NewTelegram(alert.TelegramConfig{
			Token:  cfg.Alerts.TelegramToken,
			ChatID: cfg.Alerts.ChatID,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		alerter = notifier
		notifier.Notify(fmt.Sprintf("lingobot %s starting on port %d", version, cfg.Server.Port))
	}

	translator := translate.New(translate.Config{
		BaseURL: cfg.Translator.BaseURL,
		APIKey:  cfg.Translator.APIKey,
		Store:   store,
		Timeout: time.Duration(cfg.Translator.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})

	sender := messenger.New(messenger.Config{
		APIBase:     cfg.Messenger.APIBase,
		AccessToken: cfg.Messenger.AccessToken,
		Timeout:     time.Duration(cfg.Translator.TimeoutSeconds) * time.Second,
		Logger:      logger,
	})

	dispatcher := dispatch.New(dispatch.Config{
		Store:      store,
		Translator: translator,
		Sender:     sender,
		Alerter:    alerter,
		Logger:     logger,
	})

	server := webhook.New(webhook.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		WebhookPath: cfg.Server.WebhookPath,
		AppSecret:   cfg.Messenger.AppSecret,
		VerifyToken: cfg.Messenger.VerifyToken,
		LogDir:      cfg.General.LogDir,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	return server.Run(ctx)
}

func buildStore(cfg *config.Config) (domain.UserStore, error) {
	switch cfg.Store.Mode {
	case "rest":
		return userstore.NewREST(userstore.RESTConfig{
			BaseURL:         cfg.Store.BaseURL,
			APIKey:          cfg.Store.APIKey,
			DefaultLocale:   cfg.General.DefaultLocale,
			DefaultLanguage: cfg.General.DefaultLanguage,
			Timeout:         10 * time.Second,
			Logger:          logger,
		}), nil
	case "sqlite":
		return userstore.NewSQLite(userstore.SQLiteConfig{
			DBPath:          cfg.Store.DBPath,
			DefaultLocale:   cfg.General.DefaultLocale,
			DefaultLanguage: cfg.General.DefaultLanguage,
			Logger:          logger,
		})
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Store.Mode)
	}
}

// buildLogger returns an slog logger at the configured level, teeing into
// the log directory when one is set so /logs/ has something to serve.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.General.LogDir != "" {
		if err := os.MkdirAll(cfg.General.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(cfg.General.LogDir, "lingobot.log"),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
