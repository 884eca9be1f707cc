package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"lingobot/internal/config"
	"lingobot/internal/translate"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostic checks on your lingobot installation",
		Long: `Verifies that lingobot's configuration, translation backend, user store,
and log directory are correctly set up. Reports pass/fail for each check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfgPath := resolveConfigPath()
			fmt.Printf("lingobot doctor v%s\n\n", version)

			passed := 0
			failed := 0

			// 1. Config file exists
			if _, err := os.Stat(config.ExpandPath(cfgPath)); err != nil {
				printFail("Config file", fmt.Sprintf("not found at %s", cfgPath))
				fmt.Printf("\nRun 'lingobot init' to create a default configuration.\n")
				return nil
			}
			printPass("Config file", cfgPath)
			passed++

			// 2. Config loads and validates (includes the credential checks)
			cfg, err := config.Load(cfgPath)
			if err != nil {
				printFail("Config validation", err.Error())
				fmt.Printf("\n%d passed, 1 failed\n", passed)
				return nil
			}
			printPass("Config validation", "valid")
			passed++

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			// 3. Translation backend reachable
			tr := translate.New(translate.Config{
				BaseURL: cfg.Translator.BaseURL,
				APIKey:  cfg.Translator.APIKey,
				Timeout: 10 * time.Second,
				Logger:  logger,
			})
			if langs, err := tr.SupportedLanguages(ctx); err != nil {
				printFail("Translation backend", err.Error())
				failed++
			} else {
				printPass("Translation backend", fmt.Sprintf("%d languages at %s", len(langs), cfg.Translator.BaseURL))
				passed++
			}

			// 4. User store reachable
			if store, err := buildStore(cfg); err != nil {
				printFail("User store", err.Error())
				failed++
			} else {
				if _, err := store.Get(ctx, "doctor-probe"); err != nil {
					printFail("User store", err.Error())
					failed++
				} else {
					printPass("User store", cfg.Store.Mode)
					passed++
				}
				store.Close()
			}

			// 5. Graph API reachable (no token validation, just connectivity)
			req, _ := http.NewRequestWithContext(ctx, "GET", cfg.Messenger.APIBase, nil)
			if resp, err := http.DefaultClient.Do(req); err != nil {
				printFail("Messenger API", err.Error())
				failed++
			} else {
				resp.Body.Close()
				printPass("Messenger API", cfg.Messenger.APIBase)
				passed++
			}

			// 6. Log directory writable
			if cfg.General.LogDir != "" {
				if err := os.MkdirAll(cfg.General.LogDir, 0o755); err != nil {
					printFail("Log directory", err.Error())
					failed++
				} else {
					printPass("Log directory", cfg.General.LogDir)
					passed++
				}
			}

			fmt.Printf("\n%d passed, %d failed\n", passed, failed)
			return nil
		},
	}
}

func printPass(name, detail string) {
	fmt.Printf("  ✓ %-22s %s\n", name, detail)
}

func printFail(name, detail string) {
	fmt.Printf("  ✗ %-22s %s\n", name, detail)
}
