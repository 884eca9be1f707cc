package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOverrides merges locale bundles from YAML files in dir into the
// compiled-in messages. Each file is named <locale>.yaml and maps message
// keys to strings:
//
//	help: "..."
//	attachments_unsupported: "..."
//
// Unknown keys create new entries so operators can localize future strings
// without a rebuild. Call during startup only; lookups are not locked.
func LoadOverrides(dir string, logger *slog.Logger) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("locale directory does not exist, skipping", "dir", dir)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read locale dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		locale := strings.TrimSuffix(name, filepath.Ext(name))

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("cannot read locale file", "path", path, "err", err)
			continue
		}

		var bundle map[string]string
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			logger.Warn("cannot parse locale file", "path", path, "err", err)
			continue
		}

		for key, tmpl := range bundle {
			byLocale, ok := messages[key]
			if !ok {
				byLocale = make(map[string]string)
				messages[key] = byLocale
			}
			byLocale[locale] = tmpl
		}

		logger.Info("loaded locale bundle", "locale", locale, "keys", len(bundle), "path", path)
	}

	return nil
}
