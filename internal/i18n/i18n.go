// Package i18n provides localized system strings (help, errors,
// confirmations). Resolution order: requested locale → English.
// Base translations are compiled into the binary; a locale directory with
// YAML files can override or extend them at startup.
package i18n

import "fmt"

// DefaultLocale is the fallback when a locale or key is not found.
const DefaultLocale = "en"

// T returns the localized string for key in locale. Extra args are passed to
// fmt.Sprintf when the translation carries format verbs. Falls back to
// English for unsupported locales; an entirely unknown key is returned as-is
// so nothing is silently swallowed.
func T(locale, key string, args ...any) string {
	if locale == "" {
		locale = DefaultLocale
	}

	byLocale, ok := messages[key]
	if !ok {
		return key
	}

	tmpl, ok := byLocale[locale]
	if !ok {
		tmpl, ok = byLocale[DefaultLocale]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Supported reports whether locale has any compiled-in or loaded strings.
func Supported(locale string) bool {
	for _, byLocale := range messages {
		if _, ok := byLocale[locale]; ok {
			return true
		}
	}
	return false
}
