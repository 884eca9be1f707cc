package dispatch

import "strings"

// CommandKind is the outcome of parsing a message against the command table.
type CommandKind int

const (
	// CmdNone means ordinary text: translate it.
	CmdNone CommandKind = iota
	CmdHelp
	CmdChangeLanguage
)

// Command is a parsed message command. Arg carries the language argument for
// CmdChangeLanguage, verbatim as the user typed it.
type Command struct {
	Kind CommandKind
	Arg  string
}

// argCommands are the command words taking an argument, matched as a
// "word " prefix. Longer aliases first so "language" is not eaten by "lang".
var argCommands = []string{"language", "lang"}

// ParseCommand matches the whole message against the command table:
// an optional "-" or "--" prefix, then "help", or "lang"/"language" followed
// by a space and the argument. Matching is case-insensitive and anchored to
// the whole message; anything else is ordinary text.
func ParseCommand(text string) Command {
	body := text
	if strings.HasPrefix(body, "--") {
		body = body[2:]
	} else if strings.HasPrefix(body, "-") {
		body = body[1:]
	}

	lower := strings.ToLower(body)
	if lower == "help" {
		return Command{Kind: CmdHelp}
	}

	for _, name := range argCommands {
		prefix := name + " "
		if strings.HasPrefix(lower, prefix) {
			// The argument passes through verbatim: no trimming, original case.
			return Command{Kind: CmdChangeLanguage, Arg: body[len(prefix):]}
		}
	}

	return Command{Kind: CmdNone}
}

// titleDelimiter separates the button title from the language code in
// change_language postbacks (e.g. "Français --language fr").
const titleDelimiter = "--language "

// LanguageFromTitle extracts the language code from a change_language
// postback title. Returns "" when the delimiter is absent.
func LanguageFromTitle(title string) string {
	_, after, found := strings.Cut(title, titleDelimiter)
	if !found {
		return ""
	}
	return after
}
