package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim-style: "<Esc>", "<CR>", "<BS>", "<C-r>", "<C-v>", "<Space>", "<lt>"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0]), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseBracketed parses the inside of Vim <...> notation: "Esc", "C-r", "S-Tab".
func parseBracketed(inner string) (Event, error) {
	var mods Modifier
	keyPart := inner

	// Peel modifier prefixes ("C-", "A-", "S-"). A trailing lone dash is the
	// '-' key itself, so only peel while more than one rune remains.
	for len(keyPart) > 2 && keyPart[1] == '-' {
		switch unicode.ToLower(rune(keyPart[0])) {
		case 'c':
			mods = mods.With(ModCtrl)
		case 'a':
			mods = mods.With(ModAlt)
		case 's':
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, keyPart[0])
		}
		keyPart = keyPart[2:]
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	case "lt":
		return Event{Key: KeyRune, Rune: '<', Modifiers: mods}, nil
	case "gt":
		return Event{Key: KeyRune, Rune: '>', Modifiers: mods}, nil
	case "bar":
		return Event{Key: KeyRune, Rune: '|', Modifiers: mods}, nil
	case "bslash":
		return Event{Key: KeyRune, Rune: '\\', Modifiers: mods}, nil
	}

	if k := KeyFromName(strings.ToLower(keyPart)); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseKeys parses a continuous Vim-notation string into an event sequence.
// Examples: "dd", "3dw", "ihello<Esc>", "q a 2 @ a" is NOT split on spaces;
// a space is the space key.
func ParseKeys(s string) ([]Event, error) {
	events := make([]Event, 0, len(s))

	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 0 {
				event, err := Parse(s[:end+1])
				if err != nil {
					return nil, err
				}
				events = append(events, event)
				s = s[end+1:]
				continue
			}
			// No closing '>': literal '<'
			events = append(events, NewRuneEvent('<'))
			s = s[1:]
			continue
		}

		r, size := utf8.DecodeRuneInString(s)
		events = append(events, NewRuneEvent(r))
		s = s[size:]
	}

	return events, nil
}

// MustParseKeys parses a notation string and panics on error.
// Use only for known-valid sequences in tests and initialization code.
func MustParseKeys(s string) []Event {
	events, err := ParseKeys(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return events
}

// FormatKeys renders an event sequence back to Vim notation.
// ParseKeys(FormatKeys(events)) yields the same events.
func FormatKeys(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
	}
	return sb.String()
}
