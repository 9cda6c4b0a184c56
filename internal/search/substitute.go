package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Substitute applies :s over the inclusive line range [startLine,
// endLine]. With global set every match on a line is replaced,
// otherwise only the first. It returns the number of replacements and
// the last line touched, so the caller can place the cursor.
//
// The replacement supports & and \0-\9 group references plus the case
// escapes \u \l (next character) and \U \L ... \E (spans).
func Substitute(lines []string, startLine, endLine int, pattern, replacement string, global bool) (replaced int, lastLine int, err error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, 0, err
	}
	lastLine = -1

	for ln := startLine; ln <= endLine && ln < len(lines); ln++ {
		line := lines[ln]
		matches := re.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}
		if !global {
			matches = matches[:1]
		}

		var sb strings.Builder
		prev := 0
		for _, m := range matches {
			sb.WriteString(line[prev:m[0]])
			sb.WriteString(expand(replacement, line, m))
			prev = m[1]
			replaced++
		}
		sb.WriteString(line[prev:])
		lines[ln] = sb.String()
		lastLine = ln
	}

	if replaced == 0 {
		return 0, -1, ErrNotFound
	}
	return replaced, lastLine, nil
}

// caseMode tracks the active \U/\L span and \u/\l one-shots.
type caseMode uint8

const (
	caseOff caseMode = iota
	caseUpperOne
	caseLowerOne
	caseUpperSpan
	caseLowerSpan
)

// expand renders the replacement text for one match.
func expand(replacement, line string, match []int) string {
	var sb strings.Builder
	mode := caseOff

	emit := func(text string) {
		for _, r := range text {
			switch mode {
			case caseUpperOne:
				sb.WriteRune(unicode.ToUpper(r))
				mode = caseOff
			case caseLowerOne:
				sb.WriteRune(unicode.ToLower(r))
				mode = caseOff
			case caseUpperSpan:
				sb.WriteRune(unicode.ToUpper(r))
			case caseLowerSpan:
				sb.WriteRune(unicode.ToLower(r))
			default:
				sb.WriteRune(r)
			}
		}
	}

	group := func(n int) string {
		if 2*n+1 >= len(match) || match[2*n] < 0 {
			return ""
		}
		return line[match[2*n]:match[2*n+1]]
	}

	runes := []rune(replacement)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '&' {
			emit(group(0))
			continue
		}
		if r != '\\' || i+1 >= len(runes) {
			emit(string(r))
			continue
		}

		i++
		switch esc := runes[i]; {
		case esc >= '0' && esc <= '9':
			emit(group(int(esc - '0')))
		case esc == 'u':
			mode = caseUpperOne
		case esc == 'l':
			mode = caseLowerOne
		case esc == 'U':
			mode = caseUpperSpan
		case esc == 'L':
			mode = caseLowerSpan
		case esc == 'E', esc == 'e':
			mode = caseOff
		case esc == '&':
			emit("&")
		case esc == 'n':
			emit("\n")
		case esc == 't':
			emit("\t")
		default:
			emit(string(esc))
		}
	}
	return sb.String()
}
