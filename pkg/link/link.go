package link

import (
	"regexp"
	"strings"
)

// Delimiters of the link markup.
const (
	openDelim   = "[["
	closeDelim  = "]]"
	setterDelim = "]["
	arrowRight  = "->"
	arrowLeft   = "<-"
	pipe        = "|"
)

// Form identifies which syntax a token was written in.
type Form int

const (
	// FormBare is [[target]].
	FormBare Form = iota
	// FormPipe is [[display|target]].
	FormPipe
	// FormArrowRight is [[display->target]].
	FormArrowRight
	// FormArrowLeft is [[target<-display]].
	FormArrowLeft
)

func (f Form) String() string {
	switch f {
	case FormPipe:
		return "pipe"
	case FormArrowRight:
		return "arrow-right"
	case FormArrowLeft:
		return "arrow-left"
	default:
		return "bare"
	}
}

// Token is one [[...]] span of passage text.
//
// Start and End are byte offsets into the scanned text; text[Start:End] is the
// complete token including both delimiters. For FormBare tokens Display equals
// Target.
type Token struct {
	Start, End int
	Form       Form
	Display    string
	Target     string
	Setter     string // includes the leading "][", empty when absent
}

// String reassembles the token. For an unmodified token it returns exactly the
// bytes it was parsed from.
func (t Token) String() string {
	var body string
	switch t.Form {
	case FormArrowRight:
		body = t.Display + arrowRight + t.Target
	case FormArrowLeft:
		body = t.Target + arrowLeft + t.Display
	case FormPipe:
		body = t.Display + pipe + t.Target
	default:
		body = t.Target
	}
	return openDelim + body + t.Setter + closeDelim
}

// Retarget returns a copy of t pointing at target. Display text and setter are
// unchanged, except for bare tokens where the display is the target.
func (t Token) Retarget(target string) Token {
	t.Target = target
	if t.Form == FormBare {
		t.Display = target
	}
	return t
}

// Parse returns every link token in text, left to right, without overlap.
func Parse(text string) []Token {
	var tokens []Token
	for i := 0; i < len(text); {
		open := strings.Index(text[i:], openDelim)
		if open < 0 {
			break
		}
		open += i

		bodyStart := open + len(openDelim)
		closeAt := strings.Index(text[bodyStart:], closeDelim)
		if closeAt < 0 {
			break
		}
		inner := text[bodyStart : bodyStart+closeAt]

		// Tokens never cross a line break; retry one byte further so that a
		// later "[[" on the same line still gets its chance.
		if strings.ContainsAny(inner, "\r\n") {
			i = open + 1
			continue
		}

		end := bodyStart + closeAt + len(closeDelim)
		tok := classify(inner)
		tok.Start, tok.End = open, end
		tokens = append(tokens, tok)
		i = end
	}
	return tokens
}

// classify splits the content between the delimiters into its parts.
func classify(inner string) Token {
	body, setter := inner, ""
	if k := strings.Index(inner, setterDelim); k >= 0 {
		body, setter = inner[:k], inner[k:]
	}

	tok := Token{Setter: setter}
	switch {
	case strings.Contains(body, arrowRight):
		k := strings.LastIndex(body, arrowRight)
		tok.Form = FormArrowRight
		tok.Display, tok.Target = body[:k], body[k+len(arrowRight):]
	case strings.Contains(body, arrowLeft):
		k := strings.Index(body, arrowLeft)
		tok.Form = FormArrowLeft
		tok.Target, tok.Display = body[:k], body[k+len(arrowLeft):]
	case strings.Count(body, pipe) == 1:
		k := strings.Index(body, pipe)
		tok.Form = FormPipe
		tok.Display, tok.Target = body[:k], body[k+len(pipe):]
	default:
		tok.Form = FormBare
		tok.Display, tok.Target = body, body
	}
	return tok
}

// externalRe matches targets that are absolute URIs rather than passage names.
var externalRe = regexp.MustCompile(`^\w+:///?\w`)

// IsExternal reports whether target looks like an absolute URI (scheme://...).
func IsExternal(target string) bool {
	return externalRe.MatchString(target)
}

// Links returns the unique link targets in text in first-seen order. Empty
// targets are dropped. With internalOnly, targets that look like absolute URIs
// are dropped too, leaving only references to other passages.
func Links(text string, internalOnly bool) []string {
	targets := []string{}
	seen := make(map[string]bool)
	for _, tok := range Parse(text) {
		if tok.Target == "" || seen[tok.Target] {
			continue
		}
		if internalOnly && IsExternal(tok.Target) {
			continue
		}
		seen[tok.Target] = true
		targets = append(targets, tok.Target)
	}
	return targets
}

// Replace retargets every token in text whose target is exactly oldTarget.
// It returns the rewritten text and whether it differs from the input.
// Text outside matching tokens, display text and setters are left untouched.
func Replace(text, oldTarget, newTarget string) (string, bool) {
	if oldTarget == "" || oldTarget == newTarget {
		return text, false
	}

	var b strings.Builder
	last, matched := 0, false
	for _, tok := range Parse(text) {
		if tok.Target != oldTarget {
			continue
		}
		b.WriteString(text[last:tok.Start])
		b.WriteString(tok.Retarget(newTarget).String())
		last, matched = tok.End, true
	}
	if !matched {
		return text, false
	}
	b.WriteString(text[last:])

	out := b.String()
	return out, out != text
}
