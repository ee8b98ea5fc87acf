package story

import (
	"context"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html"

	perrors "github.com/matzehuels/passages/pkg/errors"
)

// Excerpt limits.
const (
	excerptMax  = 100
	excerptCut  = 99
	ellipsisTag = "&hellip;"
)

// Matches reports whether re matches the passage name or text.
func (p *Passage) Matches(re *regexp.Regexp) bool {
	return re.MatchString(p.name) || re.MatchString(p.text)
}

// NumMatches counts the non-overlapping matches of re in the text, and in the
// name too when includeName is set.
func (p *Passage) NumMatches(re *regexp.Regexp, includeName bool) int {
	n := len(re.FindAllStringIndex(p.text, -1))
	if includeName {
		n += len(re.FindAllStringIndex(p.name, -1))
	}
	return n
}

// Replace substitutes every match of re with replacement (which may use $1
// style references) in the text, and in the name when inName is set. Name and
// text are saved together in one delta. A name that would become empty or
// clash with a sibling is refused and nothing is changed.
func (p *Passage) Replace(ctx context.Context, re *regexp.Regexp, replacement string, inName bool, opts Options) error {
	delta := Delta{}

	text := re.ReplaceAllString(p.text, replacement)
	if text != p.text {
		delta[FieldText] = text
	}

	name := p.name
	if inName {
		name = re.ReplaceAllString(p.name, replacement)
		if name != p.name {
			attrs := p.Attrs()
			attrs.Name = name
			if code, msg := p.validate(attrs, opts); msg != "" {
				return perrors.New(code, "%s", msg)
			}
			delta[FieldName] = name
		}
	}

	if len(delta) == 0 {
		return nil
	}
	if inName {
		delta[FieldName], delta[FieldText] = name, text
	}
	p.text, p.name = text, name
	return p.update(ctx, delta, opts)
}

// Excerpt returns the HTML-escaped text, cut to 99 characters plus an
// ellipsis when the escaped text is longer than 100 characters. Escaping
// happens first, so a cut can land inside an entity.
func (p *Passage) Excerpt() string {
	escaped := html.EscapeString(p.text)
	if utf8.RuneCountInString(escaped) <= excerptMax {
		return escaped
	}
	runes := []rune(escaped)
	return string(runes[:excerptCut]) + ellipsisTag
}
