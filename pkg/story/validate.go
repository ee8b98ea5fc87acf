package story

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/passages/pkg/errors"
)

const msgNoName = "You must give this passage a name."

func msgDuplicate(name string) string {
	return fmt.Sprintf("There is already a passage named \"%s.\" Please give this one a unique name.", name)
}

// Validate checks attrs as the new state of p and returns a message describing
// the first problem, or "" if the attributes are acceptable. The uniqueness
// check looks at the passages of the story named by attrs.Story.
func (p *Passage) Validate(attrs Attrs, opts Options) string {
	_, msg := p.validate(attrs, opts)
	return msg
}

func (p *Passage) validate(attrs Attrs, opts Options) (perrors.Code, string) {
	return validateName(p.env.findStory(attrs.Story), p, attrs.Name, opts)
}

// validateName checks name for self inside s. A nil story only gets the
// empty-name check.
func validateName(s *Story, self *Passage, name string, opts Options) (perrors.Code, string) {
	if opts.NoValidation {
		return "", ""
	}
	if name == "" {
		return perrors.ErrCodeInvalidName, msgNoName
	}
	if opts.NoDupeValidation || s == nil {
		return "", ""
	}
	for _, q := range s.passages {
		if q != self && strings.EqualFold(q.name, name) {
			return perrors.ErrCodeDuplicateName, msgDuplicate(name)
		}
	}
	return "", ""
}
