package story

import (
	"context"

	"github.com/matzehuels/passages/pkg/link"
	"github.com/matzehuels/passages/pkg/observability"
)

// Links returns the unique link targets in the passage text. With
// internalOnly, targets that look like absolute URIs are left out.
func (p *Passage) Links(internalOnly bool) []string {
	return link.Links(p.text, internalOnly)
}

// ReplaceLink retargets every link to oldTarget at newTarget. The text is only
// saved, and the story only touched, when something was rewritten. It reports
// whether the text changed.
func (p *Passage) ReplaceLink(ctx context.Context, oldTarget, newTarget string, opts Options) (bool, error) {
	text, changed := link.Replace(p.text, oldTarget, newTarget)
	if !changed {
		return false, nil
	}
	p.text = text
	observability.Story().OnLinksRewritten(ctx, p.name, oldTarget, newTarget)
	return true, p.update(ctx, Delta{FieldText: text}, opts)
}
