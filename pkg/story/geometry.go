package story

import (
	"context"

	"github.com/matzehuels/passages/pkg/layout"
	"github.com/matzehuels/passages/pkg/observability"
)

// Intersects reports whether p and other overlap on the story map.
func (p *Passage) Intersects(other *Passage) bool {
	return layout.Intersects(p.pos, other.pos)
}

// Displace moves other off p along a single axis if the two overlap. The new
// position is clamped but not saved; it reports whether other moved.
func (p *Passage) Displace(ctx context.Context, other *Passage) bool {
	pos, m := layout.Displace(p.pos, other.pos)
	if m.Axis == layout.AxisNone {
		return false
	}
	before := other.pos
	other.setPos(pos)
	if other.pos == before {
		return false
	}
	observability.Layout().OnDisplace(ctx, p.name, other.name, m.Axis.String(), m.Amount)
	p.env.logger().Debug("passage displaced", "anchor", p.name, "passage", other.name, "axis", m.Axis, "amount", m.Amount)
	return true
}
