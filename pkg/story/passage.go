package story

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/layout"
	"github.com/matzehuels/passages/pkg/observability"
)

// Defaults for new passages.
const (
	DefaultName = "Untitled Passage"
	DefaultText = "Double-click this passage to edit it."
)

// Options adjust the side effects of a mutation.
type Options struct {
	// NoParentUpdate leaves the owning story's LastUpdate alone.
	NoParentUpdate bool
	// NoValidation skips every name check.
	NoValidation bool
	// NoDupeValidation skips the uniqueness check but still rejects empty names.
	NoDupeValidation bool
}

// Attrs is the plain attribute set of a passage, as stored and exchanged.
type Attrs struct {
	ID    string   `json:"id,omitempty" bson:"id,omitempty"`
	Name  string   `json:"name" bson:"name"`
	Text  string   `json:"text" bson:"text"`
	Tags  []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Left  float64  `json:"left" bson:"left"`
	Top   float64  `json:"top" bson:"top"`
	Story string   `json:"story,omitempty" bson:"story,omitempty"`
}

// Passage is one node of a story. Use [NewPassage] or [RestorePassage].
type Passage struct {
	env     *Env
	id      string
	localID string
	name    string
	text    string
	tags    []string
	pos     layout.Pos
	story   string
}

// NewPassage creates a passage with default name and text at the origin.
// It is not part of any story until added with [Story.Add].
func NewPassage(env *Env) *Passage {
	return &Passage{
		env:     env,
		localID: uuid.NewString(),
		name:    DefaultName,
		text:    DefaultText,
	}
}

// RestorePassage rebuilds a passage from stored attributes without saving.
// Coordinates are clamped and tags deduplicated as on any write.
func RestorePassage(env *Env, a Attrs) *Passage {
	return &Passage{
		env:     env,
		id:      a.ID,
		localID: uuid.NewString(),
		name:    a.Name,
		text:    a.Text,
		tags:    normalizeTags(a.Tags),
		pos:     layout.Pos{Left: a.Left, Top: a.Top}.Clamp(),
		story:   a.Story,
	}
}

func (p *Passage) ID() string           { return p.id }
func (p *Passage) LocalID() string      { return p.localID }
func (p *Passage) Name() string         { return p.name }
func (p *Passage) Text() string         { return p.text }
func (p *Passage) Left() float64        { return p.pos.Left }
func (p *Passage) Top() float64         { return p.pos.Top }
func (p *Passage) Pos() layout.Pos      { return p.pos }
func (p *Passage) StoryID() string      { return p.story }
func (p *Passage) Tags() []string       { return slices.Clone(p.tags) }
func (p *Passage) HasTag(t string) bool { return slices.Contains(p.tags, t) }

// Key returns the persisted id, or the local id before the first save.
func (p *Passage) Key() string {
	if p.id != "" {
		return p.id
	}
	return p.localID
}

// Attrs returns a snapshot of the passage attributes.
func (p *Passage) Attrs() Attrs {
	return Attrs{
		ID:    p.id,
		Name:  p.name,
		Text:  p.text,
		Tags:  p.Tags(),
		Left:  p.pos.Left,
		Top:   p.pos.Top,
		Story: p.story,
	}
}

// Story returns the owning story through the resolver, or nil.
func (p *Passage) Story() *Story {
	return p.env.findStory(p.story)
}

// SetText replaces the passage text. Unchanged text is a no-op.
func (p *Passage) SetText(ctx context.Context, text string, opts Options) error {
	if text == p.text {
		return nil
	}
	p.text = text
	return p.update(ctx, Delta{FieldText: text}, opts)
}

// Rename validates and stores a new name. It does not touch links in other
// passages; see [Story.RenamePassage] for that.
func (p *Passage) Rename(ctx context.Context, name string, opts Options) error {
	if name == p.name {
		return nil
	}
	attrs := p.Attrs()
	attrs.Name = name
	if code, msg := p.validate(attrs, opts); msg != "" {
		return perrors.New(code, "%s", msg)
	}
	p.name = name
	return p.update(ctx, Delta{FieldName: name}, opts)
}

// SetTags replaces the tag set.
func (p *Passage) SetTags(ctx context.Context, tags []string, opts Options) error {
	tags = normalizeTags(tags)
	if slices.Equal(tags, p.tags) {
		return nil
	}
	p.tags = tags
	return p.update(ctx, Delta{FieldTags: p.Tags()}, opts)
}

// MoveTo places the passage at (left, top); negative values become 0.
func (p *Passage) MoveTo(ctx context.Context, left, top float64, opts Options) error {
	pos := layout.Pos{Left: left, Top: top}.Clamp()
	if pos == p.pos {
		return nil
	}
	p.pos = pos
	return p.update(ctx, Delta{FieldLeft: pos.Left, FieldTop: pos.Top}, opts)
}

// Persist saves the complete attribute set.
func (p *Passage) Persist(ctx context.Context) error {
	return p.save(ctx, p.fullDelta())
}

// setPos stores a position without saving; used by displacement.
func (p *Passage) setPos(pos layout.Pos) {
	p.pos = pos.Clamp()
}

func (p *Passage) ref() SaveRef {
	return SaveRef{ID: p.id, LocalID: p.localID, Story: p.story}
}

func (p *Passage) fullDelta() Delta {
	return Delta{
		FieldName:  p.name,
		FieldText:  p.text,
		FieldTags:  p.Tags(),
		FieldLeft:  p.pos.Left,
		FieldTop:   p.pos.Top,
		FieldStory: p.story,
	}
}

// update runs the cascade shared by all edits: touch the parent, then save.
func (p *Passage) update(ctx context.Context, delta Delta, opts Options) error {
	if !opts.NoParentUpdate {
		if s := p.Story(); s != nil {
			s.Touch(p.env.now())
		}
	}
	return p.save(ctx, delta)
}

// save hands delta to the saver. A passage that was never saved sends all of
// its attributes so the backend receives a complete record.
func (p *Passage) save(ctx context.Context, delta Delta) error {
	if p.env == nil || p.env.Saver == nil {
		return nil
	}
	if p.id == "" {
		delta = p.fullDelta()
	}

	ref := p.ref()
	start := time.Now()
	id, err := p.env.Saver.Save(ctx, ref, delta)
	observability.Story().OnSave(ctx, ref.Label(), delta.Fields(), time.Since(start), err)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodePersist, err, "save passage %q", p.name)
	}

	p.env.logger().Debug("passage saved", "passage", p.name, "id", id, "fields", delta.Fields())
	p.synced(ctx, id)
	return nil
}

// synced adopts the persisted id and repoints the story's start passage if it
// still refers to the local id.
func (p *Passage) synced(ctx context.Context, id string) {
	if id != "" {
		p.id = id
	}
	if p.id == "" {
		return
	}
	s := p.Story()
	if s == nil || s.StartPassage != p.localID {
		return
	}
	s.StartPassage = p.id
	observability.Story().OnStartPassageMoved(ctx, s.Name, p.localID, p.id)
	p.env.logger().Debug("start passage persisted", "story", s.Name, "passage", p.name, "id", p.id)
}

// normalizeTags drops empty and repeated tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
