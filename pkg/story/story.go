package story

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/layout"
)

// maxTidyPasses bounds [Story.Tidy] when displacements keep pushing passages
// into each other.
const maxTidyPasses = 32

// Story is an ordered collection of passages plus the pointer to the passage
// play starts at.
type Story struct {
	ID           string
	LocalID      string
	Name         string
	StartPassage string // id or local id of a passage
	LastUpdate   time.Time

	env      *Env
	passages []*Passage
}

// NewStory creates an empty story with a fresh local id.
func NewStory(env *Env, name string) *Story {
	return &Story{
		LocalID:    uuid.NewString(),
		Name:       name,
		LastUpdate: env.now(),
		env:        env,
	}
}

// Key returns the persisted id, or the local id when there is none.
func (s *Story) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.LocalID
}

// Env returns the environment the story was created with.
func (s *Story) Env() *Env { return s.env }

// Passages returns the passages in insertion order. The slice is a copy.
func (s *Story) Passages() []*Passage { return slices.Clone(s.passages) }

// Len returns the number of passages.
func (s *Story) Len() int { return len(s.passages) }

// Touch records a modification at t.
func (s *Story) Touch(t time.Time) {
	s.LastUpdate = t
}

// Add makes p a passage of s. Unless opts disable it, the name must be
// non-empty and not clash with an existing passage.
func (s *Story) Add(p *Passage, opts Options) error {
	if code, msg := validateName(s, p, p.name, opts); msg != "" {
		return perrors.New(code, "%s", msg)
	}
	p.story = s.Key()
	if p.env == nil {
		p.env = s.env
	}
	s.passages = append(s.passages, p)
	return nil
}

// Remove drops p from the story. It reports whether p was present.
func (s *Story) Remove(p *Passage) bool {
	i := slices.Index(s.passages, p)
	if i < 0 {
		return false
	}
	s.passages = slices.Delete(s.passages, i, i+1)
	return true
}

// Find returns the passage with the given id or local id.
func (s *Story) Find(key string) *Passage {
	if key == "" {
		return nil
	}
	for _, p := range s.passages {
		if p.id == key || p.localID == key {
			return p
		}
	}
	return nil
}

// Named returns the passage with the given name, compared case-insensitively.
func (s *Story) Named(name string) *Passage {
	for _, p := range s.passages {
		if strings.EqualFold(p.name, name) {
			return p
		}
	}
	return nil
}

// UniqueName returns base if no passage uses it, otherwise base followed by
// the smallest number that makes it unique ("Untitled Passage 1").
func (s *Story) UniqueName(base string) string {
	if s.Named(base) == nil {
		return base
	}
	for i := 1; ; i++ {
		name := base + " " + strconv.Itoa(i)
		if s.Named(name) == nil {
			return name
		}
	}
}

// Start returns the start passage, or nil if unset or dangling.
func (s *Story) Start() *Passage {
	return s.Find(s.StartPassage)
}

// SetStart points the story at p.
func (s *Story) SetStart(p *Passage) {
	s.StartPassage = p.Key()
}

// RenamePassage renames p and retargets every link to its old name in the
// story. Link rewrites continue past individual save failures; all of them
// are returned joined.
func (s *Story) RenamePassage(ctx context.Context, p *Passage, name string, opts Options) error {
	old := p.name
	if err := p.Rename(ctx, name, opts); err != nil {
		return err
	}
	if old == name {
		return nil
	}

	var errs []error
	for _, q := range s.passages {
		if _, err := q.ReplaceLink(ctx, old, name, opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Place pushes every passage overlapping p out of its way, in story order.
// The moved passages are returned so the caller can persist them.
func (s *Story) Place(ctx context.Context, p *Passage) []*Passage {
	var moved []*Passage
	for _, q := range s.passages {
		if q == p {
			continue
		}
		if p.Displace(ctx, q) {
			moved = append(moved, q)
		}
	}
	return moved
}

// Tidy places every passage in turn until a full pass moves nothing or the
// pass limit is hit. Each moved passage is returned once.
func (s *Story) Tidy(ctx context.Context) []*Passage {
	var moved []*Passage
	for pass := 0; pass < maxTidyPasses; pass++ {
		changed := false
		for _, p := range s.passages {
			for _, q := range s.Place(ctx, p) {
				changed = true
				if !slices.Contains(moved, q) {
					moved = append(moved, q)
				}
			}
		}
		if !changed {
			break
		}
	}
	return moved
}

// FreePosition returns the first position at or to the right of (left, top)
// where a passage would not overlap any existing one.
func (s *Story) FreePosition(left, top float64) layout.Pos {
	step := layout.Width + 2*layout.Padding
	pos := layout.Pos{Left: left, Top: top}.Clamp()
	for i := 0; i <= 2*len(s.passages); i++ {
		if !s.occupied(pos) {
			break
		}
		pos.Left += step
	}
	return pos
}

func (s *Story) occupied(pos layout.Pos) bool {
	for _, p := range s.passages {
		if layout.Intersects(pos, p.pos) {
			return true
		}
	}
	return false
}

// BrokenLink is an internal link whose target names no passage.
type BrokenLink struct {
	From   string
	Target string
}

// BrokenLinks lists internal links that do not resolve, in story order.
func (s *Story) BrokenLinks() []BrokenLink {
	var out []BrokenLink
	for _, p := range s.passages {
		for _, target := range p.Links(true) {
			if s.Named(target) == nil {
				out = append(out, BrokenLink{From: p.name, Target: target})
			}
		}
	}
	return out
}
