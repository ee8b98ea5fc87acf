package story

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Resolver finds stories by persisted or local id.
type Resolver interface {
	FindByID(id string) *Story
	FindByLocalID(localID string) *Story
	All() []*Story
}

// Attribute names used in a [Delta].
const (
	FieldName  = "name"
	FieldText  = "text"
	FieldTags  = "tags"
	FieldLeft  = "left"
	FieldTop   = "top"
	FieldStory = "story"
)

// Delta maps attribute names to their new values.
type Delta map[string]any

// Fields returns the attribute names in d, sorted.
func (d Delta) Fields() []string {
	fields := make([]string, 0, len(d))
	for k := range d {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// SaveRef identifies the passage a delta belongs to.
type SaveRef struct {
	ID      string // empty until the first save completes
	LocalID string
	Story   string
}

// Label returns the most stable identifier available.
func (r SaveRef) Label() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LocalID
}

// Saver persists passage attribute deltas. Save returns the persisted id of
// the passage, assigning one when ref.ID is empty.
type Saver interface {
	Save(ctx context.Context, ref SaveRef, delta Delta) (string, error)
}

// Env bundles the collaborators shared by the passages of a story.
// A nil Saver keeps everything in memory; passages then never receive ids.
type Env struct {
	Resolver Resolver
	Saver    Saver
	Logger   *log.Logger
	Now      func() time.Time
}

var discard = log.New(io.Discard)

func (e *Env) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return discard
	}
	return e.Logger
}

func (e *Env) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// findStory resolves a story by id first, then by local id.
func (e *Env) findStory(key string) *Story {
	if e == nil || e.Resolver == nil || key == "" {
		return nil
	}
	if s := e.Resolver.FindByID(key); s != nil {
		return s
	}
	return e.Resolver.FindByLocalID(key)
}
