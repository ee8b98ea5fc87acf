// Package story models passages, the stories that own them, and the side
// effects of editing them.
//
// # Passages
//
// A [Passage] is one node of a hypertext story: a name, free-form text with
// embedded [[links]], a set of tags and a position on the story map. Its
// fields are private so that every write goes through a method that keeps the
// invariants:
//
//   - names are non-empty and unique (case-insensitively) within a story
//   - coordinates are never negative; negative writes are clamped to 0
//   - tags form a set
//
// # Explicit side effects
//
// Editing methods spell out what else happens. [Passage.SetText],
// [Passage.Rename], [Passage.SetTags] and [Passage.MoveTo] each
//
//  1. update the passage in memory,
//  2. touch the owning story's LastUpdate unless [Options].NoParentUpdate is set,
//  3. hand the changed attributes to the [Saver].
//
// When a save completes the passage adopts the id the saver returned, and if
// the owning story's StartPassage still holds the passage's local id it is
// rewritten to the persisted id.
//
// # Collaborators
//
// Passages never reach for global state. Everything they talk to comes in
// through an [Env]: a [Resolver] to find stories, a [Saver] to persist
// attribute deltas, a logger and a clock. [Registry] is the in-memory
// Resolver used by the CLI and tests.
//
// This package is not safe for concurrent use; callers serialize access per
// story.
package story
