// Package pkg holds the libraries behind the passages CLI.
//
// # Overview
//
// A hypertext story is a set of named passages. Passage text links to other
// passages with [[...]] markup, and every passage has a spot on a 2D story
// map. The packages split that model into:
//
//  1. [link] - the link grammar: parse, list and retarget [[links]]
//  2. [layout] - passage rectangles, overlap tests and single-axis displacement
//  3. [story] - passages and stories with validation and explicit side effects
//  4. [store] - savers that persist passage attribute deltas (file, Redis, MongoDB)
//  5. [io] - story JSON files and published <tw-storydata> HTML
//  6. [render/nodelink] - the story map as Graphviz DOT and SVG
//
// Supporting packages:
//
//   - [cache] - content-addressed cache for rendered maps
//   - [errors] - coded errors and input validation
//   - [observability] - hooks for saves, link rewrites and displacements
//   - [buildinfo] - version stamped at link time
//
// # Data Flow
//
//	story.json
//	     ↓
//	[io] ImportStory → [story] Story + Passages (Env: Resolver, Saver, Logger)
//	     ↓
//	edit: Rename / SetText / MoveTo ──→ [link] Replace, [layout] Displace
//	     ↓                               ↓
//	[store] Saver.Save(delta)       [observability] hooks
//	     ↓
//	[io] ExportStory / WritePublished, [render/nodelink] ToDOT → SVG
//
// # Quick Start
//
//	reg := story.NewRegistry()
//	env := &story.Env{Resolver: reg, Saver: store.NewNullSaver()}
//	s, err := io.ImportStory("examples/cave.json", env)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg.Add(s)
//
//	err = s.RenamePassage(ctx, s.Named("Tunnel"), "Passageway", story.Options{})
//
// Every link to "Tunnel" now points at "Passageway", the owning story's
// LastUpdate is bumped, and each changed passage went through the Saver.
//
// [link]: github.com/matzehuels/passages/pkg/link
// [layout]: github.com/matzehuels/passages/pkg/layout
// [story]: github.com/matzehuels/passages/pkg/story
// [store]: github.com/matzehuels/passages/pkg/store
// [io]: github.com/matzehuels/passages/pkg/io
// [render/nodelink]: github.com/matzehuels/passages/pkg/render/nodelink
// [cache]: github.com/matzehuels/passages/pkg/cache
// [errors]: github.com/matzehuels/passages/pkg/errors
// [observability]: github.com/matzehuels/passages/pkg/observability
// [buildinfo]: github.com/matzehuels/passages/pkg/buildinfo
package pkg
