// Package io reads and writes stories.
//
// # Story files
//
// Stories are stored as JSON:
//
//	{
//	  "id": "1",
//	  "name": "My Story",
//	  "startPassage": "3",
//	  "lastUpdate": "2024-05-01T12:00:00Z",
//	  "passages": [
//	    {"id": "3", "name": "Start", "text": "Go [[North]].", "tags": ["intro"], "left": 0, "top": 0}
//	  ]
//	}
//
// Use [ImportStory] or [ReadStory] to load one and [ExportStory] or
// [WriteStory] to save it. Loading does not validate passage names, so files
// with empty or clashing names can still be opened and repaired. Passages
// without an id are written with their local id, which keeps startPassage
// resolvable across a round trip.
//
// # Published stories
//
// [WritePublished] renders the <tw-storydata> element a story format
// consumes: one <tw-passagedata> per passage, numbered from 1 in story order,
// with names, tags and text HTML-escaped.
package io
