// Package nodelink draws the story map: passages as boxes, links as arrows.
//
// # Usage
//
// Convert a story to DOT, then render it to SVG:
//
//	dot := nodelink.ToDOT(s, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: labels also show tags and the number of outgoing links
//   - Positions: pin every passage at its map coordinates instead of letting
//     Graphviz lay the graph out top to bottom
//
// # Styling
//
// The start passage is drawn with a heavy outline. Link targets that name no
// passage get a dashed grey box, so broken links stand out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
