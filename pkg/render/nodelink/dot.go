package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/passages/pkg/story"
)

// pointsPerInch converts map coordinates to Graphviz inches.
const pointsPerInch = 72.0

// Options configures story map rendering.
type Options struct {
	// Detailed adds tags and the outgoing link count to node labels.
	Detailed bool
	// Positions pins passages at their map coordinates.
	Positions bool
}

// ToDOT converts a story to Graphviz DOT. Each internal link becomes one
// edge; repeated links between the same passages are drawn once.
func ToDOT(s *story.Story, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Positions {
		buf.WriteString("  layout=neato;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	start := s.Start()
	for _, p := range s.Passages() {
		attrs := fmtAttrs(p, p == start, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", p.Name(), strings.Join(attrs, ", "))
	}

	missing := map[string]bool{}
	for _, b := range s.BrokenLinks() {
		if missing[b.Target] {
			continue
		}
		missing[b.Target] = true
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black];\n", b.Target, b.Target)
	}

	buf.WriteString("\n")
	for _, p := range s.Passages() {
		seen := map[string]bool{}
		for _, target := range p.Links(true) {
			to := target
			if q := s.Named(target); q != nil {
				to = q.Name()
			}
			if seen[to] {
				continue
			}
			seen[to] = true
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.Name(), to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *story.Passage, detailed bool) string {
	if !detailed {
		return p.Name()
	}

	parts := []string{fmt.Sprintf("links: %d", len(p.Links(true)))}
	if tags := p.Tags(); len(tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(tags, ", "))
	}
	return p.Name() + "\n" + strings.Join(parts, "\n")
}

// fmtAttrs pins positions with y negated, since Graphviz y grows upward.
func fmtAttrs(p *story.Passage, isStart bool, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed))}
	if isStart {
		attrs = append(attrs, "penwidth=3", "fillcolor=\"#e8f0fe\"")
	}
	if opts.Positions {
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", inches(p.Left()), inches(0 - p.Top())))
	}
	return attrs
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin regardless of the offsets Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
