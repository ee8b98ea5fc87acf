package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/passages/pkg/cache"
	"github.com/matzehuels/passages/pkg/render/nodelink"
)

type mapOpts struct {
	output string
	dot    bool
	nodelink.Options
}

// mapCommand creates the "map" command.
func (c *CLI) mapCommand() *cobra.Command {
	var opts mapOpts

	cmd := &cobra.Command{
		Use:   "map <story.json>",
		Short: "Draw the link graph of a story",
		Long: `Draw the story map: passages as boxes, links as arrows. The start passage
has a heavy outline and links to missing passages end in dashed boxes.

The SVG is written next to the story file unless -o is given. Rendered maps
are cached; see 'passages cache'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMap(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <story>.svg, or stdout with --dot)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "write Graphviz DOT instead of SVG")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show tags and link counts")
	cmd.Flags().BoolVar(&opts.Positions, "positions", false, "place passages at their map coordinates")
	return cmd
}

func (c *CLI) runMap(ctx context.Context, path string, opts mapOpts) error {
	ws, err := c.openStory(ctx, path, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	dot := nodelink.ToDOT(ws.story, opts.Options)
	if opts.dot {
		return writeOutput(opts.output, []byte(dot))
	}

	cc, err := c.newCache()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cc.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering story map...")
	spinner.Start()
	svg, err := cache.Fetch(ctx, cc, cache.MapKey(dot), 0, func() ([]byte, error) {
		return nodelink.RenderSVG(ctx, dot)
	})
	if err != nil && svg == nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()
	if err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "err", err)
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	}
	if err := writeOutput(out, svg); err != nil {
		return err
	}
	printSuccess("Drew %s", StyleHighlight.Render(ws.story.Name))
	printStats(ws.story.Len(), countLinks(ws), len(ws.story.BrokenLinks()))
	printFile(out)
	return nil
}

func countLinks(ws *workspace) int {
	n := 0
	for _, p := range ws.story.Passages() {
		n += len(p.Links(true))
	}
	return n
}
