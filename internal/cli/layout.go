package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/story"
)

// moveCommand creates the "move" command.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <story.json> <passage> <left> <top>",
		Short: "Move a passage and push overlapping passages aside",
		Long: `Move a passage on the story map. Negative coordinates become 0.

Passages the moved one now overlaps are pushed out of the way along a single
axis until they no longer overlap it.`,
		Args:              cobra.ExactArgs(4),
		ValidArgsFunction: completePassageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := parseCoord(args[2])
			if err != nil {
				return err
			}
			top, err := parseCoord(args[3])
			if err != nil {
				return err
			}
			return c.runMove(cmd.Context(), args[0], args[1], left, top)
		},
	}
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "invalid coordinate %q", s)
	}
	return v, nil
}

func (c *CLI) runMove(ctx context.Context, path, name string, left, top float64) error {
	ws, err := c.openStory(ctx, path, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	p, err := ws.passage(name)
	if err != nil {
		return err
	}
	if err := p.MoveTo(ctx, left, top, story.Options{}); err != nil {
		return err
	}
	moved := ws.story.Place(ctx, p)
	if err := ws.persist(ctx, moved); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}

	printSuccess("Moved %s to %s, %s", StyleHighlight.Render(p.Name()), fmtCoord(p.Left()), fmtCoord(p.Top()))
	printMoved(moved)
	return nil
}

// tidyCommand creates the "tidy" command.
func (c *CLI) tidyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tidy <story.json>",
		Short: "Separate every pair of overlapping passages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openStory(ctx, args[0], false)
			if err != nil {
				return err
			}
			defer ws.Close()

			prog := newProgress(loggerFromContext(ctx))
			moved := ws.story.Tidy(ctx)
			if len(moved) == 0 {
				printInfo("No overlapping passages")
				return nil
			}
			if err := ws.persist(ctx, moved); err != nil {
				return err
			}
			ws.story.Touch(ws.env.Now())
			if err := ws.save(); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Tidied %d passage%s", len(moved), plural(len(moved))))

			printMoved(moved)
			printFile(args[0])
			return nil
		},
	}
}

func printMoved(moved []*story.Passage) {
	for _, q := range moved {
		printDetail("%s %s %s, %s", q.Name(), iconArrow, fmtCoord(q.Left()), fmtCoord(q.Top()))
	}
}
