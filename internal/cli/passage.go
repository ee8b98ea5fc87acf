package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/link"
	"github.com/matzehuels/passages/pkg/story"
)

type newOpts struct {
	text string
	tags []string
	left float64
	top  float64
}

// newCommand creates the "new" command that adds a passage to a story.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new <story.json> [name]",
		Short: "Add a passage to a story",
		Long: `Add a passage to a story, creating the story file if it does not exist.

Without a name the passage is called "Untitled Passage", numbered if that
name is taken. It is placed at --left/--top, or further right if that spot
overlaps another passage. The first passage of a story becomes its start.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return c.runNew(cmd.Context(), args[0], name, opts)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", story.DefaultText, "passage text")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "tag to add (repeatable)")
	cmd.Flags().Float64Var(&opts.left, "left", 0, "preferred left coordinate")
	cmd.Flags().Float64Var(&opts.top, "top", 0, "preferred top coordinate")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, path, name string, opts newOpts) error {
	ws, err := c.openStory(ctx, path, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	s := ws.story
	if name == "" {
		name = s.UniqueName(story.DefaultName)
	}

	pos := s.FreePosition(opts.left, opts.top)
	p := story.RestorePassage(ws.env, story.Attrs{
		Name: name,
		Text: opts.text,
		Tags: opts.tags,
		Left: pos.Left,
		Top:  pos.Top,
	})
	if err := s.Add(p, story.Options{}); err != nil {
		return err
	}
	if s.Start() == nil {
		s.SetStart(p)
	}
	if err := p.Persist(ctx); err != nil {
		return err
	}
	s.Touch(ws.env.Now())

	if err := ws.save(); err != nil {
		return err
	}
	printSuccess("Added %s", StyleHighlight.Render(p.Name()))
	printDetail("at %s, %s", fmtCoord(p.Left()), fmtCoord(p.Top()))
	if s.Start() == p {
		printDetail("start passage")
	}
	printFile(path)
	if s.Len() == 1 {
		printNextStep("Draw the story map", appName+" map "+path)
	}
	return nil
}

// linksCommand creates the "links" command.
func (c *CLI) linksCommand() *cobra.Command {
	var internal bool

	cmd := &cobra.Command{
		Use:   "links <story.json> [passage]",
		Short: "List the links of one or every passage",
		Long: `List the link targets of a passage, or of every passage in the story.

Each target is listed once, in order of first appearance. With --internal,
links to URLs such as https://example.com are left out.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completePassageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openStory(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			defer ws.Close()

			passages := ws.story.Passages()
			if len(args) == 2 {
				p, err := ws.passage(args[1])
				if err != nil {
					return err
				}
				passages = []*story.Passage{p}
			}

			for _, p := range passages {
				links := p.Links(internal)
				fmt.Println(StyleTitle.Render(p.Name()) + " " + StyleDim.Render(fmt.Sprintf("(%d)", len(links))))
				for _, l := range links {
					target := StyleValue.Render(l)
					if !link.IsExternal(l) && ws.story.Named(l) == nil {
						target = StyleWarning.Render(l + " (missing)")
					}
					fmt.Println("  " + StyleDim.Render(iconArrow) + " " + target)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&internal, "internal", false, "only list links to other passages")
	return cmd
}

// renameCommand creates the "rename" command.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <story.json> <old> <new>",
		Short:             "Rename a passage and update links to it",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completePassageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openStory(ctx, args[0], false)
			if err != nil {
				return err
			}
			defer ws.Close()

			p, err := ws.passage(args[1])
			if err != nil {
				return err
			}
			oldName := p.Name()

			before := texts(ws.story)
			renameErr := ws.story.RenamePassage(ctx, p, args[2], story.Options{})
			if p.Name() == oldName {
				return renameErr
			}
			if err := ws.save(); err != nil {
				return err
			}

			printSuccess("Renamed %s %s %s", oldName, iconArrow, StyleHighlight.Render(p.Name()))
			if n := changedTexts(ws.story, before); n > 0 {
				printDetail("updated links in %d passage%s", n, plural(n))
			}
			if err := perrors.ValidateLinkTarget(p.Name()); err != nil {
				printWarning("links to this passage will not resolve: %s", perrors.UserMessage(err))
			}
			return renameErr
		},
	}
}

func texts(s *story.Story) map[*story.Passage]string {
	out := make(map[*story.Passage]string, s.Len())
	for _, p := range s.Passages() {
		out[p] = p.Text()
	}
	return out
}

func changedTexts(s *story.Story, before map[*story.Passage]string) int {
	n := 0
	for _, p := range s.Passages() {
		if before[p] != p.Text() {
			n++
		}
	}
	return n
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
