package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/story"
)

// checkCommand creates the "check" command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <story.json>",
		Short: "Report invalid names, broken links and a missing start passage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openStory(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			defer ws.Close()

			problems := checkStory(ws)
			for _, msg := range problems {
				printError("%s", msg)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem%s found in %s", len(problems), plural(len(problems)), args[0])
			}
			printSuccess("%s: %d passages, no problems", ws.story.Name, ws.story.Len())
			return nil
		},
	}
}

func checkStory(ws *workspace) []string {
	var problems []string
	s := ws.story
	for _, p := range s.Passages() {
		if msg := p.Validate(p.Attrs(), story.Options{}); msg != "" {
			problems = append(problems, fmt.Sprintf("%q: %s", p.Name(), msg))
			continue
		}
		if err := perrors.ValidateLinkTarget(p.Name()); err != nil {
			problems = append(problems, fmt.Sprintf("%q: %s", p.Name(), perrors.UserMessage(err)))
		}
	}
	for _, b := range s.BrokenLinks() {
		problems = append(problems, fmt.Sprintf("%q links to missing passage %q", b.From, b.Target))
	}
	if s.Len() > 0 && s.Start() == nil {
		problems = append(problems, "no start passage")
	}
	return problems
}
