package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/passages/pkg/buildinfo"
	"github.com/matzehuels/passages/pkg/io"
)

// publishCommand creates the "publish" command.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		output string
		opts   = io.PublishOptions{Creator: appName, CreatorVersion: buildinfo.Short()}
	)

	cmd := &cobra.Command{
		Use:   "publish <story.json>",
		Short: "Write the story as <tw-storydata> HTML",
		Long: `Write the story as the <tw-storydata> element story formats read, with one
<tw-passagedata> per passage. Output goes to stdout unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openStory(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			defer ws.Close()

			if ws.story.Start() == nil {
				printWarning("%s has no start passage", ws.story.Name)
			}

			if output == "" || output == "-" {
				return io.WritePublished(ws.story, os.Stdout, opts)
			}
			if err := io.ExportPublished(ws.story, output, opts); err != nil {
				return err
			}
			printSuccess("Published %s", StyleHighlight.Render(ws.story.Name))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "story format name to record")
	cmd.Flags().StringVar(&opts.FormatVersion, "format-version", "", "story format version to record")
	return cmd
}
