package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/passages/pkg/io"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the "completion" command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Besides commands and flags, the scripts complete story files and the names of
the passages inside them, e.g.:

  $ source <(passages completion bash)
  $ passages move cave.json <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completePassageArg completes the story file as the first argument and a
// passage name from that file as the second.
func completePassageArg(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	case 1:
		return passageNames(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// passageNames lists the passages of the story at path starting with prefix,
// case-insensitively. An unreadable story yields nothing.
func passageNames(path, prefix string) []string {
	s, err := io.ImportStory(path, nil)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range s.Passages() {
		if strings.HasPrefix(strings.ToLower(p.Name()), strings.ToLower(prefix)) {
			names = append(names, p.Name())
		}
	}
	return names
}
