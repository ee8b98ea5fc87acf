package cli

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/matzehuels/passages/pkg/story"
)

type searchOpts struct {
	names      bool
	ignoreCase bool
}

func compilePattern(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return re, nil
}

// searchCommand creates the "search" command.
func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search <story.json> <pattern>",
		Short: "Find passages matching a regular expression",
		Long: `Find passages whose name or text matches a regular expression (RE2 syntax).

Each hit is listed with its number of matches and an excerpt of its text.
Matches in passage names are counted only with --names.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.names, "names", false, "count matches in passage names too")
	cmd.Flags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	return cmd
}

func (c *CLI) runSearch(ctx context.Context, path, pattern string, opts searchOpts) error {
	re, err := compilePattern(pattern, opts.ignoreCase)
	if err != nil {
		return err
	}
	ws, err := c.openStory(ctx, path, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	hits, total := 0, 0
	for _, p := range ws.story.Passages() {
		if !p.Matches(re) {
			continue
		}
		n := p.NumMatches(re, opts.names)
		hits++
		total += n
		fmt.Println(StyleTitle.Render(p.Name()) + " " + StyleNumber.Render(fmt.Sprintf("%d", n)))
		printDetail("%s", p.Excerpt())
	}

	if hits == 0 {
		printInfo("No passages match %s", StyleHighlight.Render(pattern))
		return nil
	}
	printNewline()
	printInfo("%d passage%s, %d match%s", hits, plural(hits), total, pluralES(total))
	return nil
}

// replaceCommand creates the "replace" command.
func (c *CLI) replaceCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "replace <story.json> <pattern> <replacement>",
		Short: "Replace text across all passages",
		Long: `Replace every match of a regular expression in passage text, and in names
with --names. The replacement may refer to groups as $1 or ${name}.

A passage whose new name would be empty or taken is skipped with a warning.
Links are replaced as plain text; use 'rename' to rename a passage safely.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplace(cmd.Context(), args[0], args[1], args[2], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.names, "names", false, "replace in passage names too")
	cmd.Flags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	return cmd
}

func (c *CLI) runReplace(ctx context.Context, path, pattern, replacement string, opts searchOpts) error {
	re, err := compilePattern(pattern, opts.ignoreCase)
	if err != nil {
		return err
	}
	ws, err := c.openStory(ctx, path, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	changed := 0
	for _, p := range ws.story.Passages() {
		if p.NumMatches(re, opts.names) == 0 {
			continue
		}
		name, text := p.Name(), p.Text()
		if err := p.Replace(ctx, re, replacement, opts.names, story.Options{}); err != nil {
			printWarning("%s: %v", name, err)
			continue
		}
		if p.Name() != name || p.Text() != text {
			changed++
			printDetail("%s", p.Name())
		}
	}

	if changed == 0 {
		printInfo("Nothing replaced")
		return nil
	}
	if err := ws.save(); err != nil {
		return err
	}
	printSuccess("Updated %d passage%s", changed, plural(changed))
	printFile(path)
	return nil
}

func pluralES(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}
