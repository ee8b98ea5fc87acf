package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Command results go to stdout; logs and returned errors go to stderr.

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorCmd    = lipgloss.Color("75")  // light blue
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders passage names at the head of a listing.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders the passage or story a command acted on.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleNumber renders counts.
	StyleNumber = StyleHighlight

	// StyleDim renders details and separators.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleValue renders paths and link targets.
	StyleValue = lipgloss.NewStyle().Bold(true)

	// StyleWarning renders warnings and broken link counts.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
)

const iconArrow = "→"

type status int

const (
	statusOK status = iota
	statusFail
	statusWarn
	statusInfo
)

var statusIcons = [...]string{
	statusOK:   lipgloss.NewStyle().Foreground(colorOK).Render("✓"),
	statusFail: lipgloss.NewStyle().Foreground(colorFail).Render("✗"),
	statusWarn: lipgloss.NewStyle().Foreground(colorWarn).Render("!"),
	statusInfo: StyleDim.Render("›"),
}

func printStatus(s status, msg string) {
	fmt.Println(statusIcons[s] + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(statusOK, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(statusFail, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(statusWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(statusInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the file a command wrote.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints the size of a story map on one line.
func printStats(passages, links, broken int) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d passage%s", passages, plural(passages))),
		StyleDim.Render(fmt.Sprintf("%d link%s", links, plural(links))),
	}
	if broken > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d broken", broken)))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
