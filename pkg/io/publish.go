package io

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/matzehuels/passages/pkg/story"
)

// PublishOptions describe the tool that produced a published story.
type PublishOptions struct {
	Creator        string
	CreatorVersion string
	Format         string
	FormatVersion  string
}

// ifidSpace namespaces story IFIDs so they are stable for a given story.
var ifidSpace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// IFID returns the interactive fiction id of s, derived from its key.
func IFID(s *story.Story) string {
	return strings.ToUpper(uuid.NewSHA1(ifidSpace, []byte(s.Key())).String())
}

// WritePublished renders s as a <tw-storydata> element. Passage pids count
// from 1 in story order; startnode is the pid of the start passage, or empty.
func WritePublished(s *story.Story, w io.Writer, opts PublishOptions) error {
	var b strings.Builder

	start := ""
	passages := s.Passages()
	if sp := s.Start(); sp != nil {
		for i, p := range passages {
			if p == sp {
				start = strconv.Itoa(i + 1)
			}
		}
	}

	fmt.Fprintf(&b, `<tw-storydata name="%s" startnode="%s" creator="%s" creator-version="%s" ifid="%s" format="%s" format-version="%s" options="" hidden>`,
		attr(s.Name), start, attr(opts.Creator), attr(opts.CreatorVersion), IFID(s), attr(opts.Format), attr(opts.FormatVersion))
	b.WriteString("\n")

	for i, p := range passages {
		b.WriteString(passageData(p.Publish(i + 1)))
		b.WriteString("\n")
	}
	b.WriteString("</tw-storydata>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportPublished writes the published form of s to path.
func ExportPublished(s *story.Story, path string, opts PublishOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePublished(s, f, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func passageData(p story.Published) string {
	return fmt.Sprintf(`<tw-passagedata pid="%d" name="%s" tags="%s" position="%s,%s">%s</tw-passagedata>`,
		p.ID, attr(p.Name), attr(p.Tags), coord(p.Left), coord(p.Top), html.EscapeString(p.Text))
}

func attr(s string) string { return html.EscapeString(s) }

func coord(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
