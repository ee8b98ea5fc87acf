package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/passages/pkg/story"
)

type storyFile struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name"`
	StartPassage string        `json:"startPassage,omitempty"`
	LastUpdate   time.Time     `json:"lastUpdate"`
	Passages     []passageFile `json:"passages"`
}

type passageFile struct {
	ID   string   `json:"id,omitempty"`
	Name string   `json:"name"`
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
	Left float64  `json:"left"`
	Top  float64  `json:"top"`
}

// WriteStory encodes s as indented JSON. The output can be read back with
// [ReadStory].
func WriteStory(s *story.Story, w io.Writer) error {
	out := storyFile{
		ID:           s.ID,
		Name:         s.Name,
		StartPassage: s.StartPassage,
		LastUpdate:   s.LastUpdate,
		Passages:     make([]passageFile, 0, s.Len()),
	}
	for _, p := range s.Passages() {
		out.Passages = append(out.Passages, passageFile{
			ID:   p.Key(),
			Name: p.Name(),
			Text: p.Text(),
			Tags: p.Tags(),
			Left: p.Left(),
			Top:  p.Top(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportStory writes s to path, replacing the file only once the new
// content is complete.
func ExportStory(s *story.Story, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".story-*.json")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteStory(s, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
