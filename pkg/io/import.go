package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/passages/pkg/story"
)

// ReadStory decodes a story from r. Passages are restored through env, so
// later edits are saved with env's Saver. The story is not registered with
// env's Resolver; callers that need the cascades do that themselves.
// ReadStory does not close r.
func ReadStory(r io.Reader, env *story.Env) (*story.Story, error) {
	var data storyFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := story.NewStory(env, data.Name)
	s.ID = data.ID
	s.StartPassage = data.StartPassage
	s.LastUpdate = data.LastUpdate

	for _, p := range data.Passages {
		ps := story.RestorePassage(env, story.Attrs{
			ID:    p.ID,
			Name:  p.Name,
			Text:  p.Text,
			Tags:  p.Tags,
			Left:  p.Left,
			Top:   p.Top,
			Story: s.Key(),
		})
		if err := s.Add(ps, story.Options{NoValidation: true}); err != nil {
			return nil, fmt.Errorf("passage %s: %w", p.Name, err)
		}
	}
	return s, nil
}

// ImportStory reads the story file at path. See [ReadStory].
func ImportStory(path string, env *story.Env) (*story.Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadStory(f, env)
}
