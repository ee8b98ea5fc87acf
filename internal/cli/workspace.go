package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/io"
	"github.com/matzehuels/passages/pkg/store"
	"github.com/matzehuels/passages/pkg/story"
)

// workspace is one story file opened for a command, together with the store
// its passages save through.
type workspace struct {
	path  string
	story *story.Story
	env   *story.Env
	store store.Store
}

// openStory loads the story at path. With create set a missing file yields a
// new, empty story named after the file.
func (c *CLI) openStory(ctx context.Context, path string, create bool) (*workspace, error) {
	if err := perrors.ValidateStoryPath(path); err != nil {
		return nil, err
	}

	backend := c.cfg.Store
	if c.noStore {
		backend.Backend = store.BackendNone
	}
	st, err := store.Open(ctx, backend, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := story.NewRegistry()
	env := &story.Env{Resolver: reg, Saver: st, Logger: c.Logger, Now: time.Now}

	s, err := io.ImportStory(path, env)
	switch {
	case err == nil:
	case create && errors.Is(err, fs.ErrNotExist):
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s = story.NewStory(env, name)
		c.Logger.Debug("new story", "path", path, "name", name)
	case errors.Is(err, fs.ErrNotExist):
		st.Close()
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "story file %s", path)
	default:
		st.Close()
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "load story %s", path)
	}
	reg.Add(s)
	for _, p := range s.Passages() {
		if err := st.Reserve(ctx, p.ID()); err != nil {
			st.Close()
			return nil, perrors.Wrap(perrors.ErrCodePersist, err, "reserve ids of %s", path)
		}
	}

	c.Logger.Debug("story loaded", "path", path, "passages", s.Len())
	return &workspace{path: path, story: s, env: env, store: st}, nil
}

// passage looks a passage up by name.
func (w *workspace) passage(name string) (*story.Passage, error) {
	p := w.story.Named(name)
	if p == nil {
		return nil, perrors.New(perrors.ErrCodePassageNotFound, "no passage named %q in %s", name, w.path)
	}
	return p, nil
}

// persist saves the given passages with their complete attributes.
func (w *workspace) persist(ctx context.Context, ps []*story.Passage) error {
	var errs []error
	for _, p := range ps {
		if err := p.Persist(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// save writes the story file back.
func (w *workspace) save() error {
	return io.ExportStory(w.story, w.path)
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
