package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/passages/pkg/errors"
	"github.com/matzehuels/passages/pkg/story"
)

const seqFile = "seq"

// FileSaver stores each passage as <dir>/passages/<id>.json. Deltas are
// merged into the existing document. The id sequence lives in <dir>/seq.
type FileSaver struct {
	mu     sync.Mutex
	dir    string
	logger *log.Logger
}

// NewFileSaver creates the directory layout under dir. If dir is empty it
// defaults to ~/.local/share/passages.
func NewFileSaver(dir string, logger *log.Logger) (*FileSaver, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "passages")
	}
	if err := os.MkdirAll(filepath.Join(dir, "passages"), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileSaver{dir: dir, logger: orDiscard(logger)}, nil
}

// passagePath maps id to its document. Ids come from story files, so
// anything that could name a file outside the passages directory is refused.
func (s *FileSaver) passagePath(id string) (string, error) {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return "", perrors.New(perrors.ErrCodeInvalidInput, "invalid passage id %q", id)
	}
	return filepath.Join(s.dir, "passages", id+".json"), nil
}

func (s *FileSaver) Save(_ context.Context, ref story.SaveRef, delta story.Delta) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ref.ID
	if id == "" {
		next, err := s.nextID()
		if err != nil {
			return "", err
		}
		id = next
	}

	doc, err := s.load(id)
	if err != nil {
		return "", err
	}
	for k, v := range delta {
		doc[k] = v
	}
	doc["id"] = id
	if ref.Story != "" {
		doc[story.FieldStory] = ref.Story
	}

	path, err := s.passagePath(id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal passage: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write passage file: %w", err)
	}
	s.logger.Debug("file store saved passage", "id", id, "fields", delta.Fields())
	return id, nil
}

// Load returns the stored document of a passage, or nil if there is none.
func (s *FileSaver) Load(id string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(id)
	if err != nil || len(doc) == 0 {
		return nil, err
	}
	return doc, nil
}

func (s *FileSaver) load(id string) (map[string]any, error) {
	path, err := s.passagePath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read passage file: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse passage file: %w", err)
	}
	return doc, nil
}

// Reserve raises the sequence file to id if it is behind.
func (s *FileSaver) Reserve(_ context.Context, id string) error {
	n, ok := seqNumber(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.readSeq()
	if err != nil || cur >= n {
		return err
	}
	return s.writeSeq(n)
}

// nextID advances the sequence, skipping numbers that already have a
// document on disk.
func (s *FileSaver) nextID() (string, error) {
	n, err := s.readSeq()
	if err != nil {
		return "", err
	}
	for {
		n++
		if _, err := os.Stat(filepath.Join(s.dir, "passages", strconv.FormatInt(n, 10)+".json")); os.IsNotExist(err) {
			break
		}
	}
	if err := s.writeSeq(n); err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

func (s *FileSaver) readSeq() (int64, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, seqFile))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read sequence file: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sequence file: %w", err)
	}
	return n, nil
}

func (s *FileSaver) writeSeq(n int64) error {
	path := filepath.Join(s.dir, seqFile)
	if err := os.WriteFile(path, []byte(strconv.FormatInt(n, 10)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write sequence file: %w", err)
	}
	return nil
}

func (s *FileSaver) Close() error { return nil }

var _ Store = (*FileSaver)(nil)
