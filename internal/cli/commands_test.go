package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/passages/pkg/errors"
	pio "github.com/matzehuels/passages/pkg/io"
	"github.com/matzehuels/passages/pkg/observability"
	"github.com/matzehuels/passages/pkg/store"
	"github.com/matzehuels/passages/pkg/story"
)

const caveStory = `{
  "id": "1",
  "name": "Cave",
  "startPassage": "1",
  "lastUpdate": "2024-05-01T12:00:00Z",
  "passages": [
    {"id": "1", "name": "Start", "text": "Enter the [[Cave]] or [[run->Exit]].", "left": 0, "top": 0},
    {"id": "2", "name": "Cave", "text": "Dark. [[Back|Start]]", "left": 300, "top": 0},
    {"id": "3", "name": "Exit", "text": "Bright.", "left": 600, "top": 0}
  ]
}`

// runCLI executes the root command with an isolated config and cache and
// without a persistent store.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return execCLI(t, append([]string{"--no-store"}, args...)...)
}

// runWithFileStore executes the root command against a file store in dir.
func runWithFileStore(t *testing.T, dir string, args ...string) error {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf("[store]\nbackend = \"file\"\ndir = %q\n", dir)
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return execCLI(t, append([]string{"--config", cfg}, args...)...)
}

func execCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeStory(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cave.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadStory(t *testing.T, path string) *story.Story {
	t.Helper()
	s, err := pio.ImportStory(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")

	if err := runCLI(t, "new", path); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "new", path, "--text", "Go [[Untitled Passage]]"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "new", path, "Hall", "--tag", "room", "--tag", "room"); err != nil {
		t.Fatal(err)
	}

	s := loadStory(t, path)
	if s.Name != "fresh" || s.Len() != 3 {
		t.Fatalf("story %q has %d passages", s.Name, s.Len())
	}
	first, second, hall := s.Named(story.DefaultName), s.Named(story.DefaultName+" 1"), s.Named("Hall")
	if first == nil || second == nil || hall == nil {
		t.Fatalf("passages = %v", names(s))
	}
	if s.Start() != first {
		t.Errorf("start = %v, want first passage", s.Start())
	}
	if first.ID() == second.ID() || second.ID() == hall.ID() {
		t.Errorf("ids not unique: %q %q %q", first.ID(), second.ID(), hall.ID())
	}
	if first.Intersects(second) || second.Intersects(hall) || first.Intersects(hall) {
		t.Errorf("new passages overlap: %v %v %v", first.Pos(), second.Pos(), hall.Pos())
	}
	if got := hall.Tags(); len(got) != 1 || got[0] != "room" {
		t.Errorf("tags = %q", got)
	}
}

func TestNewCommandFileStore(t *testing.T) {
	dir := t.TempDir()
	path := writeStory(t, caveStory)

	if err := runWithFileStore(t, dir, "new", path, "Hall"); err != nil {
		t.Fatal(err)
	}

	s := loadStory(t, path)
	hall := s.Named("Hall")
	if hall == nil {
		t.Fatalf("passages = %v", names(s))
	}
	if hall.ID() != "4" {
		t.Errorf("Hall id = %q, want 4", hall.ID())
	}
	seen := map[string]string{}
	for _, p := range s.Passages() {
		if other, ok := seen[p.ID()]; ok {
			t.Errorf("%s and %s share id %q", other, p.Name(), p.ID())
		}
		seen[p.ID()] = p.Name()
	}
	if s.Start().Name() != "Start" {
		t.Errorf("start = %q, want Start", s.Start().Name())
	}

	st, err := store.NewFileSaver(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if doc, _ := st.Load("1"); doc != nil {
		t.Errorf("store record 1 written for a new passage: %v", doc)
	}
	if doc, _ := st.Load("4"); doc["name"] != "Hall" {
		t.Errorf("store record 4 = %v", doc)
	}
}

func TestFileStoreRejectsUnsafeID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	path := writeStory(t, strings.ReplaceAll(caveStory, `"id": "3"`, `"id": "../../escaped"`))

	err := runWithFileStore(t, dir, "move", path, "Exit", "900", "0")
	if !perrors.Is(err, perrors.ErrCodePersist) || !strings.Contains(err.Error(), "invalid passage id") {
		t.Errorf("err = %v, want rejected passage id", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escaped.json")); !os.IsNotExist(err) {
		t.Errorf("file written outside the store: %v", err)
	}
}

func TestNewCommandDuplicate(t *testing.T) {
	path := writeStory(t, caveStory)
	err := runCLI(t, "new", path, "cave")
	if !perrors.Is(err, perrors.ErrCodeDuplicateName) {
		t.Fatalf("err = %v, want duplicate name", err)
	}
	if loadStory(t, path).Len() != 3 {
		t.Error("story file changed after rejected passage")
	}
}

func TestRenameCommand(t *testing.T) {
	path := writeStory(t, caveStory)
	if err := runCLI(t, "rename", path, "Cave", "Grotto"); err != nil {
		t.Fatal(err)
	}

	s := loadStory(t, path)
	if got, want := s.Named("Start").Text(), "Enter the [[Grotto]] or [[run->Exit]]."; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if s.Named("Grotto") == nil || s.Named("Cave") != nil {
		t.Errorf("passages = %v", names(s))
	}

	err := runCLI(t, "rename", path, "Grotto", "exit")
	if !perrors.Is(err, perrors.ErrCodeDuplicateName) {
		t.Errorf("err = %v, want duplicate name", err)
	}
	err = runCLI(t, "rename", path, "Nowhere", "X")
	if !perrors.Is(err, perrors.ErrCodePassageNotFound) {
		t.Errorf("err = %v, want passage not found", err)
	}
}

func TestMoveCommand(t *testing.T) {
	path := writeStory(t, caveStory)
	if err := runCLI(t, "move", "--", path, "Exit", "310", "-40"); err != nil {
		t.Fatal(err)
	}

	s := loadStory(t, path)
	exit, cave := s.Named("Exit"), s.Named("Cave")
	if exit.Left() != 310 || exit.Top() != 0 {
		t.Errorf("Exit at %v, want (310, 0)", exit.Pos())
	}
	if exit.Intersects(cave) {
		t.Errorf("Cave at %v still overlaps Exit", cave.Pos())
	}

	if err := runCLI(t, "move", path, "Exit", "x", "0"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestTidyCommand(t *testing.T) {
	path := writeStory(t, strings.ReplaceAll(caveStory, `"left": 300`, `"left": 20`))
	if err := runCLI(t, "tidy", path); err != nil {
		t.Fatal(err)
	}
	ps := loadStory(t, path).Passages()
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Intersects(ps[j]) {
				t.Errorf("%s overlaps %s", ps[i].Name(), ps[j].Name())
			}
		}
	}
}

func TestReplaceCommand(t *testing.T) {
	path := writeStory(t, caveStory)
	if err := runCLI(t, "replace", path, "(?i)bright", "Blinding"); err != nil {
		t.Fatal(err)
	}
	if got := loadStory(t, path).Named("Exit").Text(); got != "Blinding." {
		t.Errorf("text = %q", got)
	}

	if err := runCLI(t, "replace", path, "Exit", "Cave", "--names"); err != nil {
		t.Fatal(err)
	}
	if s := loadStory(t, path); s.Named("Exit") == nil {
		t.Error("clashing rename was applied")
	}

	if err := runCLI(t, "replace", path, "(", "x"); err == nil {
		t.Error("invalid pattern accepted")
	}
}

func TestSearchAndLinksCommands(t *testing.T) {
	path := writeStory(t, caveStory)
	for _, args := range [][]string{
		{"search", path, "dark", "-i"},
		{"search", path, "nothing-here"},
		{"links", path},
		{"links", path, "Start", "--internal"},
	} {
		if err := runCLI(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
	if err := runCLI(t, "links", path, "Nowhere"); !perrors.Is(err, perrors.ErrCodePassageNotFound) {
		t.Errorf("err = %v, want passage not found", err)
	}
}

func TestPublishCommand(t *testing.T) {
	path := writeStory(t, caveStory)
	out := filepath.Join(t.TempDir(), "cave.html")
	if err := runCLI(t, "publish", path, "-o", out, "--format", "Harlowe"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{
		`startnode="1"`,
		`format="Harlowe"`,
		`<tw-passagedata pid="3" name="Exit" tags="" position="600,0">Bright.</tw-passagedata>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMapCommandDOT(t *testing.T) {
	path := writeStory(t, caveStory)
	out := filepath.Join(t.TempDir(), "cave.dot")
	if err := runCLI(t, "map", path, "--dot", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Start" -> "Exit";`) {
		t.Errorf("DOT = %s", data)
	}
}

func TestCheckCommand(t *testing.T) {
	if err := runCLI(t, "check", writeStory(t, caveStory)); err != nil {
		t.Errorf("clean story: %v", err)
	}

	broken := strings.ReplaceAll(caveStory, `"name": "Exit"`, `"name": "cave"`)
	problems := checkStoryFile(t, broken)
	if len(problems) != 3 {
		t.Errorf("problems = %q, want duplicate name twice plus broken link", problems)
	}
	if err := runCLI(t, "check", writeStory(t, broken)); err == nil {
		t.Error("check passed a broken story")
	}

	unlinkable := strings.ReplaceAll(caveStory, `"name": "Exit"`, `"name": "Ex]]it"`)
	problems = checkStoryFile(t, unlinkable)
	if len(problems) != 2 {
		t.Errorf("problems = %q, want unlinkable name plus broken link", problems)
	}
}

func TestOpenStoryErrors(t *testing.T) {
	dir := t.TempDir()
	if err := runCLI(t, "links", filepath.Join(dir, "missing.json")); !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if err := runCLI(t, "links", filepath.Join(dir, "story.txt")); !perrors.Is(err, perrors.ErrCodeInvalidPath) {
		t.Errorf("wrong extension: %v", err)
	}
	if err := runCLI(t, "links", writeStory(t, "{")); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("bad json: %v", err)
	}
}

func checkStoryFile(t *testing.T, body string) []string {
	t.Helper()
	reg := story.NewRegistry()
	s, err := pio.ReadStory(strings.NewReader(body), &story.Env{Resolver: reg})
	if err != nil {
		t.Fatal(err)
	}
	reg.Add(s)
	return checkStory(&workspace{story: s})
}

func names(s *story.Story) []string {
	var out []string
	for _, p := range s.Passages() {
		out = append(out, p.Name())
	}
	return out
}
