package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/passages/pkg/story"
)

const sample = `{
  "id": "1",
  "name": "Cave",
  "startPassage": "3",
  "lastUpdate": "2024-05-01T12:00:00Z",
  "passages": [
    {"id": "3", "name": "Start", "text": "Go [[North]] & <look>.", "tags": ["intro", "intro"], "left": 0, "top": 0},
    {"id": "4", "name": "North", "text": "Cold.", "left": -50, "top": 200}
  ]
}`

func TestReadStory(t *testing.T) {
	s, err := ReadStory(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "1" || s.Name != "Cave" || s.Len() != 2 {
		t.Fatalf("story = %+v (len %d)", s, s.Len())
	}
	if !s.LastUpdate.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("LastUpdate = %v", s.LastUpdate)
	}
	start := s.Start()
	if start == nil || start.Name() != "Start" {
		t.Fatalf("Start = %v", start)
	}
	if got := start.Tags(); len(got) != 1 {
		t.Errorf("tags not deduplicated: %q", got)
	}
	if n := s.Named("north"); n == nil || n.Left() != 0 || n.Top() != 200 {
		t.Errorf("North not clamped: %+v", n)
	}
}

func TestReadStoryInvalid(t *testing.T) {
	if _, err := ReadStory(strings.NewReader("{"), nil); err == nil {
		t.Error("expected decode error")
	}
	if _, err := ImportStory(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Error("expected open error")
	}
}

func TestRoundTrip(t *testing.T) {
	s, err := ReadStory(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "story.json")
	if err := ExportStory(s, path); err != nil {
		t.Fatal(err)
	}
	back, err := ImportStory(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	var a, b bytes.Buffer
	if err := WriteStory(s, &a); err != nil {
		t.Fatal(err)
	}
	if err := WriteStory(back, &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("round trip changed story:\n%s\nvs\n%s", a.String(), b.String())
	}
	if !strings.Contains(a.String(), `"text": "Go [[North]] & <look>."`) {
		t.Errorf("text escaped in story file:\n%s", a.String())
	}
}

func TestWriteStoryUnsavedPassage(t *testing.T) {
	reg := story.NewRegistry()
	env := &story.Env{Resolver: reg}
	s := story.NewStory(env, "New")
	reg.Add(s)
	p := story.NewPassage(env)
	if err := s.Add(p, story.Options{}); err != nil {
		t.Fatal(err)
	}
	s.SetStart(p)

	var buf bytes.Buffer
	if err := WriteStory(s, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadStory(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back.Start() == nil || back.Start().Name() != story.DefaultName {
		t.Errorf("start passage lost for unsaved passage")
	}
}

func TestWritePublished(t *testing.T) {
	s, err := ReadStory(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePublished(s, &buf, PublishOptions{Creator: "passages", CreatorVersion: "dev"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`<tw-storydata name="Cave" startnode="1" creator="passages" creator-version="dev" ifid="` + IFID(s) + `"`,
		`<tw-passagedata pid="1" name="Start" tags="intro" position="0,0">Go [[North]] &amp; &lt;look&gt;.</tw-passagedata>`,
		`<tw-passagedata pid="2" name="North" tags="" position="0,200">Cold.</tw-passagedata>`,
		"</tw-storydata>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIFIDStable(t *testing.T) {
	a, _ := ReadStory(strings.NewReader(sample), nil)
	b, _ := ReadStory(strings.NewReader(sample), nil)
	if IFID(a) != IFID(b) {
		t.Errorf("IFID differs across loads: %s vs %s", IFID(a), IFID(b))
	}
	if IFID(a) != strings.ToUpper(IFID(a)) {
		t.Errorf("IFID not upper case: %s", IFID(a))
	}
}

func TestExportPublished(t *testing.T) {
	s, _ := ReadStory(strings.NewReader(sample), nil)
	path := filepath.Join(t.TempDir(), "out.html")
	if err := ExportPublished(s, path, PublishOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte("<tw-storydata")) {
		t.Errorf("published file = %q, %v", data, err)
	}

	missing := filepath.Join(t.TempDir(), "no-such-dir", "out.html")
	if err := ExportPublished(s, missing, PublishOptions{}); err == nil {
		t.Error("ExportPublished into a missing directory succeeded")
	}
}

func TestImportExampleStory(t *testing.T) {
	s, err := ImportStory(filepath.Join("..", "..", "examples", "cave.json"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Start() == nil || s.Start().Name() != "Entrance" {
		t.Fatalf("start = %v", s.Start())
	}
	broken := s.BrokenLinks()
	if len(broken) != 1 || broken[0].Target != "Swim" {
		t.Errorf("broken links = %+v, want only Swim", broken)
	}
	ps := s.Passages()
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Intersects(ps[j]) {
				t.Errorf("%s overlaps %s", ps[i].Name(), ps[j].Name())
			}
		}
	}
}
