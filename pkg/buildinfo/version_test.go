package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	for in, want := range map[string]string{"v1.2.3": "1.2.3", "dev": "dev"} {
		Version = in
		if got := Short(); got != want {
			t.Errorf("Short() with %q = %q, want %q", in, got, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template = %q", Template())
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String = %q", String())
	}
}
