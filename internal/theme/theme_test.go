package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
# comment
Name: mine
Background: #102030
gridline = #FFFFFF40
Summary: gold
Unknown: #000000
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("expected name 'mine', got %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("unexpected Background %+v", th.Background)
	}
	if th.GridLine != (color.RGBA{0xFF, 0xFF, 0xFF, 0x40}) {
		t.Errorf("unexpected GridLine %+v", th.GridLine)
	}
	if th.Summary != (color.RGBA{255, 215, 0, 255}) {
		t.Errorf("unexpected Summary %+v", th.Summary)
	}
	if th.Cell != Default().Cell {
		t.Errorf("missing keys should keep defaults")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	_, err := Parse(strings.NewReader("Background: #12345\n"))
	if err == nil {
		t.Fatal("expected error for short hex color")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {0xAA, 0xBB, 0xCC, 0x10}} {
		got, err := ParseColor(Hex(c))
		if err != nil {
			t.Fatalf("ParseColor(%s): %v", Hex(c), err)
		}
		if got != c {
			t.Errorf("round trip %+v -> %s -> %+v", c, Hex(c), got)
		}
	}
}

func TestLoaderEmbeddedAndFiles(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("")
	if err != nil || th.Name != "Default" {
		t.Fatalf("empty name should give default, got %v %v", th, err)
	}

	th, err = l.Load("light")
	if err != nil {
		t.Fatalf("embedded theme: %v", err)
	}
	if th.Name != "light" {
		t.Errorf("expected light theme, got %q", th.Name)
	}

	custom := filepath.Join(dir, "ink.theme")
	if err := os.WriteFile(custom, []byte("Name: ink\nCell: #0000FF\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err = l.Load("ink")
	if err != nil {
		t.Fatalf("config dir theme: %v", err)
	}
	if th.Cell != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("unexpected cell color %+v", th.Cell)
	}

	th, err = l.Load(custom)
	if err != nil || th.Name != "ink" {
		t.Fatalf("path theme: %v %v", th, err)
	}

	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestBuiltinThemesParse(t *testing.T) {
	names := Builtin()
	if len(names) == 0 {
		t.Fatal("expected embedded themes")
	}
	l := &Loader{}
	for _, name := range names {
		if _, err := l.Load(name); err != nil {
			t.Errorf("builtin theme %s: %v", name, err)
		}
	}
}

func TestFieldsListsColors(t *testing.T) {
	fields := Fields(Default())
	if len(fields) == 0 || fields[0].Name != "Background" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	for _, f := range fields {
		if f.Name == "Name" {
			t.Fatal("Name is not a colour field")
		}
	}
}
