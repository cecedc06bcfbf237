package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader(`
// comment
Name: Custom
background: #101010
Selection: red
Unknown: #FFFFFF
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("unexpected name %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x10, 0x10, 0xff}) {
		t.Errorf("unexpected background %v", th.Background)
	}
	if th.Selection != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("unexpected selection %v", th.Selection)
	}
	if th.HandleFill != Default().HandleFill {
		t.Errorf("missing keys should keep defaults")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #12")); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Embedded()
	if len(names) < 2 {
		t.Fatalf("expected embedded themes, got %v", names)
	}
	l := &Loader{ConfigDir: t.TempDir(), SystemDir: t.TempDir()}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("theme %s has no name", name)
		}
	}
	dark, _ := l.Load("dark")
	if dark.Style().Backdrop != (color.RGBA{0x11, 0x18, 0x27, 0xff}) {
		t.Errorf("unexpected dark backdrop %v", dark.Style().Backdrop)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	cfgDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cfgDir, "mine.theme"), []byte("Name: Mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: cfgDir, SystemDir: t.TempDir()}
	th, err := l.Load("mine")
	if err != nil || th.Name != "Mine" {
		t.Fatalf("expected config dir theme, got %v %v", th, err)
	}
	if _, err := l.Load("absent"); err == nil {
		t.Fatal("expected missing theme error")
	}
	def, err := l.Load("")
	if err != nil || def.Name != "Default" {
		t.Fatalf("empty name should give the default, got %v %v", def, err)
	}
}

func TestFieldsListsColours(t *testing.T) {
	fields := Default().Fields()
	if len(fields) != 11 || fields[0].Name != "Background" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}
