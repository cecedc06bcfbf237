package display

import (
	"errors"
	"image"
	"testing"
)

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3200, 800), Primary: true},
}

func withMonitors(t *testing.T, mons []Monitor, err error) {
	t.Helper()
	prev := listMonitors
	listMonitors = func() ([]Monitor, error) { return mons, err }
	t.Cleanup(func() { listMonitors = prev })
}

func TestFind(t *testing.T) {
	cases := []struct {
		selector string
		want     string
		wantErr  bool
	}{
		{"", "eDP-1", false},
		{"primary", "eDP-1", false},
		{"#0", "HDMI-1", false},
		{"1", "eDP-1", false},
		{"hdmi", "HDMI-1", false},
		{"5", "", true},
		{"dp-9", "", true},
	}
	for _, c := range cases {
		got, err := Find(layout, c.selector)
		if (err != nil) != c.wantErr {
			t.Fatalf("%q: unexpected error %v", c.selector, err)
		}
		if !c.wantErr && got.Name != c.want {
			t.Errorf("%q: got %s, want %s", c.selector, got.Name, c.want)
		}
	}
	if _, err := Find(nil, ""); err == nil {
		t.Fatal("expected error for empty layout")
	}
}

func TestWindowSize(t *testing.T) {
	withMonitors(t, layout, nil)
	fallback, least := image.Pt(1024, 768), image.Pt(1100, 600)
	if got := WindowSize("", fallback, least); got != image.Pt(1100, 640) {
		t.Errorf("primary: got %v", got)
	}
	if got := WindowSize("HDMI", fallback, least); got != image.Pt(1536, 864) {
		t.Errorf("hdmi: got %v", got)
	}
	if got := WindowSize("nothing", fallback, least); got != fallback {
		t.Errorf("unknown monitor should fall back, got %v", got)
	}
}

func TestWindowSizeWithoutDisplay(t *testing.T) {
	withMonitors(t, nil, errors.New("no X server"))
	if got := WindowSize("", image.Pt(1024, 768), image.Pt(1, 1)); got != image.Pt(1024, 768) {
		t.Errorf("expected fallback, got %v", got)
	}
	withMonitors(t, nil, nil)
	if _, err := Monitors(); !errors.Is(err, errNoMonitors) {
		t.Errorf("expected errNoMonitors, got %v", err)
	}
}
