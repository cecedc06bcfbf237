package icon

import (
	"errors"
	"strings"
	"testing"
)

const star = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="currentColor" d="M12 2l3 7h7l-6 4 2 7-6-4-6 4 2-7-6-4h7z"/></svg>`

func TestTint(t *testing.T) {
	got := Tint(star, "#ff0000")
	if strings.Contains(got, "currentColor") || !strings.Contains(got, `fill="#ff0000"`) {
		t.Fatalf("tint failed: %s", got)
	}
	if Tint(star, "") != star {
		t.Fatal("empty colour should leave markup untouched")
	}
	if got := Tint(`<svg><rect stroke="CurrentColor"/></svg>`, "blue"); !strings.Contains(got, `stroke="blue"`) {
		t.Fatalf("keyword match should ignore case: %s", got)
	}
}

func TestSanitizeStripsActiveContent(t *testing.T) {
	in := `<svg viewBox="0 0 10 10" onload="alert(1)"><script>alert(2)</script>` +
		`<foreignObject><div>hi</div></foreignObject>` +
		`<a href="javascript:alert(3)"><rect width="10" height="10" onclick="x()"/></a></svg>`
	got, err := Sanitize(in)
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"onload", "script", "alert", "foreignObject", "onclick", "javascript"} {
		if strings.Contains(got, bad) {
			t.Fatalf("sanitized output still contains %q: %s", bad, got)
		}
	}
	if !strings.Contains(got, `<rect width="10" height="10">`) {
		t.Fatalf("safe content lost: %s", got)
	}
}

func TestSanitizeRejectsNonSVG(t *testing.T) {
	if _, err := Sanitize(`<html><body/></html>`); !errors.Is(err, ErrUnsafeMarkup) {
		t.Fatalf("expected ErrUnsafeMarkup, got %v", err)
	}
	if _, err := Sanitize(`just text`); !errors.Is(err, ErrUnsafeMarkup) {
		t.Fatalf("expected ErrUnsafeMarkup, got %v", err)
	}
}

func TestSanitizeKeepsStar(t *testing.T) {
	got, err := Sanitize(star)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `d="M12 2l3 7h7l-6 4 2 7-6-4-6 4 2-7-6-4h7z"`) {
		t.Fatalf("path lost: %s", got)
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(Tint(star, "#000000"), 48, 48, 1)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 48 || img.Bounds().Dy() != 48 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	// The centre of the star is filled.
	if _, _, _, a := img.At(24, 24).RGBA(); a == 0 {
		t.Fatal("expected opaque pixel at the icon centre")
	}
	if _, err := Rasterize(star, 0, 10, 1); err == nil {
		t.Fatal("expected error for empty target")
	}
}
