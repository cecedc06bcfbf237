package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/designstudio/internal/clipboard"
	"github.com/example/designstudio/internal/render"
)

// ErrClosed is returned by preview requests after Close.
var ErrClosed = errors.New("session closed")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteImage

// Preview is a 1:1 PNG snapshot of the canvas.
type Preview struct {
	Image   *image.RGBA
	DataURI string
	Created time.Time
}

// Scene snapshots the canvas for rendering. The objects are deep copies so
// the snapshot may be rendered while editing continues.
func (s *Session) Scene() render.Scene {
	return render.Scene{Canvas: s.canvas, Background: s.bg, Objects: s.store.Painted()}
}

// RenderPreview renders the current canvas and remembers the result. On
// failure the error is logged and the previous preview is kept.
func (s *Session) RenderPreview(ctx context.Context) (Preview, error) {
	return s.renderScene(ctx, s.Scene())
}

// RequestPreview renders a snapshot of the current canvas in the background
// and passes the outcome to done, which may be nil. Editing may continue
// while it runs.
func (s *Session) RequestPreview(ctx context.Context, done func(Preview, error)) {
	sc := s.Scene()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if done != nil {
			done(Preview{}, ErrClosed)
		}
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.wg.Done()
		p, err := s.renderScene(ctx, sc)
		if done != nil {
			done(p, err)
		}
	}()
}

// LastPreview returns the most recent successful preview.
func (s *Session) LastPreview() (Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preview == nil {
		return Preview{}, false
	}
	return *s.preview, true
}

func (s *Session) renderScene(ctx context.Context, sc render.Scene) (Preview, error) {
	img, err := s.renderer.Render(ctx, sc)
	if err == nil {
		var uri string
		uri, err = render.PNGDataURI(img)
		if err == nil {
			p := Preview{Image: img, DataURI: uri, Created: time.Now()}
			s.mu.Lock()
			s.preview = &p
			s.mu.Unlock()
			return p, nil
		}
	}
	s.logger.Printf("session %s: preview failed: %v", s.shortID(), err)
	return Preview{}, fmt.Errorf("preview: %w", err)
}

// ExportName is a file name for this session's exports.
func (s *Session) ExportName() string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '-'
	}, s.name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "design"
	}
	return fmt.Sprintf("%s-%s.png", slug, s.shortID())
}

// SavePreview renders the canvas and writes it as PNG. A directory path
// receives ExportName. The written path is returned.
func (s *Session) SavePreview(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = "."
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, s.ExportName())
	}
	p, err := s.RenderPreview(ctx)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save preview: %w", err)
	}
	if err := render.EncodePNG(f, p.Image); err != nil {
		f.Close()
		return "", fmt.Errorf("save preview: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save preview: %w", err)
	}
	return path, nil
}

// CopyPreview renders the canvas and places it on the clipboard.
func (s *Session) CopyPreview(ctx context.Context) error {
	p, err := s.RenderPreview(ctx)
	if err != nil {
		return err
	}
	if err := writeClipboard(p.Image); err != nil {
		return fmt.Errorf("copy preview: %w", err)
	}
	return nil
}

// Close waits for background previews and refuses new ones.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}
