package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// EncodeDataURI returns data as a base64 data URI with a sniffed media type.
func EncodeDataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a data URI into its media type and payload.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI without payload")
	}
	mime = meta
	b64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		mime, b64 = m, true
	}
	if b64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URI: %w", err)
		}
		return mime, data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, []byte(s), nil
}

// LoadImage resolves an image source: a data URI, a file:// URL or a local
// path. PNG, JPEG, GIF, BMP and WebP are understood.
func LoadImage(src string) (image.Image, error) {
	var data []byte
	var err error
	switch {
	case strings.HasPrefix(src, "data:"):
		_, data, err = DecodeDataURI(src)
	case strings.HasPrefix(src, "file://"):
		data, err = os.ReadFile(strings.TrimPrefix(src, "file://"))
	default:
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
