// Package clipboard exchanges PNG images with the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

// ReadImage decodes the PNG image held by the clipboard.
func ReadImage() (image.Image, error) {
	data, err := ReadPNG()
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard image: %w", err)
	}
	return img, nil
}
