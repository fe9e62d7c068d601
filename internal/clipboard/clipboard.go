// Package clipboard publishes the drawing and its prediction to the system
// clipboard. Only writing is supported.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// encodePNG returns img as PNG bytes, the format every backend publishes.
func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to copy")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeBMP returns img as an uncompressed BMP for paste targets without PNG
// support.
func encodeBMP(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to copy")
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
