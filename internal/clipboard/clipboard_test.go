package clipboard

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestEncodePNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 28, 28))
	src.Pix[29] = 200
	data, err := encodePNG(src)
	if err != nil {
		t.Fatalf("encodePNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if _, err := encodePNG(nil); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestEncodeBMP(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 28, 28))
	src.Pix[29] = 200
	data, err := encodeBMP(src)
	if err != nil {
		t.Fatalf("encodeBMP: %v", err)
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 200*0x101 {
		t.Errorf("pixel (1,1) red = %#x", r)
	}
	if _, err := encodeBMP(nil); err == nil {
		t.Error("expected error for nil image")
	}
}
