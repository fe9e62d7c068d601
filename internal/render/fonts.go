package render

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Point sizes of the faces used by Frame.
const (
	TextSize    = 16
	SummarySize = 20
	MessageSize = 32
)

var (
	facesOnce   sync.Once
	textFace    font.Face
	summaryFace font.Face
	messageFace font.Face
)

// loadFaces parses gomono once. If that fails every face falls back to
// basicfont so drawing still works.
func loadFaces() {
	facesOnce.Do(func() {
		textFace = basicfont.Face7x13
		summaryFace = basicfont.Face7x13
		messageFace = basicfont.Face7x13

		f, err := opentype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		mk := func(size float64) font.Face {
			face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
			if err != nil {
				log.Printf("font face %.0fpt: %v", size, err)
				return basicfont.Face7x13
			}
			return face
		}
		textFace = mk(TextSize)
		summaryFace = mk(SummarySize)
		messageFace = mk(MessageSize)
	})
}

func measure(face font.Face, s string) (int, int) {
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(s).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil()
}

// drawText renders s with its top-left corner at (x, y).
func drawText(dst *image.RGBA, face font.Face, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
