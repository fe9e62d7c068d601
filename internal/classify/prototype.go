package classify

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/nickkipshidze/digitpad/internal/grid"
)

const (
	// side is the edge of the normalised feature image.
	side = grid.Width
	// box is the edge of the square the ink is scaled into before centring.
	box = 20

	glyphCanvas = 64
	glyphSize   = 48
	blurRadius  = 1

	// DefaultTemperature sharpens cosine similarities into probabilities.
	DefaultTemperature = 0.05
)

// Prototype is a nearest-template classifier. Each class keeps one unit
// length template built from sample images; a grid is scored by cosine
// similarity against every template and the scores are turned into
// probabilities with a temperature softmax.
type Prototype struct {
	labels      []string
	templates   *mat.Dense
	temperature float64
}

// PrototypeOption configures a Prototype.
type PrototypeOption func(*Prototype)

// WithTemperature sets the softmax temperature. Lower is more decisive.
func WithTemperature(t float64) PrototypeOption {
	return func(p *Prototype) { p.temperature = t }
}

// NewPrototype builds templates for the ten digits from the Go fonts.
func NewPrototype(opts ...PrototypeOption) (*Prototype, error) {
	samples := make([][]*image.Gray, len(Labels))
	for _, ttf := range [][]byte{goregular.TTF, gomono.TTF, gobold.TTF} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse template font: %w", err)
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: glyphSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("template face: %w", err)
		}
		for d := range Labels {
			samples[d] = append(samples[d], renderGlyph(face, strconv.Itoa(d)))
		}
		face.Close()
	}
	return FromSamples(Labels[:], samples, opts...)
}

// FromSamples builds a Prototype whose class i is labelled labels[i] and
// whose template is the mean of the normalised samples[i].
func FromSamples(labels []string, samples [][]*image.Gray, opts ...PrototypeOption) (*Prototype, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no classes")
	}
	if len(labels) != len(samples) {
		return nil, fmt.Errorf("%d labels but %d sample sets", len(labels), len(samples))
	}

	m := mat.NewDense(len(labels), side*side, nil)
	for i, imgs := range samples {
		row := make([]float64, side*side)
		used := 0
		for _, img := range imgs {
			v := features(img)
			if v == nil {
				continue
			}
			floats.Add(row, v)
			used++
		}
		if used == 0 || !unit(row) {
			return nil, fmt.Errorf("class %q has no usable samples", labels[i])
		}
		m.SetRow(i, row)
	}

	p := &Prototype{
		labels:      append([]string(nil), labels...),
		templates:   m,
		temperature: DefaultTemperature,
	}
	for _, o := range opts {
		o(p)
	}
	if !(p.temperature > 0) {
		return nil, fmt.Errorf("temperature must be positive, got %v", p.temperature)
	}
	return p, nil
}

// Classify implements Classifier. A blank grid gets a uniform distribution.
func (p *Prototype) Classify(g *grid.Grid) ([]Prediction, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	k := len(p.labels)
	probs := make([]float64, k)

	var v []float64
	if !g.Empty() {
		v = features(g.Image())
	}
	if v == nil {
		for i := range probs {
			probs[i] = 1 / float64(k)
		}
	} else {
		var scores mat.VecDense
		scores.MulVec(p.templates, mat.NewVecDense(len(v), v))
		for i := range probs {
			probs[i] = scores.AtVec(i) / p.temperature
		}
		lse := floats.LogSumExp(probs)
		for i, l := range probs {
			probs[i] = math.Exp(l - lse)
		}
	}

	preds := make([]Prediction, k)
	for i := range preds {
		preds[i] = Prediction{Class: i, Label: p.labels[i], Probability: probs[i]}
	}
	return Ranked(preds, 0), nil
}

// features normalises img and flattens it into a unit vector, or nil when
// img holds no ink.
func features(img *image.Gray) []float64 {
	norm := normalize(img)
	if norm == nil {
		return nil
	}
	norm = blurGray(norm, blurRadius)
	v := make([]float64, side*side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			v[y*side+x] = float64(norm.Pix[y*norm.Stride+x]) / 255
		}
	}
	if !unit(v) {
		return nil
	}
	return v
}

func unit(v []float64) bool {
	n := floats.Norm(v, 2)
	if n == 0 {
		return false
	}
	floats.Scale(1/n, v)
	return true
}

// normalize crops img to its ink, scales that to fit a box x box square
// keeping the aspect ratio, and places it on a side x side canvas with its
// centre of mass in the middle.
func normalize(img *image.Gray) *image.Gray {
	if img == nil {
		return nil
	}
	bb := inkBounds(img)
	if bb.Empty() {
		return nil
	}
	scale := float64(box) / float64(max(bb.Dx(), bb.Dy()))
	sw := max(1, int(math.Round(float64(bb.Dx())*scale)))
	sh := max(1, int(math.Round(float64(bb.Dy())*scale)))
	scaled := image.NewGray(image.Rect(0, 0, sw, sh))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, bb, xdraw.Src, nil)

	cx, cy, ok := centroid(scaled)
	if !ok {
		return nil
	}
	off := image.Pt(
		int(math.Round(float64(side)/2-cx)),
		int(math.Round(float64(side)/2-cy)),
	)
	out := image.NewGray(image.Rect(0, 0, side, side))
	draw.Draw(out, scaled.Bounds().Add(off), scaled, image.Point{}, draw.Src)
	return out
}

func inkBounds(img *image.Gray) image.Rectangle {
	b := img.Bounds()
	var ink image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y == 0 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return ink
}

func centroid(img *image.Gray) (float64, float64, bool) {
	var sum, sx, sy float64
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(img.GrayAt(x, y).Y)
			sum += v
			sx += v * (float64(x) + 0.5)
			sy += v * (float64(y) + 0.5)
		}
	}
	if sum == 0 {
		return 0, 0, false
	}
	return sx / sum, sy / sum, true
}

// renderGlyph draws s in white on black, centred on a square canvas.
func renderGlyph(face font.Face, s string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, glyphCanvas, glyphCanvas))
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: (fixed.I(glyphCanvas) - d.MeasureString(s)) / 2,
		Y: (fixed.I(glyphCanvas) + m.Ascent - m.Descent) / 2,
	}
	d.DrawString(s)
	return img
}
