// Package render draws a drawing session into an RGBA buffer: the grid,
// its painted cells, the prediction panel, footer notes and any transient
// message.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nickkipshidze/digitpad/internal/grid"
	"github.com/nickkipshidze/digitpad/internal/overlay"
	"github.com/nickkipshidze/digitpad/internal/theme"
)

// Scene is an immutable snapshot of everything one frame shows.
type Scene struct {
	Theme    *theme.Theme
	Geometry grid.Geometry
	Cells    [grid.Height][grid.Width]uint8
	Overlay  overlay.Layout
	Notes    []overlay.Text
	// Message is shown centred over everything else when non-empty.
	Message string
}

// Frame paints sc into dst in back-to-front order.
func Frame(dst *image.RGBA, sc Scene) {
	loadFaces()
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}

	draw.Draw(dst, dst.Bounds(), image.NewUniform(nrgba(th.Background)), image.Point{}, draw.Src)
	if sc.Geometry.CellSize > 0 {
		drawGridLines(dst, sc.Geometry, nrgba(th.GridLine))
		drawCells(dst, sc.Geometry, &sc.Cells, th.Cell)
	}
	drawOverlay(dst, sc.Overlay, th)
	for _, n := range sc.Notes {
		drawText(dst, textFace, n.Pos.X, n.Pos.Y, n.Content, nrgba(th.Foreground))
	}
	if sc.Message != "" {
		drawMessage(dst, sc.Message, th)
	}
}

// drawGridLines draws Width+1 vertical and Height+1 horizontal one pixel
// lines so every cell is boxed.
func drawGridLines(dst *image.RGBA, g grid.Geometry, col color.Color) {
	src := image.NewUniform(col)
	b := g.Bounds()
	for i := 0; i <= grid.Width; i++ {
		x := b.Min.X + i*g.CellSize
		draw.Draw(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y+1), src, image.Point{}, draw.Over)
	}
	for i := 0; i <= grid.Height; i++ {
		y := b.Min.Y + i*g.CellSize
		draw.Draw(dst, image.Rect(b.Min.X, y, b.Max.X+1, y+1), src, image.Point{}, draw.Over)
	}
}

func drawCells(dst *image.RGBA, g grid.Geometry, cells *[grid.Height][grid.Width]uint8, base color.RGBA) {
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			v := cells[row][col]
			if v == 0 {
				continue
			}
			draw.Draw(dst, g.CellRect(col, row), image.NewUniform(grid.Color(base, v)), image.Point{}, draw.Over)
		}
	}
}

func drawOverlay(dst *image.RGBA, l overlay.Layout, th *theme.Theme) {
	for _, r := range l.Records() {
		switch r.Kind {
		case overlay.KindBar:
			drawBar(dst, r.Bar, th)
		case overlay.KindValue:
			drawText(dst, textFace, r.Text.Pos.X, r.Text.Pos.Y, r.Text.Content, nrgba(th.Probability))
		default:
			if r.Emphasis {
				drawText(dst, summaryFace, r.Text.Pos.X, r.Text.Pos.Y, r.Text.Content, nrgba(th.Summary))
				continue
			}
			drawText(dst, textFace, r.Text.Pos.X, r.Text.Pos.Y, r.Text.Content, nrgba(th.Foreground))
		}
	}
}

func drawBar(dst *image.RGBA, b overlay.Bar, th *theme.Theme) {
	draw.Draw(dst, b.Rect, image.NewUniform(nrgba(th.BarTrack)), image.Point{}, draw.Over)
	if w := b.FillWidth(); w > 0 {
		fill := image.Rect(b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Min.X+w, b.Rect.Max.Y)
		draw.Draw(dst, fill, image.NewUniform(nrgba(th.BarFill)), image.Point{}, draw.Over)
	}
	drawRect(dst, b.Rect, nrgba(th.BarBorder), 1)
}

func drawMessage(dst *image.RGBA, msg string, th *theme.Theme) {
	bounds := dst.Bounds()
	wmsg, hmsg := measure(messageFace, msg)
	px := bounds.Min.X + (bounds.Dx()-wmsg)/2
	py := bounds.Min.Y + (bounds.Dy()-hmsg)/2
	rect := image.Rect(px-8, py-8, px+wmsg+8, py+hmsg+8)
	draw.Draw(dst, rect, image.NewUniform(nrgba(th.MessageBackground)), image.Point{}, draw.Over)
	drawRect(dst, rect, nrgba(th.MessageBorder), 2)
	drawText(dst, messageFace, px, py, msg, nrgba(th.MessageText))
}

// drawRect outlines rect with a border of the given thickness drawn inside it.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if thick <= 0 || rect.Empty() {
		return
	}
	src := image.NewUniform(col)
	sides := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick),
		image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+thick, rect.Min.X+thick, rect.Max.Y-thick),
		image.Rect(rect.Max.X-thick, rect.Min.Y+thick, rect.Max.X, rect.Max.Y-thick),
	}
	for _, s := range sides {
		draw.Draw(dst, s.Intersect(rect), src, image.Point{}, draw.Src)
	}
}

// nrgba reads a theme colour as straight alpha. Theme files write colours
// like #FFFFFF7D meaning "white at half strength", which color.RGBA alone
// would treat as premultiplied.
func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
