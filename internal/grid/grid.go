// Package grid holds the drawing surface: a fixed 28x28 intensity grid and
// the brush that paints on it.
package grid

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	// Width and Height are the grid dimensions in cells.
	Width  = 28
	Height = 28

	// DefaultCellSize is the on-screen size of one cell in pixels.
	DefaultCellSize = 15

	// StrokeStep is the intensity added to each cell a brush stroke touches.
	StrokeStep = 80
)

// DefaultOrigin is the window position of the grid's top-left corner.
var DefaultOrigin = image.Pt(30, 30)

// Geometry places the grid in window coordinates.
type Geometry struct {
	Origin   image.Point
	CellSize int
}

// DefaultGeometry returns the layout used by the drawing window.
func DefaultGeometry() Geometry {
	return Geometry{Origin: DefaultOrigin, CellSize: DefaultCellSize}
}

// CellAt translates a pointer position into a cell coordinate. ok is false
// when the position falls outside the grid, which is expected while the
// pointer wanders around the window.
func (g Geometry) CellAt(x, y float64) (col, row int, ok bool) {
	if g.CellSize <= 0 {
		return 0, 0, false
	}
	size := float64(g.CellSize)
	// Floor, not truncation: a pointer just left of the origin must land on
	// column -1 rather than 0.
	col = int(math.Floor((x - float64(g.Origin.X)) / size))
	row = int(math.Floor((y - float64(g.Origin.Y)) / size))
	if !InBounds(col, row) {
		return 0, 0, false
	}
	return col, row, true
}

// Bounds returns the pixel rectangle covered by the grid.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width*g.CellSize, Height*g.CellSize).Add(g.Origin)
}

// CellRect returns the pixel rectangle of a single cell.
func (g Geometry) CellRect(col, row int) image.Rectangle {
	min := g.Origin.Add(image.Pt(col*g.CellSize, row*g.CellSize))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(g.CellSize, g.CellSize))}
}

// InBounds reports whether (col, row) addresses a cell of the grid.
func InBounds(col, row int) bool {
	return col >= 0 && col < Width && row >= 0 && row < Height
}

// Grid is a row-major 28x28 map of cell intensities. Using uint8 cells keeps
// every value inside [0, 255] by construction.
type Grid struct {
	cells [Height][Width]uint8
}

// New returns a cleared grid.
func New() *Grid { return &Grid{} }

// At returns the intensity of a cell, or 0 for coordinates outside the grid.
func (g *Grid) At(col, row int) uint8 {
	if !InBounds(col, row) {
		return 0
	}
	return g.cells[row][col]
}

// Set stores an intensity. Out-of-range coordinates are ignored.
func (g *Grid) Set(col, row int, v uint8) {
	if !InBounds(col, row) {
		return
	}
	g.cells[row][col] = v
}

// ApplyStroke paints the brush footprint anchored at (col, row): the target
// cell, the cell diagonally down-right and the cell directly below. The
// footprint is intentionally asymmetric. Each cell is bounds-checked on its
// own so strokes on the last row or column never spill outside the grid.
func (g *Grid) ApplyStroke(col, row int) {
	g.add(col, row, StrokeStep)
	g.add(col+1, row+1, StrokeStep)
	g.add(col, row+1, StrokeStep)
}

func (g *Grid) add(col, row, step int) {
	if !InBounds(col, row) {
		return
	}
	v := int(g.cells[row][col]) + step
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	g.cells[row][col] = uint8(v)
}

// Clear resets every cell to zero.
func (g *Grid) Clear() {
	g.cells = [Height][Width]uint8{}
}

// Empty reports whether no cell has been painted.
func (g *Grid) Empty() bool {
	for row := range g.cells {
		for _, v := range g.cells[row] {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Snapshot returns a copy of the cells indexed [row][col].
func (g *Grid) Snapshot() [Height][Width]uint8 {
	return g.cells
}

// Image returns the grid as a 28x28 grayscale image, one pixel per cell.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for row := 0; row < Height; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+Width], g.cells[row][:])
	}
	return img
}

// FromImage rasterises img onto a new grid. The image is scaled to 28x28 and
// each cell takes the pixel's luminance. With invert set, dark strokes on a
// light background become bright cells.
func FromImage(img image.Image, invert bool) *Grid {
	small := image.NewGray(image.Rect(0, 0, Width, Height))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	g := New()
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			v := small.GrayAt(col, row).Y
			if invert {
				v = 255 - v
			}
			g.Set(col, row, v)
		}
	}
	return g
}

// Color returns the paint colour of an intensity given the full-strength
// cell colour: the alpha channel carries the intensity.
func Color(base color.RGBA, v uint8) color.NRGBA {
	return color.NRGBA{R: base.R, G: base.G, B: base.B, A: v}
}
