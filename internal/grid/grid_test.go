package grid

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellAtInsideGrid(t *testing.T) {
	t.Parallel()
	geo := DefaultGeometry()
	b := geo.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 7 {
		for x := b.Min.X; x < b.Max.X; x += 7 {
			col, row, ok := geo.CellAt(float64(x), float64(y))
			require.True(t, ok, "pointer (%d,%d) should hit a cell", x, y)
			assert.True(t, InBounds(col, row))
			assert.Equal(t, (x-30)/15, col)
			assert.Equal(t, (y-30)/15, row)
		}
	}
}

func TestCellAtOutsideGrid(t *testing.T) {
	t.Parallel()
	geo := DefaultGeometry()
	for _, p := range [][2]float64{
		{0, 0},
		{20, 100},  // one cell left of the origin
		{100, 16},  // one cell above the origin
		{29.5, 40}, // fraction left of the origin
		{450, 100}, // first column past the grid
		{100, 450},
		{-1000, -1000},
		{5000, 5000},
	} {
		_, _, ok := geo.CellAt(p[0], p[1])
		assert.False(t, ok, "pointer %v should not hit a cell", p)
	}
}

func TestCellAtEdges(t *testing.T) {
	t.Parallel()
	geo := DefaultGeometry()

	col, row, ok := geo.CellAt(30, 30)
	require.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	col, row, ok = geo.CellAt(449.9, 449.9)
	require.True(t, ok)
	assert.Equal(t, Width-1, col)
	assert.Equal(t, Height-1, row)
}

func TestCellAtZeroCellSize(t *testing.T) {
	t.Parallel()
	_, _, ok := Geometry{}.CellAt(10, 10)
	assert.False(t, ok)
}

func TestApplyStrokeFootprint(t *testing.T) {
	t.Parallel()
	g := New()
	g.ApplyStroke(5, 7)

	assert.Equal(t, uint8(StrokeStep), g.At(5, 7))
	assert.Equal(t, uint8(StrokeStep), g.At(6, 8))
	assert.Equal(t, uint8(StrokeStep), g.At(5, 8))

	painted := 0
	snap := g.Snapshot()
	for row := range snap {
		for _, v := range snap[row] {
			if v != 0 {
				painted++
			}
		}
	}
	assert.Equal(t, 3, painted, "the brush touches exactly three cells")
	assert.Zero(t, g.At(6, 7), "footprint is not symmetric")
	assert.Zero(t, g.At(4, 8))
}

func TestApplyStrokeSaturates(t *testing.T) {
	t.Parallel()
	g := New()
	for i := 0; i < 50; i++ {
		g.ApplyStroke(10, 10)
		for row := 0; row < Height; row++ {
			for col := 0; col < Width; col++ {
				v := int(g.At(col, row))
				require.GreaterOrEqual(t, v, 0)
				require.LessOrEqual(t, v, 255)
			}
		}
	}
	assert.Equal(t, uint8(255), g.At(10, 10))
	assert.Equal(t, uint8(255), g.At(10, 11))
	assert.Equal(t, uint8(255), g.At(11, 11))

	g = New()
	g.ApplyStroke(3, 3)
	g.ApplyStroke(3, 3)
	g.ApplyStroke(3, 3)
	assert.Equal(t, uint8(240), g.At(3, 3))
	g.ApplyStroke(3, 3)
	assert.Equal(t, uint8(255), g.At(3, 3))
}

func TestApplyStrokeAtEdgesStaysInside(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		col, row int
		want     [][2]int
	}{
		{"last column", Width - 1, 4, [][2]int{{Width - 1, 4}, {Width - 1, 5}}},
		{"last row", 4, Height - 1, [][2]int{{4, Height - 1}}},
		{"corner", Width - 1, Height - 1, [][2]int{{Width - 1, Height - 1}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			g.ApplyStroke(tc.col, tc.row)
			painted := 0
			for row := 0; row < Height; row++ {
				for col := 0; col < Width; col++ {
					if g.At(col, row) != 0 {
						painted++
					}
				}
			}
			assert.Equal(t, len(tc.want), painted)
			for _, c := range tc.want {
				assert.Equal(t, uint8(StrokeStep), g.At(c[0], c[1]), "cell %v", c)
			}
		})
	}
}

func TestApplyStrokeOutOfBoundsIsNoop(t *testing.T) {
	t.Parallel()
	g := New()
	g.ApplyStroke(-5, -5)
	g.ApplyStroke(Width+3, 2)
	g.ApplyStroke(2, Height+3)
	assert.True(t, g.Empty())

	// Above the grid: only the cell below lands inside.
	g.ApplyStroke(0, -1)
	assert.Equal(t, uint8(StrokeStep), g.At(0, 0))
	assert.Equal(t, uint8(StrokeStep), g.At(1, 0))
}

func TestClear(t *testing.T) {
	t.Parallel()
	g := New()
	for i := 0; i < Width; i++ {
		g.ApplyStroke(i, i)
	}
	require.False(t, g.Empty())
	g.Clear()
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			require.Zero(t, g.At(col, row))
		}
	}
	assert.True(t, g.Empty())
}

func TestAtOutOfRange(t *testing.T) {
	t.Parallel()
	g := New()
	g.Set(-1, 0, 9)
	assert.Zero(t, g.At(-1, 0))
	assert.Zero(t, g.At(Width, 0))
}

func TestImageRoundTrip(t *testing.T) {
	t.Parallel()
	g := New()
	g.ApplyStroke(3, 4)
	g.ApplyStroke(3, 4)
	g.ApplyStroke(20, 9)
	img := g.Image()
	require.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
	assert.Equal(t, uint8(160), img.GrayAt(3, 4).Y)

	back := FromImage(img, false)
	assert.Equal(t, g.Snapshot(), back.Snapshot())
}

func TestFromImageInvertAndScale(t *testing.T) {
	t.Parallel()
	src := image.NewGray(image.Rect(0, 0, 280, 280))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	g := FromImage(src, true)
	assert.True(t, g.Empty(), "a white page inverts to an empty grid")

	g = FromImage(src, false)
	assert.Equal(t, uint8(255), g.At(14, 14))
}

func TestCellRect(t *testing.T) {
	t.Parallel()
	geo := DefaultGeometry()
	assert.Equal(t, image.Rect(30, 30, 45, 45), geo.CellRect(0, 0))
	assert.Equal(t, image.Rect(30, 30, 450, 450), geo.Bounds())
}

func TestColorCarriesIntensity(t *testing.T) {
	t.Parallel()
	c := Color(color.RGBA{255, 255, 255, 255}, 80)
	assert.Equal(t, uint8(80), c.A)
	assert.Equal(t, uint8(255), c.R)
}
