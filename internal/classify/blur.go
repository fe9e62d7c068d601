package classify

import "image"

// blurGray applies a separable box blur of the given radius to src and
// returns a new image. Edges are handled by shrinking the window rather than
// padding, so a uniform image stays uniform.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := span(x, radius, w)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := span(y, radius, h)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}

func span(i, radius, n int) (int, int) {
	lo := i - radius
	if lo < 0 {
		lo = 0
	}
	hi := i + radius
	if hi >= n {
		hi = n - 1
	}
	return lo, hi
}
