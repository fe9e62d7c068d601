package theme

import (
	"image/color"
)

// Theme defines the colours of the drawing window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background
	Foreground color.RGBA // Notes and labels

	// Grid
	GridLine color.RGBA // Alpha controls how strongly lines show
	Cell     color.RGBA // Full-intensity cell colour; cell alpha comes from the grid

	// Prediction panel
	BarTrack    color.RGBA
	BarFill     color.RGBA
	BarBorder   color.RGBA
	Summary     color.RGBA
	Probability color.RGBA

	// Transient messages
	MessageBackground color.RGBA
	MessageText       color.RGBA
	MessageBorder     color.RGBA
}

// Default returns the built-in dark theme: white strokes on black, as a
// digit in a scanned dataset looks.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{0, 0, 0, 255},
		Foreground:        color.RGBA{255, 255, 255, 255},
		GridLine:          color.RGBA{255, 255, 255, 125},
		Cell:              color.RGBA{255, 255, 255, 255},
		BarTrack:          color.RGBA{60, 60, 60, 255},
		BarFill:           color.RGBA{80, 200, 120, 255},
		BarBorder:         color.RGBA{160, 160, 160, 255},
		Summary:           color.RGBA{255, 220, 90, 255},
		Probability:       color.RGBA{200, 200, 200, 255},
		MessageBackground: color.RGBA{255, 255, 255, 230},
		MessageText:       color.RGBA{0, 0, 0, 255},
		MessageBorder:     color.RGBA{0, 0, 0, 255},
	}
}
