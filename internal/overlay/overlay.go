// Package overlay lays out the prediction panel: one row per ranked
// classifier entry plus a summary naming the best guess. It produces
// declarative records and never touches pixels; internal/render draws them.
package overlay

import (
	"fmt"
	"image"
)

// Layout constants, in window units.
const (
	RowSpacing   = 35
	ProbOffset   = 100
	BarOffset    = 200
	BarWidth     = 200
	BarHeight    = 15
	SummaryDrop  = 380
	CertaintyGap = 30
)

// DefaultOrigin anchors the panel to the right of the grid.
var DefaultOrigin = image.Pt(550, 110)

// Entry is one ranked classifier result. Probability is expected in [0, 1].
type Entry struct {
	Label       string
	Probability float64
}

// Kind distinguishes the record types.
type Kind int

const (
	KindText Kind = iota
	// KindValue is a formatted probability.
	KindValue
	KindBar
)

// Text is a string anchored at Pos (top-left of the text box).
type Text struct {
	Pos     image.Point
	Content string
}

// Bar is a horizontal progress bar. Fill is the entry's probability as a
// fraction of the full width; renderers clamp it when drawing.
type Bar struct {
	Rect image.Rectangle
	Fill float64
}

// FillWidth returns the filled width in pixels with Fill clamped to [0, 1].
func (b Bar) FillWidth() int {
	f := b.Fill
	if f < 0 || f != f {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return int(f*float64(b.Rect.Dx()) + 0.5)
}

// Row holds the three records of one ranked entry.
type Row struct {
	Rank  int
	Label Text
	Prob  Text
	Bar   Bar
}

// Record is a single drawable item in paint order.
type Record struct {
	Kind Kind
	Text Text
	Bar  Bar
	// Emphasis marks the summary line.
	Emphasis bool
}

// Layout is the complete panel for one tick.
type Layout struct {
	Rows []Row
	// Summary and Certainty are nil when there were no entries.
	Summary   *Text
	Certainty *Text
	// Best is the index into Rows of the top entry, -1 when empty.
	Best int
}

// Build lays out entries anchored at origin. It is a pure function: the
// result shares nothing with previous layouts.
func Build(entries []Entry, origin image.Point) Layout {
	l := Layout{Best: -1}
	if len(entries) == 0 {
		return l
	}
	l.Rows = make([]Row, 0, len(entries))
	for i, e := range entries {
		anchor := origin.Add(image.Pt(0, i*RowSpacing))
		barMin := anchor.Add(image.Pt(BarOffset, 0))
		l.Rows = append(l.Rows, Row{
			Rank:  i,
			Label: Text{Pos: anchor, Content: e.Label},
			Prob:  Text{Pos: anchor.Add(image.Pt(ProbOffset, 0)), Content: FormatProbability(e.Probability)},
			Bar: Bar{
				Rect: image.Rectangle{Min: barMin, Max: barMin.Add(image.Pt(BarWidth, BarHeight))},
				Fill: e.Probability,
			},
		})
	}

	l.Best = best(entries)
	top := entries[l.Best]
	summaryPos := origin.Add(image.Pt(0, SummaryDrop))
	l.Summary = &Text{Pos: summaryPos, Content: "Final prediction: " + top.Label}
	l.Certainty = &Text{
		Pos:     summaryPos.Add(image.Pt(0, CertaintyGap)),
		Content: FormatCertainty(top.Probability),
	}
	return l
}

// best returns the index of the highest probability; ties keep the first.
func best(entries []Entry) int {
	idx := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Probability > entries[idx].Probability {
			idx = i
		}
	}
	return idx
}

// FormatProbability renders a probability rounded to four decimals.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.4f", p)
}

// FormatCertainty renders a [0, 1] probability as a percentage.
func FormatCertainty(p float64) string {
	return fmt.Sprintf("Certainty: %.2f%%", p*100)
}

// Empty reports whether the layout has nothing to draw.
func (l Layout) Empty() bool { return len(l.Rows) == 0 }

// Records flattens the layout into paint order: each row's label,
// probability and bar, then the summary lines.
func (l Layout) Records() []Record {
	out := make([]Record, 0, len(l.Rows)*3+2)
	for _, r := range l.Rows {
		out = append(out,
			Record{Kind: KindText, Text: r.Label},
			Record{Kind: KindValue, Text: r.Prob},
			Record{Kind: KindBar, Bar: r.Bar},
		)
	}
	if l.Summary != nil {
		out = append(out, Record{Kind: KindText, Text: *l.Summary, Emphasis: true})
	}
	if l.Certainty != nil {
		out = append(out, Record{Kind: KindText, Text: *l.Certainty})
	}
	return out
}

// Lines renders the layout as plain text rows for terminal output.
func (l Layout) Lines() []string {
	out := make([]string, 0, len(l.Rows)+2)
	for _, r := range l.Rows {
		out = append(out, fmt.Sprintf("%-10s %s %s", r.Label.Content, r.Prob.Content, textBar(r.Bar.Fill, 20)))
	}
	if l.Summary != nil {
		out = append(out, l.Summary.Content)
	}
	if l.Certainty != nil {
		out = append(out, l.Certainty.Content)
	}
	return out
}

func textBar(fill float64, width int) string {
	b := Bar{Rect: image.Rect(0, 0, width, 1), Fill: fill}
	n := b.FillWidth()
	buf := make([]byte, 0, width+2)
	buf = append(buf, '[')
	for i := 0; i < width; i++ {
		if i < n {
			buf = append(buf, '#')
		} else {
			buf = append(buf, '.')
		}
	}
	buf = append(buf, ']')
	return string(buf)
}
