package overlay

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTwoEntries(t *testing.T) {
	t.Parallel()
	l := Build([]Entry{{"7", 0.92}, {"1", 0.05}}, image.Pt(550, 110))
	require.Len(t, l.Rows, 2)

	r0 := l.Rows[0]
	assert.Equal(t, 0, r0.Rank)
	assert.Equal(t, image.Pt(550, 110), r0.Label.Pos)
	assert.Equal(t, "7", r0.Label.Content)
	assert.Equal(t, image.Pt(650, 110), r0.Prob.Pos)
	assert.Equal(t, "0.9200", r0.Prob.Content)
	assert.Equal(t, image.Rect(750, 110, 950, 125), r0.Bar.Rect)
	assert.InDelta(t, 0.92, r0.Bar.Fill, 1e-12)

	r1 := l.Rows[1]
	assert.Equal(t, 145, r1.Label.Pos.Y)
	assert.Equal(t, 145, r1.Prob.Pos.Y)
	assert.Equal(t, 145, r1.Bar.Rect.Min.Y)
	assert.Equal(t, "0.0500", r1.Prob.Content)

	require.NotNil(t, l.Summary)
	assert.Equal(t, "Final prediction: 7", l.Summary.Content)
	assert.Equal(t, image.Pt(550, 110+SummaryDrop), l.Summary.Pos)
	require.NotNil(t, l.Certainty)
	assert.Equal(t, "Certainty: 92.00%", l.Certainty.Content)
	assert.Equal(t, 0, l.Best)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()
	l := Build(nil, DefaultOrigin)
	assert.True(t, l.Empty())
	assert.Nil(t, l.Summary)
	assert.Nil(t, l.Certainty)
	assert.Equal(t, -1, l.Best)
	assert.Empty(t, l.Records())
	assert.Empty(t, l.Lines())

	l = Build([]Entry{}, DefaultOrigin)
	assert.True(t, l.Empty())
	assert.Nil(t, l.Summary)
}

func TestBuildBestIsMaximumFirstOnTie(t *testing.T) {
	t.Parallel()
	l := Build([]Entry{{"a", 0.2}, {"b", 0.4}, {"c", 0.4}, {"d", 0.1}}, image.Point{})
	require.NotNil(t, l.Summary)
	assert.Equal(t, "Final prediction: b", l.Summary.Content)
	assert.Equal(t, 1, l.Best)

	l = Build([]Entry{{"low", 0.01}, {"high", 0.99}}, image.Point{})
	assert.Equal(t, "Final prediction: high", l.Summary.Content)
}

func TestBuildIsPure(t *testing.T) {
	t.Parallel()
	first := Build([]Entry{{"1", 0.5}, {"2", 0.3}, {"3", 0.2}}, DefaultOrigin)
	second := Build([]Entry{{"9", 1}}, DefaultOrigin)
	assert.Len(t, second.Rows, 1)
	assert.Len(t, first.Rows, 3, "a later build does not touch an earlier layout")
	assert.Equal(t, "Final prediction: 9", second.Summary.Content)
}

func TestRecordsOrder(t *testing.T) {
	t.Parallel()
	l := Build([]Entry{{"3", 0.6}, {"8", 0.4}}, image.Pt(10, 20))
	recs := l.Records()
	require.Len(t, recs, 8)
	kinds := []Kind{KindText, KindValue, KindBar, KindText, KindValue, KindBar, KindText, KindText}
	for i, k := range kinds {
		assert.Equal(t, k, recs[i].Kind, "record %d", i)
	}
	assert.Equal(t, "3", recs[0].Text.Content)
	assert.Equal(t, "0.6000", recs[1].Text.Content)
	assert.True(t, recs[6].Emphasis)
	assert.Equal(t, "Final prediction: 3", recs[6].Text.Content)
	assert.False(t, recs[7].Emphasis)
}

func TestBarFillWidthClamps(t *testing.T) {
	t.Parallel()
	rect := image.Rect(0, 0, BarWidth, BarHeight)
	assert.Equal(t, 184, Bar{Rect: rect, Fill: 0.92}.FillWidth())
	assert.Equal(t, 0, Bar{Rect: rect, Fill: -0.5}.FillWidth())
	assert.Equal(t, BarWidth, Bar{Rect: rect, Fill: 92}.FillWidth())
	assert.Equal(t, 0, Bar{Rect: rect, Fill: math.NaN()}.FillWidth())
}

func TestFormatProbabilityRounds(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.1235", FormatProbability(0.123456))
	assert.Equal(t, "1.0000", FormatProbability(1))
	assert.Equal(t, "Certainty: 5.00%", FormatCertainty(0.05))
}

func TestLines(t *testing.T) {
	t.Parallel()
	lines := Build([]Entry{{"7 - seven", 0.5}}, DefaultOrigin).Lines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "7 - seven"))
	assert.Contains(t, lines[0], "0.5000")
	assert.Contains(t, lines[0], "[##########..........]")
	assert.Equal(t, "Final prediction: 7 - seven", lines[1])
}
