// Package charts renders the dashboard charts as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	ErrNoData   = errors.New("chart has no data")
	ErrBadInput = errors.New("chart input is invalid")
)

var (
	colorPositive = drawing.ColorFromHex("28a745")
	colorNegative = drawing.ColorFromHex("dc3545")
	colorNeutral  = drawing.ColorFromHex("ffc107")
	colorBar      = drawing.ColorFromHex("007bff")
)

const (
	size       = 512
	maxRating  = 5
	barWidth   = 48
	barSpacing = 24
)

type Sentiment struct {
	Positive, Negative, Neutral int
}

func (s Sentiment) total() int { return s.Positive + s.Negative + s.Neutral }

// RenderSentiment draws the positive/negative/neutral pie.
func RenderSentiment(w io.Writer, s Sentiment) error {
	if s.Positive < 0 || s.Negative < 0 || s.Neutral < 0 {
		return fmt.Errorf("%w: negative count", ErrBadInput)
	}
	if s.total() == 0 {
		return ErrNoData
	}
	var values []chart.Value
	add := func(n int, label string, c drawing.Color) {
		if n == 0 {
			return
		}
		values = append(values, chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%s (%d)", label, n),
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}
	add(s.Positive, "Positive", colorPositive)
	add(s.Negative, "Negative", colorNegative)
	add(s.Neutral, "Neutral", colorNeutral)

	pie := chart.PieChart{
		Width:  size,
		Height: size,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// RenderTopProducts draws average ratings as bars on a 0..5 axis. Values
// above 5 are clamped.
func RenderTopProducts(w io.Writer, labels []string, ratings []float64) error {
	if len(labels) != len(ratings) {
		return fmt.Errorf("%w: %d labels for %d values", ErrBadInput, len(labels), len(ratings))
	}
	if len(labels) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, 0, len(labels))
	for i, l := range labels {
		v := ratings[i]
		if v < 0 {
			return fmt.Errorf("%w: negative rating for %q", ErrBadInput, l)
		}
		if v > maxRating {
			v = maxRating
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: l,
			Style: chart.Style{FillColor: colorBar, StrokeColor: colorBar},
		})
	}
	width := size * 2
	if need := len(bars)*(barWidth+barSpacing) + 2*size/5; need > width {
		width = need
	}
	bc := chart.BarChart{
		Title:      "Average rating",
		Width:      width,
		Height:     size,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxRating},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}
