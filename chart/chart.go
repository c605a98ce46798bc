package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 600

	dateLayout = "2006-01-02"
)

var ErrNoData = fmt.Errorf("no data to plot")

var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
}

// Line is one plotted series. Lines on the secondary axis are scaled on the
// right hand y axis.
type Line struct {
	Name      string
	Dates     []time.Time
	Values    []float64
	Secondary bool
}

// Spec describes a line chart.
type Spec struct {
	Title          string
	XName          string
	YName          string
	YSecondaryName string
	Width          int
	Height         int
	Lines          []Line
}

// Render writes spec as svg. Lines with fewer than two points are skipped and
// ErrNoData is returned when nothing is left to plot.
func Render(w io.Writer, spec Spec) error {
	series := make([]gochart.Series, 0, len(spec.Lines))
	primary, secondary := newBounds(), newBounds()
	for i, l := range spec.Lines {
		if len(l.Dates) < 2 || len(l.Dates) != len(l.Values) {
			continue
		}

		axis := gochart.YAxisPrimary
		b := primary
		if l.Secondary {
			axis = gochart.YAxisSecondary
			b = secondary
		}
		b.add(l.Values)

		series = append(series, gochart.TimeSeries{
			Name:    l.Name,
			XValues: l.Dates,
			YValues: l.Values,
			YAxis:   axis,
			Style: gochart.Style{
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 2,
			},
		})
	}

	if len(series) == 0 {
		return ErrNoData
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      orDefault(spec.Width, DefaultWidth),
		Height:     orDefault(spec.Height, DefaultHeight),
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:           spec.XName,
			ValueFormatter: dateFormatter,
		},
		YAxis: gochart.YAxis{
			Name:           spec.YName,
			Range:          primary.rangeOf(),
			ValueFormatter: countFormatter,
		},
		Series: series,
	}
	if !secondary.empty() {
		ch.YAxisSecondary = gochart.YAxis{
			Name:           spec.YSecondaryName,
			Range:          secondary.rangeOf(),
			ValueFormatter: countFormatter,
		}
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.SVG, w)
}

// Placeholder writes an empty svg of the given size holding a message.
func Placeholder(w io.Writer, width, height int, message string) error {
	width = orDefault(width, DefaultWidth)
	height = orDefault(height, DefaultHeight)
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" fill="#888">%s</text></svg>`,
		width, height, width/2, height/2, html.EscapeString(message))
	return err
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func dateFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case float64:
		return gochart.TimeFromFloat64(t).UTC().Format(dateLayout)
	}
	return ""
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

type bounds struct {
	min, max float64
	seen     bool
}

func newBounds() *bounds {
	return &bounds{min: math.Inf(1), max: math.Inf(-1)}
}

func (b *bounds) add(values []float64) {
	for _, v := range values {
		b.min = math.Min(b.min, v)
		b.max = math.Max(b.max, v)
		b.seen = true
	}
}

func (b *bounds) empty() bool {
	return !b.seen
}

// rangeOf starts the axis at zero unless values are negative, and keeps a
// non-zero extent for constant series.
func (b *bounds) rangeOf() *gochart.ContinuousRange {
	if b.empty() {
		return nil
	}

	min := math.Min(0, b.min)
	max := b.max
	if max <= min {
		max = min + 1
	}
	return &gochart.ContinuousRange{Min: min, Max: max}
}
