// Package chartrender draws the bar charts as PNG-backed images. The viewer
// shows them in canvases with a hover overlay; the headless CLI writes them
// straight to disk.
package chartrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zstumgoren/executions-viz/src/analysis"
)

// Options sizes and titles a chart.
type Options struct {
	Title  string
	Width  int // pixels; <= 0 uses 900
	Height int // pixels; <= 0 uses 320
	Hint   string
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 900
	}
	if h <= 0 {
		h = 320
	}
	return w, h
}

var barColor = drawing.Color{R: 65, G: 131, B: 196, A: 255}

// Horizontal gutters (pixels) around the bar band inside a rendered chart
// image: background padding plus axis label space. The hover overlay maps
// cursor positions back to bars with the same numbers.
const (
	LeftGutterPx  = 40
	RightGutterPx = 20
)

// Band returns the band scale positioning n bars inside an image of the
// given pixel width.
func Band(n, width int) BandScale {
	w := float64(width) - LeftGutterPx - RightGutterPx
	if w < 1 {
		w = float64(width)
	}
	return BandScale{N: n, Width: w}
}

// YearBarChart renders one bar per yearly aggregate, X labeled with the year,
// Y scaled [0, max count]. An empty aggregate set yields a blank chart image
// and no error.
func YearBarChart(agg []analysis.YearCount, opts Options) (image.Image, error) {
	bars := make([]chart.Value, 0, len(agg))
	maxCount := 0
	for _, yc := range agg {
		bars = append(bars, chart.Value{Label: strconv.Itoa(yc.Year), Value: float64(yc.Count)})
		if yc.Count > maxCount {
			maxCount = yc.Count
		}
	}
	return renderBars(bars, float64(maxCount), opts)
}

// LabelBarChart renders a categorical breakdown (method, state) as bars in
// the order given.
func LabelBarChart(items []analysis.LabelCount, opts Options) (image.Image, error) {
	bars := make([]chart.Value, 0, len(items))
	maxCount := 0
	for _, lc := range items {
		bars = append(bars, chart.Value{Label: lc.Label, Value: float64(lc.Count)})
		if lc.Count > maxCount {
			maxCount = lc.Count
		}
	}
	return renderBars(bars, float64(maxCount), opts)
}

func renderBars(bars []chart.Value, maxVal float64, opts Options) (image.Image, error) {
	w, h := opts.size()
	if len(bars) == 0 {
		return DrawHint(Blank(w, h), "no data"), nil
	}
	for i := range bars {
		bars[i].Style = chart.Style{FillColor: barColor, StrokeColor: barColor}
	}
	yRange, yTicks := buildZeroAnchoredRangeAndTicks(maxVal, 6, 0.04, true)

	// Bar width comes from the band slots across the drawable width; the
	// same slot math drives hover hit-testing in the viewer.
	band := Band(len(bars), w)
	barWidth := int(band.SlotWidth() * 0.8)
	if barWidth < 2 {
		barWidth = 2
	}
	spacing := int(band.SlotWidth() * 0.2)
	if spacing < 1 {
		spacing = 1
	}

	bc := chart.BarChart{
		Title:      opts.Title,
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 12, Bottom: 10}},
		XAxis:      chart.Style{TextRotationDegrees: rotationFor(len(bars))},
		YAxis: chart.YAxis{
			Range: yRange,
			Ticks: yTicks,
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode rendered chart: %w", err)
	}
	if opts.Hint != "" {
		img = DrawHint(img, opts.Hint)
	}
	return img, nil
}

// rotationFor tilts X labels once there are too many bars for horizontal
// text.
func rotationFor(n int) float64 {
	if n > 18 {
		return 45
	}
	return 0
}

// Blank returns a dark placeholder image used before any data is loaded.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// DrawHint stamps a short help string near the bottom-left of the image.
func DrawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	// semi-opaque backdrop for readability on any chart background
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
