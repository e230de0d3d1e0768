package main

import (
	"fmt"
	"image/color"
	"math"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/zstumgoren/executions-viz/src/chartrender"
)

// chartKind selects which aggregate an overlay reads bar data from.
type chartKind int

const (
	chartYears chartKind = iota
	chartMethods
)

// computeContainRect returns the drawn image rectangle inside a canvas that
// scales its image with ImageFillContain: offset, size and the uniform scale
// factor.
func computeContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return
}

// barCenters computes the overlay-space x position of each bar center for a
// chart image of n bars, using the same band slots the renderer used.
func barCenters(n int, imgW, imgH, viewW, viewH float32) []float32 {
	if n <= 0 {
		return nil
	}
	drawX, _, _, _, scale := computeContainRect(imgW, imgH, viewW, viewH)
	band := chartrender.Band(n, int(imgW))
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		pxImg := chartrender.LeftGutterPx + band.Center(i)
		out[i] = drawX + float32(pxImg)*scale
	}
	return out
}

// indexFromMouse picks the bar whose center is nearest to mouseX.
func indexFromMouse(n int, imgW, imgH, viewW, viewH, mouseX float32) int {
	centers := barCenters(n, imgW, imgH, viewW, viewH)
	best := 0
	bestD := float32(math.MaxFloat32)
	for i, c := range centers {
		d := float32(math.Abs(float64(mouseX - c)))
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// tooltipOverlay sits on top of a chart image and shows the hovered bar's
// label and count in a floating label next to the pointer. Hidden when the
// pointer leaves the chart.
type tooltipOverlay struct {
	widget.BaseWidget
	state    *uiState
	kind     chartKind
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newTooltipOverlay(state *uiState, kind chartKind) *tooltipOverlay {
	o := &tooltipOverlay{state: state, kind: kind, enabled: state != nil && state.tooltipEnabled}
	o.ExtendBaseWidget(o)
	return o
}

func (o *tooltipOverlay) imageCanvas() *canvas.Image {
	if o.state == nil {
		return nil
	}
	if o.kind == chartMethods {
		return o.state.methodCanvas
	}
	return o.state.yearImgCanvas
}

// barCount and barText read the currently loaded aggregates.
func (o *tooltipOverlay) barCount() int {
	if o.state == nil {
		return 0
	}
	if o.kind == chartMethods {
		return len(o.state.summary.Methods)
	}
	return len(o.state.summary.Years)
}

func (o *tooltipOverlay) barText(i int) string {
	if o.state == nil {
		return ""
	}
	if o.kind == chartMethods {
		ms := o.state.summary.Methods
		if i < 0 || i >= len(ms) {
			return ""
		}
		return fmt.Sprintf("%s\n%d executions", ms[i].Label, ms[i].Count)
	}
	ys := o.state.summary.Years
	if i < 0 || i >= len(ys) {
		return ""
	}
	return fmt.Sprintf("%d\n%d executions", ys[i].Year, ys[i].Count)
}

func (o *tooltipOverlay) CreateRenderer() fyne.WidgetRenderer {
	// transparent background keeps the whole stack area hoverable
	bg := canvas.NewRectangle(color.RGBA{})
	line := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	line.StrokeWidth = 1.0
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	objs := []fyne.CanvasObject{bg, line, labelBG, label}
	return &tooltipRenderer{o: o, bg: bg, line: line, labelBG: labelBG, label: label, objs: objs}
}

type tooltipRenderer struct {
	o       *tooltipOverlay
	bg      *canvas.Rectangle
	line    *canvas.Line
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *tooltipRenderer) Destroy() {}

func (r *tooltipRenderer) hide() {
	r.line.Position1 = fyne.NewPos(-10, -10)
	r.line.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *tooltipRenderer) Layout(size fyne.Size) {
	if r.o == nil {
		return
	}
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.o.enabled || !r.o.hovering {
		r.hide()
		return
	}
	x, y := r.o.mouse.X, r.o.mouse.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > size.Width {
		x = size.Width
	}
	if y > size.Height {
		y = size.Height
	}

	n := r.o.barCount()
	var imgW, imgH float32
	if c := r.o.imageCanvas(); c != nil && c.Image != nil {
		b := c.Image.Bounds()
		imgW, imgH = float32(b.Dx()), float32(b.Dy())
	}
	if imgW <= 0 || imgH <= 0 {
		imgW, imgH = size.Width, size.Height
	}
	drawX, drawY, drawW, drawH, _ := computeContainRect(imgW, imgH, size.Width, size.Height)
	// pointer outside the drawn image: nothing to annotate
	if n == 0 || x < drawX || x > drawX+drawW || y < drawY || y > drawY+drawH {
		r.hide()
		return
	}

	idx := indexFromMouse(n, imgW, imgH, size.Width, size.Height, x)
	centers := barCenters(n, imgW, imgH, size.Width, size.Height)
	cx := centers[idx]
	r.line.Position1 = fyne.NewPos(cx, drawY)
	r.line.Position2 = fyne.NewPos(cx, drawY+drawH)

	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: r.o.barText(idx)}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Resize(ts)
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *tooltipRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *tooltipRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *tooltipRenderer) Refresh() {
	r.Layout(r.o.Size())
	r.bg.Refresh()
	r.line.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.line.StrokeWidth = 1
	r.line.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

// pointer events
func (o *tooltipOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !o.enabled {
		return
	}
	o.hovering = true
	o.mouse = ev.Position
	o.Refresh()
}
func (o *tooltipOverlay) MouseIn(ev *desktop.MouseEvent) { o.hovering = true; o.Refresh() }
func (o *tooltipOverlay) MouseOut()                      { o.hovering = false; o.Refresh() }

var _ desktop.Hoverable = (*tooltipOverlay)(nil)
