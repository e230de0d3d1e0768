package chartrender

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// LinearScale maps a data value in [DomainMin, DomainMax] onto
// [RangeMin, RangeMax]. Ranges may be inverted (RangeMin > RangeMax), which
// is how counts map onto pixel y coordinates: larger counts land closer to
// the top of the image.
type LinearScale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewCountScale returns the vertical scale for a bar chart of counts: domain
// [0, maxCount], range [height, 0]. A degenerate domain (maxCount <= 0, e.g.
// an empty aggregate set) falls back to [0, 1] so the scale stays defined.
func NewCountScale(maxCount int, height float64) LinearScale {
	top := float64(maxCount)
	if top <= 0 {
		top = 1
	}
	return LinearScale{DomainMin: 0, DomainMax: top, RangeMin: height, RangeMax: 0}
}

// Scale maps v into the range. Values outside the domain extrapolate
// linearly; callers clamp if they need to.
func (s LinearScale) Scale(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span == 0 {
		return s.RangeMin
	}
	t := (v - s.DomainMin) / span
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}

// BandScale assigns each of N labels an equal-width slot across [0, Width].
// It is the single definition of where bars sit: the renderer sizes bars from
// it and the viewer's hover overlay inverts it to find the bar under the
// cursor.
type BandScale struct {
	N     int
	Width float64
}

// SlotWidth is the width of one band. Zero when the scale is empty.
func (b BandScale) SlotWidth() float64 {
	if b.N <= 0 {
		return 0
	}
	return b.Width / float64(b.N)
}

// Slot returns the [x0, x1) pixel span of band i.
func (b BandScale) Slot(i int) (float64, float64) {
	w := b.SlotWidth()
	x0 := float64(i) * w
	return x0, x0 + w
}

// Center returns the pixel x of the middle of band i.
func (b BandScale) Center(i int) float64 {
	x0, x1 := b.Slot(i)
	return (x0 + x1) / 2
}

// Index maps a pixel x back to the band containing it, clamped to [0, N-1].
func (b BandScale) Index(x float64) int {
	if b.N <= 0 {
		return 0
	}
	w := b.SlotWidth()
	if w <= 0 {
		return 0
	}
	i := int(math.Floor(x / w))
	if i < 0 {
		i = 0
	}
	if i >= b.N {
		i = b.N - 1
	}
	return i
}

// buildZeroAnchoredRangeAndTicks computes a [0, max] axis range with a small
// headroom pad plus tick marks on a 1/2/2.5/5 x 10^k grid. Count axes force a
// whole-number step so bars of integer tallies never get fractional labels.
func buildZeroAnchoredRangeAndTicks(rawMax float64, n int, padPct float64, integer bool) (*chart.ContinuousRange, []chart.Tick) {
	if rawMax <= 0 || math.IsNaN(rawMax) {
		rawMax = 1
	}
	if n < 2 {
		n = 2
	}
	step := niceStep(rawMax, n)
	if integer && step < 1 {
		step = 1
	}
	top := math.Ceil(rawMax/step) * step
	max := top + rawMax*padPct
	if max <= top {
		max = top
	}
	ticks := []chart.Tick{}
	for v := 0.0; v <= top+step/2; v += step {
		lbl := formatTick(v)
		if integer {
			lbl = fmt.Sprintf("%.0f", v)
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: lbl})
		if len(ticks) > n+2 {
			break
		}
	}
	return &chart.ContinuousRange{Min: 0, Max: max}, ticks
}

// niceStep picks the 1/2/2.5/5 x 10^k step whose tick count lands closest to
// the n requested.
func niceStep(span float64, n int) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	return bestStep
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
