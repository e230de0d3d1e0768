package chartrender

import (
	"math"
	"testing"
)

func TestCountScaleRoundTrip(t *testing.T) {
	const height = 320.0
	s := NewCountScale(85, height)
	if got := s.Scale(0); got != height {
		t.Fatalf("scale(0) = %v, want chart height %v", got, height)
	}
	if got := s.Scale(85); got != 0 {
		t.Fatalf("scale(max) = %v, want 0", got)
	}
	// midpoint maps to the middle of the range, inverted
	if got := s.Scale(42.5); math.Abs(got-height/2) > 1e-9 {
		t.Fatalf("scale(mid) = %v, want %v", got, height/2)
	}
}

func TestCountScaleEmptyFallback(t *testing.T) {
	s := NewCountScale(0, 100)
	if s.DomainMax != 1 {
		t.Fatalf("degenerate domain should fall back to [0,1], got max %v", s.DomainMax)
	}
	if got := s.Scale(0); got != 100 {
		t.Fatalf("scale(0) = %v, want 100", got)
	}
}

func TestBandScaleSlotsPartitionWidth(t *testing.T) {
	b := BandScale{N: 7, Width: 700}
	var prevEnd float64
	for i := 0; i < b.N; i++ {
		x0, x1 := b.Slot(i)
		if i == 0 && x0 != 0 {
			t.Fatalf("first slot must start at 0, got %v", x0)
		}
		if i > 0 && math.Abs(x0-prevEnd) > 1e-9 {
			t.Fatalf("slot %d starts at %v, previous ended at %v (gap or overlap)", i, x0, prevEnd)
		}
		if x1 <= x0 {
			t.Fatalf("slot %d is empty: [%v,%v)", i, x0, x1)
		}
		prevEnd = x1
	}
	if math.Abs(prevEnd-b.Width) > 1e-9 {
		t.Fatalf("slots end at %v, want full width %v", prevEnd, b.Width)
	}
}

func TestBandScaleIndexInvertsCenter(t *testing.T) {
	b := BandScale{N: 9, Width: 450}
	for i := 0; i < b.N; i++ {
		if got := b.Index(b.Center(i)); got != i {
			t.Fatalf("Index(Center(%d)) = %d", i, got)
		}
	}
	// out-of-range clamps
	if b.Index(-50) != 0 {
		t.Fatalf("negative x must clamp to first band")
	}
	if b.Index(b.Width+50) != b.N-1 {
		t.Fatalf("x beyond width must clamp to last band")
	}
}

func TestBandScaleEmpty(t *testing.T) {
	b := BandScale{}
	if b.SlotWidth() != 0 || b.Index(10) != 0 {
		t.Fatalf("empty band scale should stay inert")
	}
}

func TestZeroAnchoredTicksIntegerSteps(t *testing.T) {
	rng, ticks := buildZeroAnchoredRangeAndTicks(3, 6, 0.04, true)
	if rng.Min != 0 {
		t.Fatalf("count axis must anchor at zero, got %v", rng.Min)
	}
	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", len(ticks))
	}
	for _, tk := range ticks {
		if tk.Value != math.Trunc(tk.Value) {
			t.Fatalf("integer axis produced fractional tick %v", tk.Value)
		}
	}
	if rng.Max < 3 {
		t.Fatalf("range must cover the max value, got %v", rng.Max)
	}
}

func TestZeroAnchoredTicksDegenerateMax(t *testing.T) {
	rng, ticks := buildZeroAnchoredRangeAndTicks(0, 6, 0.04, true)
	if rng.Min != 0 || rng.Max <= 0 {
		t.Fatalf("empty dataset must still give a usable [0,n] range, got [%v,%v]", rng.Min, rng.Max)
	}
	if len(ticks) < 2 {
		t.Fatalf("expected ticks even for empty data")
	}
}
