package uihelpers

// ComputeChartDimensions applies the width/height clamp rules used for chart
// images. Input is the desired raw width (e.g. canvas width); returns clamped
// width and height keeping a roughly 3:1 aspect.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// ComputeTableColumnWidths returns the widths for the per-year table columns
// (Year, Executions, Share) given a window width. Narrow windows drop the
// share column.
func ComputeTableColumnWidths(winW float32) [3]int {
	const compactBreakpoint = 520
	if winW < compactBreakpoint {
		return [3]int{90, 110, 0}
	}
	return [3]int{110, 140, 110}
}

// SharePercent is the percentage a single year's count represents of the
// total. Zero total yields zero rather than NaN.
func SharePercent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
