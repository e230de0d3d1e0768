package main

import (
	"strings"
	"testing"
)

func TestComputeContainRectLetterboxes(t *testing.T) {
	// wide image in a square view: horizontal fit, vertical letterbox
	dx, dy, dw, dh, scale := computeContainRect(900, 300, 900, 900)
	if dx != 0 || dw != 900 {
		t.Fatalf("expected full-width fit, got x=%v w=%v", dx, dw)
	}
	if dh != 300 || dy != 300 {
		t.Fatalf("expected vertical centering, got y=%v h=%v", dy, dh)
	}
	if scale != 1 {
		t.Fatalf("expected scale 1, got %v", scale)
	}
	// downscale case
	_, _, dw, _, scale = computeContainRect(1800, 600, 900, 900)
	if scale != 0.5 || dw != 900 {
		t.Fatalf("expected half scale full width, got scale=%v w=%v", scale, dw)
	}
}

func TestBarCentersMonotonicAndInsideImage(t *testing.T) {
	const n = 12
	centers := barCenters(n, 900, 300, 900, 300)
	if len(centers) != n {
		t.Fatalf("expected %d centers, got %d", n, len(centers))
	}
	for i := 1; i < n; i++ {
		if centers[i] <= centers[i-1] {
			t.Fatalf("centers not strictly increasing at %d: %v", i, centers)
		}
	}
	if centers[0] < 0 || centers[n-1] > 900 {
		t.Fatalf("centers outside the view: first=%v last=%v", centers[0], centers[n-1])
	}
}

func TestIndexFromMouseRoundTrip(t *testing.T) {
	const n = 9
	centers := barCenters(n, 900, 300, 450, 150) // scaled-down view
	for i, c := range centers {
		if got := indexFromMouse(n, 900, 300, 450, 150, c); got != i {
			t.Fatalf("indexFromMouse(center %d) = %d", i, got)
		}
	}
	// far left / far right clamp to first/last bar
	if got := indexFromMouse(n, 900, 300, 450, 150, -100); got != 0 {
		t.Fatalf("left of chart should resolve to bar 0, got %d", got)
	}
	if got := indexFromMouse(n, 900, 300, 450, 150, 10_000); got != n-1 {
		t.Fatalf("right of chart should resolve to last bar, got %d", got)
	}
}

func TestBarCentersEmpty(t *testing.T) {
	if centers := barCenters(0, 900, 300, 900, 300); centers != nil {
		t.Fatalf("no bars should yield no centers, got %v", centers)
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("short.csv", 60); got != "short.csv" {
		t.Fatalf("short path must be unchanged, got %q", got)
	}
	long := "/very/long/directory/with/many/segments/holding/executions_2024_export.csv"
	got := truncatePath(long, 40)
	if len(got) > 44 { // dir prefix + "/..." + base
		t.Fatalf("truncated path still too long (%d): %q", len(got), got)
	}
	if !strings.HasSuffix(got, "executions_2024_export.csv") {
		t.Fatalf("truncation must keep the base name: %q", got)
	}
}
