package coords

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalize_SquarePreferredOnTie(t *testing.T) {
	// On a 2000x1500 image this box is plausible both as pixels and as a
	// 0-1000 grid reading; the tie goes to the square convention.
	raw := []Raw{{X1: 50, Y1: 50, X2: 450, Y2: 250}}
	rects, kept, name := Normalize(raw, 2000, 1500, nil)

	if name != "coord_square_1000" {
		t.Fatalf("expected coord_square_1000, got %s", name)
	}
	if len(rects) != 1 || !kept[0] {
		t.Fatalf("expected the box to survive, got %d rects", len(rects))
	}
	r := rects[0]
	if !approx(r.X, 0.05) || !approx(r.Y, 0.05) || !approx(r.W, 0.40) || !approx(r.H, 0.20) {
		t.Errorf("unexpected rect %+v", r)
	}
}

func TestNormalize_PixelConvention(t *testing.T) {
	// Coordinates beyond 1024 cannot be a square-grid reading.
	raw := []Raw{{X1: 100, Y1: 100, X2: 1600, Y2: 1200}}
	rects, _, name := Normalize(raw, 2000, 1500, nil)

	if name != "pixel" {
		t.Fatalf("expected pixel, got %s", name)
	}
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	r := rects[0]
	if !approx(r.X, 0.05) || !approx(r.W, 0.75) || !approx(r.H, 1200.0/1500-100.0/1500) {
		t.Errorf("unexpected rect %+v", r)
	}
}

func TestNormalize_NormalizedConvention(t *testing.T) {
	raw := []Raw{
		{X1: 0.1, Y1: 0.2, X2: 0.4, Y2: 0.5},
		{X1: 0.5, Y1: 0.5, X2: 0.9, Y2: 0.8},
	}
	rects, _, name := Normalize(raw, 800, 600, nil)

	if name != "normalized" {
		t.Fatalf("expected normalized, got %s", name)
	}
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
}

func TestNormalize_SwappedCorners(t *testing.T) {
	raw := []Raw{{X1: 450, Y1: 250, X2: 50, Y2: 50}}
	rects, _, _ := Normalize(raw, 2000, 1500, nil)
	if len(rects) != 1 {
		t.Fatalf("expected swapped corners to canonicalize, got %d rects", len(rects))
	}
	if rects[0].W <= 0 || rects[0].H <= 0 {
		t.Errorf("expected positive size, got %+v", rects[0])
	}
}

func TestNormalize_DropsDegenerate(t *testing.T) {
	raw := []Raw{
		{X1: 100, Y1: 100, X2: 400, Y2: 300},
		// Survives scoring but collapses below the keep threshold.
		{X1: 500, Y1: 500, X2: 503, Y2: 503},
	}
	rects, kept, _ := Normalize(raw, 1000, 1000, nil)
	if len(rects) != 1 {
		t.Fatalf("expected degenerate box to be dropped, got %d rects", len(rects))
	}
	if !kept[0] || kept[1] {
		t.Errorf("unexpected keep mask %v", kept)
	}
}

func TestNormalize_Letterbox(t *testing.T) {
	// A wide 2000x1000 image letterboxed into a 1000 square: scale 0.5,
	// vertical pad 250. A box at the very top of the content area reads
	// y=250 in letterbox coordinates.
	raw := []Raw{{X1: 0, Y1: 250, X2: 400, Y2: 450}}
	rects, _, name := Normalize(raw, 2000, 1000, nil)

	if name == "coord_square_1000_letterbox" {
		r := rects[0]
		if !approx(r.Y, 0) || !approx(r.H, 0.4) {
			t.Errorf("unexpected letterbox rect %+v", r)
		}
		return
	}
	// Another convention may score equally; whatever wins must keep the
	// box inside the unit square.
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	r := rects[0]
	if r.X < 0 || r.Y < 0 || r.X+r.W > 1 || r.Y+r.H > 1 {
		t.Errorf("rect escapes the unit square: %+v", r)
	}
}

func TestNormalize_Empty(t *testing.T) {
	rects, kept, name := Normalize(nil, 100, 100, nil)
	if rects != nil || kept != nil || name != "" {
		t.Error("expected empty result for no input")
	}
}
