package entity

import (
	"math"
	"testing"
)

func TestEntityValidate(t *testing.T) {
	doc := []rune("联系电话：13812345678。")

	valid := Entity{ID: "e0", Text: "13812345678", Start: 5, End: 16}
	if err := valid.Validate(doc); err != nil {
		t.Errorf("expected valid entity, got %v", err)
	}

	stale := Entity{ID: "e1", Text: "13812345678", Start: 4, End: 15}
	if err := stale.Validate(doc); err == nil {
		t.Error("expected mismatch error for shifted offsets")
	}

	outOfRange := Entity{ID: "e2", Text: "x", Start: 20, End: 21}
	if err := outOfRange.Validate(doc); err == nil {
		t.Error("expected range error")
	}
}

func TestEntityOverlaps(t *testing.T) {
	a := Entity{Start: 0, End: 3}
	b := Entity{Start: 2, End: 5}
	c := Entity{Start: 3, End: 6}

	if !a.Overlaps(b) {
		t.Error("expected [0,3) to overlap [2,5)")
	}
	if a.Overlaps(c) {
		t.Error("half-open spans [0,3) and [3,6) must not overlap")
	}
}

func TestSourceRank(t *testing.T) {
	if SourceRegex.Rank() <= SourceNER.Rank() {
		t.Error("regex must outrank the neural recognizer")
	}
	if SourceNER.Rank() <= SourceManual.Rank() {
		t.Error("the neural recognizer must outrank manual spans")
	}
}

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     BoundingBox
		wantErr bool
	}{
		{"valid", BoundingBox{ID: "b", X: 0.1, Y: 0.1, Width: 0.3, Height: 0.2}, false},
		{"full frame", BoundingBox{ID: "b", X: 0, Y: 0, Width: 1, Height: 1}, false},
		{"negative origin", BoundingBox{ID: "b", X: -0.1, Y: 0, Width: 0.5, Height: 0.5}, true},
		{"zero width", BoundingBox{ID: "b", X: 0.1, Y: 0.1, Width: 0, Height: 0.2}, true},
		{"exceeds unit square", BoundingBox{ID: "b", X: 0.8, Y: 0.1, Width: 0.3, Height: 0.2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestIoU(t *testing.T) {
	a := BoundingBox{X: 0, Y: 0, Width: 0.5, Height: 0.5}
	b := BoundingBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}

	// Intersection 0.25x0.25, union 2*0.25 - 0.0625.
	want := 0.0625 / 0.4375
	if got := IoU(a, b); math.Abs(got-want) > 1e-9 {
		t.Errorf("IoU() = %f, want %f", got, want)
	}

	disjoint := BoundingBox{X: 0.6, Y: 0.6, Width: 0.2, Height: 0.2}
	if got := IoU(a, disjoint); got != 0 {
		t.Errorf("expected zero IoU for disjoint boxes, got %f", got)
	}

	if got := IoU(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected IoU 1 for identical boxes, got %f", got)
	}
}
