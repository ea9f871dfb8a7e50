// Package writer produces redacted output documents. Text formats get
// in-place substitution that preserves the surrounding formatting; image
// formats get solid fills over the approved regions.
package writer

import (
	"image"
	"sort"

	"github.com/docuveil/docuveil/internal/entity"
)

// Replacement is one surface-form substitution to apply everywhere it
// occurs in a document.
type Replacement struct {
	// Old is the exact text to replace
	Old string

	// New is the replacement text
	New string
}

// orderedByLength sorts the replacements longest needle first, by rune
// count, so a span is never claimed by its own prefix. The sort is
// stable: equal-length needles keep their given order.
func orderedByLength(replacements []Replacement) []Replacement {
	ordered := make([]Replacement, len(replacements))
	copy(ordered, replacements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len([]rune(ordered[i].Old)) > len([]rune(ordered[j].Old))
	})
	return ordered
}

// boxPixels converts a unit-coordinate box to a pixel rectangle inside an
// image of the given size, clamped to the image bounds.
func boxPixels(b entity.BoundingBox, width, height int) image.Rectangle {
	x0 := int(b.X * float64(width))
	y0 := int(b.Y * float64(height))
	x1 := int((b.X + b.Width) * float64(width))
	y1 := int((b.Y + b.Height) * float64(height))

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}
