// Package vision implements the OCR-plus-recognizer image pipeline: the
// OCR service yields text blocks with precise positions, the neural
// recognizer finds sensitive mentions in the text, and the mentions are
// projected back onto block geometry. Regex rules overlay structured
// identifiers the recognizer tends to miss.
package vision

import "github.com/docuveil/docuveil/internal/ocr"

// block is an OCR text block in pixel coordinates.
type block struct {
	Text       string
	Left       float64
	Top        float64
	Width      float64
	Height     float64
	Confidence float64
	Label      string
}

// region is one detected sensitive area in pixel coordinates.
type region struct {
	Text       string
	Type       string
	Left       float64
	Top        float64
	Width      float64
	Height     float64
	Confidence float64
	Source     string
}

// toPixels converts the service's unit-coordinate blocks onto the image,
// clamping to its bounds and forcing a minimum one-pixel extent.
func toPixels(items []ocr.Block, width, height int) []block {
	w, h := float64(width), float64(height)
	out := make([]block, 0, len(items))
	for _, item := range items {
		left := clampF(item.X*w, 0, w-1)
		top := clampF(item.Y*h, 0, h-1)
		right := clampF(left+maxF(item.Width*w, 1), left+1, w)
		bottom := clampF(top+maxF(item.Height*h, 1), top+1, h)
		out = append(out, block{
			Text:       item.Text,
			Left:       left,
			Top:        top,
			Width:      right - left,
			Height:     bottom - top,
			Confidence: item.Confidence,
			Label:      item.Label,
		})
	}
	return out
}

// iou computes intersection over union of two pixel regions.
func iou(a, b region) float64 {
	x1 := maxF(a.Left, b.Left)
	y1 := maxF(a.Top, b.Top)
	x2 := minF(a.Left+a.Width, b.Left+b.Width)
	y2 := minF(a.Top+a.Height, b.Top+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	inter := (x2 - x1) * (y2 - y1)
	union := a.Width*a.Height + b.Width*b.Height - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// mergeRegions appends the extras that do not overlap an already accepted
// region. First accepted wins.
func mergeRegions(accepted, extras []region, iouThreshold float64) []region {
	merged := accepted
	for _, r := range extras {
		duplicate := false
		for _, kept := range merged {
			if iou(kept, r) >= iouThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, r)
		}
	}
	return merged
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
