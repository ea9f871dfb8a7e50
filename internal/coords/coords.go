// Package coords reconciles the coordinate conventions emitted by vision
// models back to unit coordinates on the original image. Models variously
// answer in pixels, normalized floats, 0-1000 or 0-1024 grids, and some
// letterbox the image into a square before measuring.
package coords

import (
	"sort"

	"github.com/docuveil/docuveil/internal/logger"
)

// Raw is one box as returned by a model, corner form.
type Raw struct {
	X1, Y1, X2, Y2 float64
}

// Rect is a normalized box in unit coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Validity window used while scoring candidate conventions.
const (
	scoreMinSide = 0.003
	scoreMaxSide = 0.98
)

// Post-normalization junk filter bounds.
const (
	keepMinSide = 0.005
	keepMaxSide = 0.95
)

// convention is one candidate interpretation of the raw coordinates.
type convention struct {
	name  string
	apply func(Raw, float64, float64) Raw
	// square conventions are preferred on score ties
	square bool
}

func conventions() []convention {
	return []convention{
		{
			name: "pixel",
			apply: func(r Raw, w, h float64) Raw {
				return Raw{r.X1 / w, r.Y1 / h, r.X2 / w, r.Y2 / h}
			},
		},
		{
			name:  "normalized",
			apply: func(r Raw, w, h float64) Raw { return r },
		},
		{
			name:   "coord_square_1000",
			square: true,
			apply: func(r Raw, w, h float64) Raw {
				return Raw{r.X1 / 1000, r.Y1 / 1000, r.X2 / 1000, r.Y2 / 1000}
			},
		},
		{
			name:   "coord_square_1024",
			square: true,
			apply: func(r Raw, w, h float64) Raw {
				return Raw{r.X1 / 1024, r.Y1 / 1024, r.X2 / 1024, r.Y2 / 1024}
			},
		},
		{
			name:   "coord_square_1000_letterbox",
			square: true,
			apply:  letterbox(1000),
		},
		{
			name:   "coord_square_1024_letterbox",
			square: true,
			apply:  letterbox(1024),
		},
	}
}

// letterbox undoes center padding applied by models that square their
// input: the image is scaled by min(B/W, B/H) and padded symmetrically.
func letterbox(base float64) func(Raw, float64, float64) Raw {
	return func(r Raw, w, h float64) Raw {
		scale := min(base/w, base/h)
		padX := (base - w*scale) / 2
		padY := (base - h*scale) / 2
		return Raw{
			X1: (r.X1 - padX) / scale / w,
			Y1: (r.Y1 - padY) / scale / h,
			X2: (r.X2 - padX) / scale / w,
			Y2: (r.Y2 - padY) / scale / h,
		}
	}
}

// Normalize picks the convention that makes the most boxes plausible,
// applies it, clamps to the unit square and drops degenerate boxes.
// Returns the surviving rectangles, index-aligned with a keep mask over
// the input, and the name of the chosen convention.
func Normalize(raw []Raw, width, height int, log *logger.Logger) ([]Rect, []bool, string) {
	if len(raw) == 0 {
		return nil, nil, ""
	}
	if log == nil {
		log = logger.Get()
	}
	w, h := float64(width), float64(height)

	cands := conventions()
	scores := make([]float64, len(cands))
	for i, c := range cands {
		valid := 0
		for _, r := range raw {
			if plausible(canonical(c.apply(r, w, h))) {
				valid++
			}
		}
		scores[i] = float64(valid) / float64(len(raw))
	}

	// Highest score wins; square conventions break ties against pixel
	// and normalized readings.
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		if cands[ia].square != cands[ib].square {
			return cands[ia].square
		}
		return false
	})
	best := cands[order[0]]
	log.WithOperation("coords.normalize").Debugf("convention %s scored %.2f over %d boxes", best.name, scores[order[0]], len(raw))

	rects := make([]Rect, 0, len(raw))
	kept := make([]bool, len(raw))
	for i, r := range raw {
		c := canonical(best.apply(r, w, h))
		c.X1 = clamp01(c.X1)
		c.Y1 = clamp01(c.Y1)
		c.X2 = clamp01(c.X2)
		c.Y2 = clamp01(c.Y2)
		bw := c.X2 - c.X1
		bh := c.Y2 - c.Y1
		if bw < keepMinSide || bh < keepMinSide || bw > keepMaxSide || bh > keepMaxSide {
			continue
		}
		kept[i] = true
		rects = append(rects, Rect{X: c.X1, Y: c.Y1, W: bw, H: bh})
	}
	return rects, kept, best.name
}

// canonical enforces min < max on both axes.
func canonical(r Raw) Raw {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// plausible reports whether a transformed box lies fully in the unit
// square with a sane size.
func plausible(r Raw) bool {
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > 1 || r.Y2 > 1 {
		return false
	}
	w := r.X2 - r.X1
	h := r.Y2 - r.Y1
	return w >= scoreMinSide && w <= scoreMaxSide && h >= scoreMinSide && h <= scoreMaxSide
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
