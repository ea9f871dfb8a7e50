// Package entity defines the span and region types produced by the detection
// pipelines and consumed by the replacement engine and writers.
package entity

import "fmt"

// Source identifies which text detector produced an entity.
type Source string

const (
	// SourceRegex marks spans found by the deterministic pattern matcher
	SourceRegex Source = "regex"

	// SourceNER marks spans found by the neural recognizer
	SourceNER Source = "ner"

	// SourceManual marks spans added by the user during review
	SourceManual Source = "manual"
)

// rank orders sources for per-position deduplication. Regex wins over the
// neural recognizer, which wins over manual annotations.
func (s Source) Rank() int {
	switch s {
	case SourceRegex:
		return 3
	case SourceNER:
		return 2
	case SourceManual:
		return 1
	default:
		return 0
	}
}

// BoxSource identifies which vision pipeline produced a bounding box.
type BoxSource string

const (
	// BoxSourceOCR marks regions from the OCR plus text-NER sub-pipeline
	BoxSourceOCR BoxSource = "ocr_has"

	// BoxSourceVLM marks regions from the vision language model
	BoxSourceVLM BoxSource = "glm_vision"

	// BoxSourceManual marks regions drawn by the user
	BoxSourceManual BoxSource = "manual"
)

// Entity is a sensitive textual span. Start and End are half-open rune
// offsets into the canonical document string, so that mixed CJK and ASCII
// documents count positions the same way reviewers see them.
type Entity struct {
	// ID is unique within a detection result (entity_0 .. entity_{n-1})
	ID string `json:"id"`

	// Text is the exact surface form, equal to the document slice [Start:End)
	Text string `json:"text"`

	// Type is an EntityTypeConfig id from the taxonomy registry
	Type string `json:"type"`

	// Start is the inclusive rune offset of the span
	Start int `json:"start"`

	// End is the exclusive rune offset of the span
	End int `json:"end"`

	// Page is the 1-based page the span belongs to
	Page int `json:"page"`

	// Confidence is the detector's score in [0,1]
	Confidence float64 `json:"confidence"`

	// Source records which stage produced the span
	Source Source `json:"source,omitempty"`

	// CorefID equates entities referring to the same real-world object
	CorefID string `json:"coref_id,omitempty"`

	// Replacement is filled in by the replacement engine
	Replacement string `json:"replacement,omitempty"`

	// Selected reflects user approval during review
	Selected bool `json:"selected"`
}

// Len returns the span length in runes.
func (e Entity) Len() int {
	return e.End - e.Start
}

// Overlaps reports whether two spans share at least one position.
func (e Entity) Overlaps(other Entity) bool {
	return e.Start < other.End && other.Start < e.End
}

// Validate checks the span against the document it was extracted from.
func (e Entity) Validate(doc []rune) error {
	if e.Start < 0 || e.End <= e.Start || e.End > len(doc) {
		return fmt.Errorf("entity %s has offsets [%d,%d) outside document of length %d", e.ID, e.Start, e.End, len(doc))
	}
	if string(doc[e.Start:e.End]) != e.Text {
		return fmt.Errorf("entity %s text %q does not match document slice %q", e.ID, e.Text, string(doc[e.Start:e.End]))
	}
	return nil
}

// BoundingBox is a sensitive visual region in unit coordinates relative to
// the EXIF-corrected original image.
type BoundingBox struct {
	// ID is a unique region identifier
	ID string `json:"id"`

	// X is the left edge in [0,1]
	X float64 `json:"x"`

	// Y is the top edge in [0,1]
	Y float64 `json:"y"`

	// Width is the box width in [0,1]
	Width float64 `json:"width"`

	// Height is the box height in [0,1]
	Height float64 `json:"height"`

	// Page is the 1-based page the region belongs to
	Page int `json:"page"`

	// Type is an EntityTypeConfig id
	Type string `json:"type"`

	// Text is the OCR text or VLM caption for the region, if any
	Text string `json:"text,omitempty"`

	// Confidence is the detector's score in [0,1]
	Confidence float64 `json:"confidence"`

	// Selected reflects user approval during review
	Selected bool `json:"selected"`

	// Source records which pipeline produced the region
	Source BoxSource `json:"source,omitempty"`
}

// Area returns the box area in unit coordinates.
func (b BoundingBox) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// Validate checks the unit-coordinate invariants.
func (b BoundingBox) Validate() error {
	const eps = 1e-6
	if b.X < 0 || b.Y < 0 {
		return fmt.Errorf("box %s has negative origin (%f, %f)", b.ID, b.X, b.Y)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("box %s has non-positive size (%f, %f)", b.ID, b.Width, b.Height)
	}
	if b.X+b.Width > 1+eps || b.Y+b.Height > 1+eps {
		return fmt.Errorf("box %s exceeds the unit square", b.ID)
	}
	return nil
}

// IoU computes intersection-over-union between two boxes in unit coordinates.
func IoU(a, b BoundingBox) float64 {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	inter := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
