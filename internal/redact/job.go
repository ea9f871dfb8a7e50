// Package redact orchestrates a document's redaction job from detection
// through review to the written output.
package redact

import (
	"time"

	"github.com/docuveil/docuveil/internal/document"
	"github.com/docuveil/docuveil/internal/entity"
)

// Status is a job's position in its lifecycle.
type Status string

const (
	// StatusUploaded means the file is stored but not yet parsed
	StatusUploaded Status = "uploaded"

	// StatusParsed means text extraction finished
	StatusParsed Status = "parsed"

	// StatusDetected means detection produced entities or boxes
	StatusDetected Status = "detected"

	// StatusReviewed means the user confirmed the selection
	StatusReviewed Status = "reviewed"

	// StatusRedacted means the output artifact exists
	StatusRedacted Status = "redacted"

	// StatusDelivered means the output was downloaded
	StatusDelivered Status = "delivered"
)

// Job tracks one document through the redaction lifecycle. A document
// has at most one job; rerunning detection restarts it.
type Job struct {
	FileID   string            `json:"file_id"`
	FileType document.FileType `json:"file_type"`
	Status   Status            `json:"status"`

	// Content is the canonical document string for text documents
	Content string `json:"content,omitempty"`

	// Entities holds detected textual spans
	Entities []entity.Entity `json:"entities,omitempty"`

	// Boxes holds detected visual regions across all pages
	Boxes []entity.BoundingBox `json:"boxes,omitempty"`

	// Masked and Mapping carry the hide-stage output for structured mode
	Masked  string              `json:"masked,omitempty"`
	Mapping map[string][]string `json:"mapping,omitempty"`

	// Warnings records stage failures detection survived
	Warnings []string `json:"warnings,omitempty"`

	// OutputFileID names the redacted artifact once it exists
	OutputFileID string `json:"output_file_id,omitempty"`

	// OutputPath is the redacted artifact's location on disk
	OutputPath string `json:"output_path,omitempty"`

	// RedactedText is the substituted document string for text documents
	RedactedText string `json:"redacted_text,omitempty"`

	// EntityMap maps original values to their replacements
	EntityMap map[string]string `json:"entity_map,omitempty"`

	// RedactedCount is the number of substitutions or filled regions
	RedactedCount int `json:"redacted_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Review is the user's selection during the review step.
type Review struct {
	// EntityIDs lists the approved textual spans; nil approves all
	EntityIDs []string `json:"entity_ids"`

	// BoxIDs lists the approved regions; nil approves all
	BoxIDs []string `json:"box_ids"`

	// ManualBoxes are regions the user drew themselves
	ManualBoxes []entity.BoundingBox `json:"manual_boxes,omitempty"`
}

// Comparison is the before/after view of a redacted document.
type Comparison struct {
	Original string   `json:"original"`
	Redacted string   `json:"redacted"`
	Changes  []Change `json:"changes"`
}

// Change is one substitution and how often it occurred.
type Change struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Count       int    `json:"count"`
}
