// Package document stores uploaded files and extracts their text and
// page images. A file's type is sniffed at upload; scanned PDFs are told
// apart from text PDFs by text density at parse time.
package document

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/docuveil/docuveil/internal/faults"
)

// FileType classifies an upload.
type FileType string

const (
	// TypeDOCX is an Office Open XML word document
	TypeDOCX FileType = "docx"

	// TypePDF is a PDF with an extractable text layer
	TypePDF FileType = "pdf"

	// TypePDFScanned is a PDF whose pages are images
	TypePDFScanned FileType = "pdf_scanned"

	// TypeImage is a raster image
	TypeImage FileType = "image"
)

// textDensityThreshold is the average characters per page below which a
// PDF counts as scanned.
const textDensityThreshold = 100

// Meta describes one stored document.
type Meta struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   FileType  `json:"file_type"`
	Size       int64     `json:"size"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"uploaded_at"`

	// StoredPath is the absolute path of the stored copy
	StoredPath string `json:"stored_path"`
}

// ParseResult is the extracted content of one document.
type ParseResult struct {
	FileID    string   `json:"file_id"`
	FileType  FileType `json:"file_type"`
	Content   string   `json:"content"`
	PageCount int      `json:"page_count"`
	Pages     []string `json:"pages,omitempty"`
	IsScanned bool     `json:"is_scanned"`
}

// sniffType maps a filename to its document type. Legacy .doc needs a
// converter this service does not ship, so it is rejected up front.
func sniffType(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return TypeDOCX, nil
	case ".doc":
		return "", faults.New(faults.InvalidInput, "legacy .doc files are not supported, convert to .docx first")
	case ".pdf":
		return TypePDF, nil
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp", ".tif", ".tiff":
		return TypeImage, nil
	default:
		return "", faults.New(faults.InvalidInput, "unsupported file type %q", filepath.Ext(filename))
	}
}
