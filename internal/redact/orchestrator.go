package redact

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuveil/docuveil/internal/document"
	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/pipeline"
	"github.com/docuveil/docuveil/internal/replace"
	"github.com/docuveil/docuveil/internal/state"
	"github.com/docuveil/docuveil/internal/taxonomy"
	"github.com/docuveil/docuveil/internal/writer"
)

// renderDPI is the resolution scanned PDF pages are rendered and
// reassembled at.
const renderDPI = 150

// placeholderImage stands in for content views of raster documents.
const placeholderImage = "[图片文件，请查看预览]"

// placeholderRedacted stands in for redacted content of raster documents.
const placeholderRedacted = "[已脱敏图片，请查看预览]"

// Orchestrator runs redaction jobs. Jobs are keyed by file id and
// persisted so a restart does not lose review state.
type Orchestrator struct {
	mu   sync.RWMutex
	jobs map[string]*Job

	docs     *document.Store
	detector *hybrid.Detector
	fuser    *pipeline.Fuser
	types    *taxonomy.Store

	outputDir string
	jobsFile  string
	log       *logger.Logger
}

// NewOrchestrator creates the orchestrator and loads persisted jobs.
func NewOrchestrator(docs *document.Store, detector *hybrid.Detector, fuser *pipeline.Fuser, types *taxonomy.Store, outputDir, jobsFile string, log *logger.Logger) (*Orchestrator, error) {
	if log == nil {
		log = logger.Get()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot create output directory")
	}

	o := &Orchestrator{
		jobs:      make(map[string]*Job),
		docs:      docs,
		detector:  detector,
		fuser:     fuser,
		types:     types,
		outputDir: outputDir,
		jobsFile:  jobsFile,
		log:       log,
	}

	var saved []*Job
	if _, err := state.Load(jobsFile, &saved); err != nil {
		return nil, err
	}
	for _, j := range saved {
		o.jobs[j.FileID] = j
	}
	return o, nil
}

// Get returns the job for a file.
func (o *Orchestrator) Get(fileID string) (*Job, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	j, ok := o.jobs[fileID]
	if !ok {
		return nil, faults.New(faults.NotFound, "no redaction job for file %q", fileID)
	}
	copied := *j
	return &copied, nil
}

// Detect parses the document and runs the detection pipeline matching
// its type. Text documents go through the hybrid detector; scanned PDFs
// and images go page by page through the dual-pipeline fuser. Rerunning
// detection discards any earlier review. Every detected span and region
// starts out selected.
func (o *Orchestrator) Detect(ctx context.Context, fileID string, typeIDs []string, mode hybrid.Mode) (*Job, error) {
	lock := o.docs.Lock(fileID)
	lock.Lock()
	defer lock.Unlock()

	parsed, err := o.docs.Parse(fileID)
	if err != nil {
		return nil, err
	}
	if len(typeIDs) == 0 {
		typeIDs = o.types.EnabledIDs()
	}

	job := &Job{
		FileID:   fileID,
		FileType: parsed.FileType,
		Status:   StatusParsed,
		Content:  parsed.Content,
	}

	if parsed.IsScanned || parsed.FileType == document.TypeImage {
		if err := o.detectVision(ctx, job, parsed.PageCount); err != nil {
			return nil, err
		}
	} else {
		result, err := o.detector.Detect(ctx, parsed.Content, typeIDs, mode)
		if err != nil {
			return nil, err
		}
		for i := range result.Entities {
			result.Entities[i].Selected = true
		}
		job.Entities = result.Entities
		job.Masked = result.Masked
		job.Mapping = result.Mapping
		job.Warnings = result.Warnings
	}

	job.Status = StatusDetected
	job.UpdatedAt = time.Now().UTC()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.jobs[fileID] = job
	if err := o.persistLocked(); err != nil {
		return nil, err
	}
	o.log.WithFileID(fileID).WithFields(
		"entities", len(job.Entities),
		"boxes", len(job.Boxes),
		"warnings", len(job.Warnings),
	).Info("detection finished")
	copied := *job
	return &copied, nil
}

func (o *Orchestrator) detectVision(ctx context.Context, job *Job, pageCount int) error {
	for page := 1; page <= pageCount; page++ {
		img, err := o.docs.PageImage(job.FileID, page)
		if err != nil {
			return err
		}
		result, err := o.fuser.Detect(ctx, img, page)
		if err != nil {
			return err
		}
		for i := range result.Boxes {
			result.Boxes[i].Selected = true
		}
		job.Boxes = append(job.Boxes, result.Boxes...)
		job.Warnings = append(job.Warnings, result.Warnings...)
	}
	return nil
}

// Apply records the user's review. A nil id list approves everything;
// an empty non-nil list deselects everything. Manual regions are merged
// after the pipeline boxes.
func (o *Orchestrator) Apply(fileID string, review Review) (*Job, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[fileID]
	if !ok {
		return nil, faults.New(faults.NotFound, "no redaction job for file %q", fileID)
	}
	if job.Status != StatusDetected && job.Status != StatusReviewed {
		return nil, faults.New(faults.InvalidInput, "file %q is %s, expected detected", fileID, job.Status)
	}

	if review.EntityIDs != nil {
		approved := make(map[string]bool, len(review.EntityIDs))
		for _, id := range review.EntityIDs {
			approved[id] = true
		}
		for i := range job.Entities {
			job.Entities[i].Selected = approved[job.Entities[i].ID]
		}
	}
	if review.BoxIDs != nil {
		approved := make(map[string]bool, len(review.BoxIDs))
		for _, id := range review.BoxIDs {
			approved[id] = true
		}
		for i := range job.Boxes {
			job.Boxes[i].Selected = approved[job.Boxes[i].ID]
		}
	}
	if len(review.ManualBoxes) > 0 {
		manual := make([]entity.BoundingBox, 0, len(review.ManualBoxes))
		for _, b := range review.ManualBoxes {
			if err := b.Validate(); err != nil {
				return nil, faults.Wrap(faults.InvalidInput, err, "invalid manual region")
			}
			if b.ID == "" {
				b.ID = "manual_" + uuid.NewString()[:8]
			}
			if b.Page == 0 {
				b.Page = 1
			}
			b.Source = entity.BoxSourceManual
			b.Selected = true
			manual = append(manual, b)
		}
		job.Boxes = pipeline.Merge(job.Boxes, manual)
	}

	job.Status = StatusReviewed
	job.UpdatedAt = time.Now().UTC()
	if err := o.persistLocked(); err != nil {
		return nil, err
	}
	copied := *job
	return &copied, nil
}

// Redact writes the redacted artifact for a detected or reviewed job.
// custom is the verbatim replacement map for custom mode and may be nil.
func (o *Orchestrator) Redact(ctx context.Context, fileID string, mode replace.Mode, custom map[string]string) (*Job, error) {
	lock := o.docs.Lock(fileID)
	lock.Lock()
	defer lock.Unlock()

	o.mu.Lock()
	job, ok := o.jobs[fileID]
	if !ok {
		o.mu.Unlock()
		return nil, faults.New(faults.NotFound, "no redaction job for file %q", fileID)
	}
	if job.Status != StatusDetected && job.Status != StatusReviewed {
		o.mu.Unlock()
		return nil, faults.New(faults.InvalidInput, "file %q is %s, expected detected or reviewed", fileID, job.Status)
	}
	o.mu.Unlock()

	meta, err := o.docs.Get(fileID)
	if err != nil {
		return nil, err
	}

	rctx := replace.NewContext(mode, o.types)
	if custom != nil {
		rctx.SetCustomReplacements(custom)
	}
	if len(job.Mapping) > 0 {
		rctx.SetStructuredMapping(job.Mapping)
	}

	outputID := uuid.NewString()
	var outputPath string
	var count int
	switch meta.FileType {
	case document.TypeDOCX:
		outputPath = filepath.Join(o.outputDir, outputID+".docx")
		count, err = writer.RedactDOCX(meta.StoredPath, outputPath, o.replacements(job, rctx))
	case document.TypePDF:
		outputPath = filepath.Join(o.outputDir, outputID+".pdf")
		count, err = writer.RedactPDFText(meta.StoredPath, outputPath, o.replacements(job, rctx))
	case document.TypePDFScanned:
		outputPath = filepath.Join(o.outputDir, outputID+".pdf")
		count, err = o.redactScannedPDF(job, meta.PageCount, outputPath)
	case document.TypeImage:
		outputPath = filepath.Join(o.outputDir, outputID+".png")
		count, err = o.redactImage(job, outputPath)
	default:
		return nil, faults.New(faults.InvalidInput, "cannot redact file type %q", meta.FileType)
	}
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	job.OutputFileID = outputID
	job.OutputPath = outputPath
	job.EntityMap = rctx.EntityMap()
	job.RedactedCount = count
	if job.Content != "" {
		job.RedactedText = replace.ApplyToText(job.Content, job.Entities, rctx)
	}
	job.Status = StatusRedacted
	job.UpdatedAt = time.Now().UTC()
	if err := o.persistLocked(); err != nil {
		return nil, err
	}
	o.log.WithFileID(fileID).WithFields("output", outputID, "redacted", count).Info("redaction finished")
	copied := *job
	return &copied, nil
}

// replacements builds the ordered substitution list for the text
// writers. Replacements are generated in document order so smart-mode
// numbering follows reading order; the first replacement for a surface
// form wins.
func (o *Orchestrator) replacements(job *Job, rctx *replace.Context) []writer.Replacement {
	selected := make([]entity.Entity, 0, len(job.Entities))
	for _, e := range job.Entities {
		if e.Selected {
			selected = append(selected, e)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Start < selected[j].Start })

	seen := make(map[string]bool, len(selected))
	out := make([]writer.Replacement, 0, len(selected))
	for _, e := range selected {
		r := rctx.Replacement(e)
		if seen[e.Text] {
			continue
		}
		seen[e.Text] = true
		out = append(out, writer.Replacement{Old: e.Text, New: r})
	}
	return out
}

func (o *Orchestrator) redactScannedPDF(job *Job, pageCount int, outputPath string) (int, error) {
	pages := make([][]byte, 0, pageCount)
	count := 0
	for page := 1; page <= pageCount; page++ {
		img, err := o.docs.PageImage(job.FileID, page)
		if err != nil {
			return 0, err
		}
		var pageBoxes []entity.BoundingBox
		for _, b := range job.Boxes {
			if b.Page == page && b.Selected {
				pageBoxes = append(pageBoxes, b)
				count++
			}
		}
		redacted, err := writer.RedactImage(img, pageBoxes)
		if err != nil {
			return 0, err
		}
		pages = append(pages, redacted)
	}
	pdf, err := writer.BuildPDF(pages, renderDPI)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outputPath, pdf, 0644); err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot write output PDF")
	}
	return count, nil
}

func (o *Orchestrator) redactImage(job *Job, outputPath string) (int, error) {
	data, err := o.docs.Read(job.FileID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, b := range job.Boxes {
		if b.Selected {
			count++
		}
	}
	redacted, err := writer.RedactImage(data, job.Boxes)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outputPath, redacted, 0644); err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot write output image")
	}
	return count, nil
}

// Comparison returns the before/after view of a redacted job. Raster
// documents get placeholder strings; the preview endpoints show them.
func (o *Orchestrator) Comparison(fileID string) (*Comparison, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	job, ok := o.jobs[fileID]
	if !ok {
		return nil, faults.New(faults.NotFound, "no redaction job for file %q", fileID)
	}
	if job.Status != StatusRedacted && job.Status != StatusDelivered {
		return nil, faults.New(faults.InvalidInput, "file %q is %s, expected redacted", fileID, job.Status)
	}

	original := job.Content
	redacted := job.RedactedText
	if original == "" {
		original = placeholderImage
		redacted = placeholderRedacted
	}

	changes := make([]Change, 0, len(job.EntityMap))
	for text, replacement := range job.EntityMap {
		if n := strings.Count(original, text); n > 0 {
			changes = append(changes, Change{Original: text, Replacement: replacement, Count: n})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Original < changes[j].Original })

	return &Comparison{Original: original, Redacted: redacted, Changes: changes}, nil
}

// Deliver returns the output path for download and marks the job
// delivered.
func (o *Orchestrator) Deliver(fileID string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[fileID]
	if !ok {
		return "", faults.New(faults.NotFound, "no redaction job for file %q", fileID)
	}
	if job.Status != StatusRedacted && job.Status != StatusDelivered {
		return "", faults.New(faults.InvalidInput, "file %q is %s, expected redacted", fileID, job.Status)
	}
	job.Status = StatusDelivered
	job.UpdatedAt = time.Now().UTC()
	if err := o.persistLocked(); err != nil {
		return "", err
	}
	return job.OutputPath, nil
}

// Delete removes a file's job and its output artifact.
func (o *Orchestrator) Delete(fileID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[fileID]
	if !ok {
		return nil
	}
	if job.OutputPath != "" {
		if err := os.Remove(job.OutputPath); err != nil && !os.IsNotExist(err) {
			o.log.WithFileID(fileID).WithError(err).Warn("cannot remove output artifact")
		}
	}
	delete(o.jobs, fileID)
	return o.persistLocked()
}

func (o *Orchestrator) persistLocked() error {
	list := make([]*Job, 0, len(o.jobs))
	for _, j := range o.jobs {
		list = append(list, j)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FileID < list[j].FileID })
	return state.Save(o.jobsFile, list)
}
