package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/vision"
)

// fuseIoU is the cross-pipeline overlap threshold above which boxes are
// considered the same region.
const fuseIoU = 0.3

// FuseResult is the merged output of both pipelines for one page.
type FuseResult struct {
	// Boxes holds every surviving region: all ocr_has boxes in discovery
	// order, then the vision model boxes that overlap none of them
	Boxes []entity.BoundingBox `json:"boxes"`

	// Warnings records pipeline failures the fuser survived
	Warnings []string `json:"warnings,omitempty"`
}

// Fuser fans an image out to both pipelines and merges their boxes. A
// pipeline with no enabled types is skipped; a failing pipeline
// contributes a warning and no boxes.
type Fuser struct {
	ocrHas *vision.Pipeline
	glm    *GLMPipeline
	cfg    *Store
	log    *logger.Logger
}

// NewFuser creates a fuser.
func NewFuser(ocrHas *vision.Pipeline, glm *GLMPipeline, cfg *Store, log *logger.Logger) *Fuser {
	if log == nil {
		log = logger.Get()
	}
	return &Fuser{ocrHas: ocrHas, glm: glm, cfg: cfg, log: log}
}

// Detect runs the enabled pipelines concurrently over one page image and
// fuses the results. Page is stamped onto every box.
func (f *Fuser) Detect(ctx context.Context, image []byte, page int) (*FuseResult, error) {
	result := &FuseResult{}

	ocrTypes := f.cfg.DetectTypes(ModeOCRHaS)
	glmTypes := f.cfg.DetectTypes(ModeGLMVision)

	var ocrBoxes, glmBoxes []entity.BoundingBox
	var ocrWarnings []string
	var ocrErr, glmErr error

	g, gctx := errgroup.WithContext(ctx)
	if len(ocrTypes) > 0 {
		g.Go(func() error {
			ocrBoxes, ocrWarnings, ocrErr = f.ocrHas.Detect(gctx, image, ocrTypes)
			return nil
		})
	}
	if len(glmTypes) > 0 {
		g.Go(func() error {
			glmBoxes, glmErr = f.glm.Detect(gctx, image, glmTypes)
			return nil
		})
	}
	_ = g.Wait()

	// Stage degradations inside a surviving pipeline surface here too.
	result.Warnings = append(result.Warnings, ocrWarnings...)
	if ocrErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("ocr_has pipeline failed: %v", ocrErr))
		f.log.WithPipeline(string(ModeOCRHaS)).WithError(ocrErr).Warn("pipeline failed")
	}
	if glmErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("glm_vision pipeline failed: %v", glmErr))
		f.log.WithPipeline(string(ModeGLMVision)).WithError(glmErr).Warn("pipeline failed")
	}

	result.Boxes = fuse(ocrBoxes, glmBoxes)
	for i := range result.Boxes {
		result.Boxes[i].Page = page
	}
	return result, nil
}

// fuse keeps every OCR box, then the vision boxes that do not overlap a
// kept OCR box. OCR geometry comes from measured text positions and is
// the more precise of the two.
func fuse(ocrBoxes, glmBoxes []entity.BoundingBox) []entity.BoundingBox {
	merged := make([]entity.BoundingBox, 0, len(ocrBoxes)+len(glmBoxes))
	merged = append(merged, ocrBoxes...)

	for _, g := range glmBoxes {
		duplicate := false
		for _, o := range ocrBoxes {
			if entity.IoU(g, o) > fuseIoU {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, g)
		}
	}
	return merged
}

// Merge folds extra boxes, typically user-drawn ones, into an already
// fused list, dropping any that overlap a kept box.
func Merge(fused, extras []entity.BoundingBox) []entity.BoundingBox {
	for _, e := range extras {
		duplicate := false
		for _, kept := range fused {
			if entity.IoU(e, kept) > fuseIoU {
				duplicate = true
				break
			}
		}
		if !duplicate {
			fused = append(fused, e)
		}
	}
	return fused
}
