package vision

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/ocr"
	"github.com/docuveil/docuveil/internal/vlm"
)

// sealMarker is the placeholder text the OCR service emits for stamp
// regions.
const sealMarker = "[公章]"

// visualOnlyTypes are detected by the vision model pipeline, never from
// OCR text.
var visualOnlyTypes = map[string]bool{
	"SEAL": true, "SIGNATURE": true, "FINGERPRINT": true, "PHOTO": true,
	"QR_CODE": true, "HANDWRITING": true, "WATERMARK": true,
}

// minMentionRunes filters recognizer fragments too short to be real
// identifiers of their type.
var minMentionRunes = map[string]int{
	"PERSON":  2,
	"ORG":     2,
	"COMPANY": 2,
	"ADDRESS": 4,
}

// Pipeline is the OCR-plus-recognizer detector for one image.
type Pipeline struct {
	ocr        *ocr.Client
	recognizer *ner.Client
	log        *logger.Logger
}

// New creates a pipeline.
func New(ocrClient *ocr.Client, recognizer *ner.Client, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Get()
	}
	return &Pipeline{ocr: ocrClient, recognizer: recognizer, log: log}
}

// Detect returns sensitive regions on the image as unit-coordinate boxes.
// OCR failure fails the call; recognizer failure degrades to seal
// promotion plus regex overlay, recorded on the returned warnings.
func (p *Pipeline) Detect(ctx context.Context, image []byte, types []vlm.DetectType) ([]entity.BoundingBox, []string, error) {
	log := p.log.WithPipeline("ocr_has")

	img, err := imaging.Decode(bytes.NewReader(image), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, faults.Wrap(faults.InvalidInput, err, "cannot decode image")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	items, err := p.ocr.Extract(ctx, image, 0)
	if err != nil {
		return nil, nil, err
	}

	enabled := make(map[string]bool, len(types))
	for _, t := range types {
		enabled[t.ID] = true
	}

	// Stamp regions come straight from layout analysis; they never pass
	// through text matching.
	var textBlocks []block
	var regions []region
	for _, b := range toPixels(items, width, height) {
		if b.Label == ocr.LabelSeal || strings.TrimSpace(b.Text) == sealMarker {
			if enabled["SEAL"] {
				regions = append(regions, region{
					Text:       sealMarker,
					Type:       "SEAL",
					Left:       b.Left,
					Top:        b.Top,
					Width:      b.Width,
					Height:     b.Height,
					Confidence: b.Confidence,
					Source:     "ocr_layout",
				})
			}
			continue
		}
		textBlocks = append(textBlocks, b)
	}

	expanded := expandTables(textBlocks)

	var warnings []string
	mentions, err := p.recognize(ctx, expanded, types)
	if err != nil {
		log.WithError(err).Warn("recognizer unavailable, regex overlay only")
		warnings = append(warnings, fmt.Sprintf("recognizer unavailable, regex overlay only: %v", err))
	} else if len(mentions) > 0 {
		regions = append(regions, matchMentions(textBlocks, expanded, mentions)...)
	}

	regions = mergeRegions(regions, applyOverlay(expanded, enabled), 0.5)

	boxes := make([]entity.BoundingBox, 0, len(regions))
	w, h := float64(width), float64(height)
	for i, r := range regions {
		boxes = append(boxes, entity.BoundingBox{
			ID:         fmt.Sprintf("ocr_%d_%s", i, uuid.NewString()[:8]),
			X:          r.Left / w,
			Y:          r.Top / h,
			Width:      r.Width / w,
			Height:     r.Height / h,
			Page:       1,
			Type:       r.Type,
			Text:       r.Text,
			Confidence: r.Confidence,
			Selected:   true,
			Source:     entity.BoxSourceOCR,
		})
	}
	log.Debugf("%d regions from %d blocks on %dx%d", len(boxes), len(items), width, height)
	return boxes, warnings, nil
}

// recognize joins the block texts and asks the neural recognizer for
// sensitive mentions, mapping type ids to the labels it was trained on
// and back. Visual-only types are skipped.
func (p *Pipeline) recognize(ctx context.Context, blocks []block, types []vlm.DetectType) ([]mention, error) {
	var texts []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text); t != "" && !isTableHTML(t) {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}

	labels, customLabelToID := labelsFor(types)
	if len(labels) == 0 {
		return nil, nil
	}

	found, err := p.recognizer.Ner(ctx, strings.Join(texts, "\n"), labels)
	if err != nil {
		return nil, err
	}

	var mentions []mention
	for label, list := range found {
		typeID, ok := customLabelToID[label]
		if !ok {
			typeID = ner.TypeForLabel(label)
		}
		minLen := minMentionRunes[typeID]
		if minLen == 0 {
			minLen = 2
		}
		for _, text := range list {
			text = strings.TrimSpace(text)
			if len([]rune(text)) < minLen {
				continue
			}
			mentions = append(mentions, mention{Text: text, Type: typeID})
		}
	}
	return mentions, nil
}

// labelsFor converts the enabled types to deduplicated recognizer labels.
// Types without a trained label use their display name verbatim, and the
// reverse map records that binding so results translate back to the
// custom id.
func labelsFor(types []vlm.DetectType) ([]string, map[string]string) {
	seen := make(map[string]bool)
	customLabelToID := make(map[string]string)
	var labels []string
	for _, t := range types {
		if visualOnlyTypes[t.ID] {
			continue
		}
		label := ner.LabelForType(t.ID)
		if label == t.ID && t.Name != "" {
			label = t.Name
			customLabelToID[label] = t.ID
		}
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels, customLabelToID
}
