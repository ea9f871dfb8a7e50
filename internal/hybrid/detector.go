// Package hybrid implements the three-stage text detector: neural
// recognition, regex matching, then cross-validation with coreference
// linking.
package hybrid

import (
	"context"
	"fmt"
	"sort"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/matcher"
	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// Mode selects how the neural stage runs.
type Mode string

const (
	// ModeNER asks for a flat entity list
	ModeNER Mode = "ner"

	// ModeHide asks for tag substitution; the structured tags become coref ids
	ModeHide Mode = "hide"

	// ModeAuto runs both and unions the candidates
	ModeAuto Mode = "auto"
)

// nerConfidence is assigned to spans located from neural mentions.
const nerConfidence = 0.95

// Result is the detector output for one document.
type Result struct {
	// Entities is the final de-duplicated list, sorted by start position
	Entities []entity.Entity `json:"entities"`

	// Masked is the tag-substituted text when the hide stage ran
	Masked string `json:"masked,omitempty"`

	// Mapping is the tag-to-originals map from the hide stage
	Mapping map[string][]string `json:"mapping,omitempty"`

	// Warnings records stage failures the detector survived
	Warnings []string `json:"warnings,omitempty"`
}

// Detector fuses the neural recognizer with the regex matcher.
type Detector struct {
	recognizer *ner.Client
	matcher    *matcher.Matcher
	store      *taxonomy.Store
	log        *logger.Logger
}

// New creates a detector.
func New(recognizer *ner.Client, m *matcher.Matcher, store *taxonomy.Store, log *logger.Logger) *Detector {
	if log == nil {
		log = logger.Get()
	}
	return &Detector{recognizer: recognizer, matcher: m, store: store, log: log}
}

// Detect runs the three stages over doc for the given enabled type ids.
// Empty text returns an empty result without error. Neural-stage failures
// degrade to regex-only detection and are recorded as warnings.
func (d *Detector) Detect(ctx context.Context, doc string, typeIDs []string, mode Mode) (*Result, error) {
	result := &Result{Mapping: map[string][]string{}}
	if doc == "" {
		return result, nil
	}
	if mode == "" {
		mode = ModeNER
	}

	docRunes := []rune(doc)

	// Stage 1: neural recognition.
	var candidates []entity.Entity
	if mode == ModeNER || mode == ModeAuto {
		found, err := d.neuralFlat(ctx, doc, docRunes, typeIDs)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("ner stage failed: %v", err))
			d.log.WithOperation("hybrid.detect").WithError(err).Warn("degrading to regex-only detection")
		} else {
			candidates = append(candidates, found...)
		}
	}
	if mode == ModeHide || mode == ModeAuto {
		found, masked, mapping, err := d.neuralHide(ctx, doc, docRunes, typeIDs)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("hide stage failed: %v", err))
			d.log.WithOperation("hybrid.detect").WithError(err).Warn("hide stage unavailable")
		} else {
			candidates = append(candidates, found...)
			result.Masked = masked
			result.Mapping = mapping
		}
	}

	// Stage 2: regex.
	candidates = append(candidates, d.matcher.Extract(doc, typeIDs)...)

	// Stage 3: cross-validate, resolve overlaps, link coreference.
	result.Entities = crossValidate(docRunes, candidates)
	return result, nil
}

// neuralFlat maps the enabled types to recognizer labels, calls ner and
// locates every occurrence of each returned mention.
func (d *Detector) neuralFlat(ctx context.Context, doc string, docRunes []rune, typeIDs []string) ([]entity.Entity, error) {
	mentions, err := d.recognizer.Ner(ctx, doc, ner.LabelsForTypes(typeIDs))
	if err != nil {
		return nil, err
	}

	var out []entity.Entity
	n := 0
	for label, texts := range mentions {
		typeID := ner.TypeForLabel(label)
		for _, text := range texts {
			for _, span := range occurrences(docRunes, []rune(text)) {
				out = append(out, entity.Entity{
					ID:         fmt.Sprintf("ner_%d", n),
					Text:       text,
					Type:       typeID,
					Start:      span[0],
					End:        span[1],
					Page:       1,
					Confidence: nerConfidence,
					Source:     entity.SourceNER,
					Selected:   true,
				})
				n++
			}
			// Mentions the model paraphrased are not locatable and are
			// dropped here.
		}
	}
	return out, nil
}

// neuralHide runs the hide capability; each mapping entry's structured tag
// becomes the coref id of the located spans.
func (d *Detector) neuralHide(ctx context.Context, doc string, docRunes []rune, typeIDs []string) ([]entity.Entity, string, map[string][]string, error) {
	masked, mapping, err := d.recognizer.Hide(ctx, doc, ner.LabelsForTypes(typeIDs), true)
	if err != nil {
		return nil, "", nil, err
	}

	var out []entity.Entity
	n := 0
	for tag, originals := range mapping {
		typeID := typeFromTag(tag)
		for _, text := range originals {
			for _, span := range occurrences(docRunes, []rune(text)) {
				out = append(out, entity.Entity{
					ID:         fmt.Sprintf("hide_%d", n),
					Text:       text,
					Type:       typeID,
					Start:      span[0],
					End:        span[1],
					Page:       1,
					Confidence: nerConfidence,
					Source:     entity.SourceNER,
					CorefID:    tag,
					Selected:   true,
				})
				n++
			}
		}
	}
	return out, masked, mapping, nil
}

// typeFromTag derives a taxonomy id from a structured tag. Generic
// categories like 编号 resolve through the subtype instead.
func typeFromTag(tag string) string {
	t, ok := ner.ParseTag(tag)
	if !ok {
		return "PERSON"
	}
	if id := ner.TypeForLabel(t.Category); id != t.Category {
		return id
	}
	if id := ner.TypeForLabel(t.Subtype); id != t.Subtype {
		return id
	}
	return ner.TypeForLabel(t.Category)
}

// occurrences returns all non-overlapping positions of needle in haystack
// as [start, end) rune offsets.
func occurrences(haystack, needle []rune) [][2]int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var out [][2]int
	for i := 0; i+len(needle) <= len(haystack); {
		if match(haystack, needle, i) {
			out = append(out, [2]int{i, i + len(needle)})
			i += len(needle)
		} else {
			i++
		}
	}
	return out
}

func match(haystack, needle []rune, at int) bool {
	for j, r := range needle {
		if haystack[at+j] != r {
			return false
		}
	}
	return true
}

// crossValidate implements stage 3: position fix-up, per-position
// deduplication, overlap resolution and coreference assignment.
func crossValidate(docRunes []rune, candidates []entity.Entity) []entity.Entity {
	if len(candidates) == 0 {
		return nil
	}

	// 1. Position fix-up: repair offsets the upstream stages got wrong,
	// skipping positions already claimed by a fixed candidate.
	claimed := make(map[[2]int]bool)
	fixed := make([]entity.Entity, 0, len(candidates))
	for _, c := range candidates {
		if c.Start >= 0 && c.End <= len(docRunes) && c.Start < c.End &&
			string(docRunes[c.Start:c.End]) == c.Text {
			fixed = append(fixed, c)
			claimed[[2]int{c.Start, c.End}] = true
			continue
		}
		relocated := false
		for _, span := range occurrences(docRunes, []rune(c.Text)) {
			if claimed[span] {
				continue
			}
			c.Start, c.End = span[0], span[1]
			claimed[span] = true
			fixed = append(fixed, c)
			relocated = true
			break
		}
		if !relocated {
			// Not present in the document at all; discard.
			continue
		}
	}

	// 2. Per-position deduplication. Identical spans from different
	// stages collapse to the strongest candidate, keeping the highest
	// confidence seen in the group.
	type posKey struct{ start, end int }
	groups := make(map[posKey][]entity.Entity)
	for _, c := range fixed {
		k := posKey{c.Start, c.End}
		groups[k] = append(groups[k], c)
	}

	deduped := make([]entity.Entity, 0, len(groups))
	for _, group := range groups {
		winner := group[0]
		maxConf := group[0].Confidence
		tag := group[0].CorefID
		for _, c := range group[1:] {
			if c.Confidence > maxConf {
				maxConf = c.Confidence
			}
			if c.CorefID != "" && tag == "" {
				tag = c.CorefID
			}
			if stronger(c, winner) {
				winner = c
			}
		}
		winner.Confidence = maxConf
		if winner.CorefID == "" {
			winner.CorefID = tag
		}
		deduped = append(deduped, winner)
	}

	// 3. Overlap resolution: longest-first greedy acceptance so that a
	// long surface form is never shadowed by one of its prefixes.
	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].Start != deduped[j].Start {
			return deduped[i].Start < deduped[j].Start
		}
		return deduped[i].Len() > deduped[j].Len()
	})
	accepted := make([]entity.Entity, 0, len(deduped))
	lastEnd := -1
	for _, c := range deduped {
		if c.Start < lastEnd {
			continue
		}
		accepted = append(accepted, c)
		lastEnd = c.End
	}

	// 4. Coreference: identical surface form of the same type shares an
	// id. Structured tags from the hide stage carry cross-chunk identity
	// and win over generated ids.
	type corefKey struct{ text, typeID string }
	tags := make(map[corefKey]string)
	for _, c := range accepted {
		k := corefKey{c.Text, c.Type}
		if c.CorefID != "" && tags[k] == "" {
			tags[k] = c.CorefID
		}
	}
	generated := make(map[corefKey]string)
	nextCoref := 0
	for i := range accepted {
		k := corefKey{accepted[i].Text, accepted[i].Type}
		if tag := tags[k]; tag != "" {
			accepted[i].CorefID = tag
			continue
		}
		if _, ok := generated[k]; !ok {
			generated[k] = fmt.Sprintf("coref_%d", nextCoref)
			nextCoref++
		}
		accepted[i].CorefID = generated[k]
	}

	// 5. Id rewrite in start order.
	for i := range accepted {
		accepted[i].ID = fmt.Sprintf("entity_%d", i)
	}
	return accepted
}

// stronger compares two same-position candidates: higher confidence, then
// source rank, then type priority, then lexicographically lower type id.
func stronger(a, b entity.Entity) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Source.Rank() != b.Source.Rank() {
		return a.Source.Rank() > b.Source.Rank()
	}
	if taxonomy.Priority(a.Type) != taxonomy.Priority(b.Type) {
		return taxonomy.Priority(a.Type) > taxonomy.Priority(b.Type)
	}
	return a.Type < b.Type
}
