// Package matcher applies the taxonomy's compiled regex patterns to a
// document and emits high-confidence spans.
package matcher

import (
	"fmt"
	"unicode/utf8"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// DefaultConfidence is used when a type does not bake in its own score.
const DefaultConfidence = 0.95

// Matcher scans documents with the registry's patterns.
type Matcher struct {
	store *taxonomy.Store
}

// New creates a matcher backed by the given registry.
func New(store *taxonomy.Store) *Matcher {
	return &Matcher{store: store}
}

// Extract returns one entity per non-overlapping match of every enabled
// pattern-bearing type in typeIDs. Offsets are rune-based. Overlaps across
// types are left for the cross-validation stage to resolve.
func (m *Matcher) Extract(doc string, typeIDs []string) []entity.Entity {
	if doc == "" {
		return nil
	}

	var out []entity.Entity
	for _, id := range typeIDs {
		cfg, err := m.store.Get(id)
		if err != nil || !cfg.Enabled {
			continue
		}
		re, ok := m.store.Pattern(id)
		if !ok {
			continue
		}

		confidence := cfg.Confidence
		if confidence == 0 {
			confidence = DefaultConfidence
		}

		for i, loc := range re.FindAllStringIndex(doc, -1) {
			start := utf8.RuneCountInString(doc[:loc[0]])
			text := doc[loc[0]:loc[1]]
			out = append(out, entity.Entity{
				ID:         fmt.Sprintf("%s_re_%d", id, i),
				Text:       text,
				Type:       id,
				Start:      start,
				End:        start + utf8.RuneCountInString(text),
				Page:       1,
				Confidence: confidence,
				Source:     entity.SourceRegex,
				Selected:   true,
			})
		}
	}
	return out
}
