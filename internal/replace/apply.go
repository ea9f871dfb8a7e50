package replace

import (
	"sort"

	"github.com/docuveil/docuveil/internal/entity"
)

// ApplyToText substitutes every selected entity in text, working from the
// end so earlier offsets stay valid. Entities with out-of-range or stale
// offsets are skipped rather than corrupting the document.
func ApplyToText(text string, entities []entity.Entity, ctx *Context) string {
	runes := []rune(text)

	sorted := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Selected {
			sorted = append(sorted, e)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	// Replacements are generated in document order so smart-mode
	// numbering reads naturally.
	byStart := make([]entity.Entity, len(sorted))
	copy(byStart, sorted)
	sort.Slice(byStart, func(i, j int) bool { return byStart[i].Start < byStart[j].Start })
	replacements := make(map[string]string, len(byStart))
	for _, e := range byStart {
		replacements[e.ID] = ctx.Replacement(e)
	}

	for _, e := range sorted {
		if e.Start < 0 || e.End > len(runes) || e.Start >= e.End {
			continue
		}
		if string(runes[e.Start:e.End]) != e.Text {
			continue
		}
		out := make([]rune, 0, len(runes))
		out = append(out, runes[:e.Start]...)
		out = append(out, []rune(replacements[e.ID])...)
		out = append(out, runes[e.End:]...)
		runes = out
	}
	return string(runes)
}
