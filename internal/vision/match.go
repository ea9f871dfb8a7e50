package vision

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// mention is one sensitive entity the recognizer found in the joined
// block text. It carries no position; matching projects it onto block
// geometry.
type mention struct {
	Text string
	Type string
}

// fuzzyThreshold accepts a block whose whole text is a near-miss of the
// mention, covering small OCR errors.
const fuzzyThreshold = 0.85

// subWordMinWidth is the narrowest box interpolation may produce, in
// pixels.
const subWordMinWidth = 20

// matchMentions projects recognizer mentions onto OCR blocks. Matching
// prefers the expanded per-cell blocks; raw table blocks only serve as a
// low-confidence fallback when no cell contains the mention.
func matchMentions(original, expanded []block, mentions []mention) []region {
	lev := metrics.NewLevenshtein()
	var regions []region

	for _, m := range mentions {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}

		matched := false
		for _, b := range expanded {
			if isTableHTML(b.Text) {
				continue
			}
			if idx := runeIndex(b.Text, text); idx >= 0 {
				left, width := subWordGeometry(b, idx, len([]rune(text)))
				regions = append(regions, region{
					Text:       text,
					Type:       m.Type,
					Left:       left,
					Top:        b.Top,
					Width:      width,
					Height:     b.Height,
					Confidence: 1.0,
					Source:     "text_match",
				})
				matched = true
				break
			}
			if strutil.Similarity(text, b.Text, lev) > fuzzyThreshold {
				regions = append(regions, region{
					Text:       text,
					Type:       m.Type,
					Left:       b.Left,
					Top:        b.Top,
					Width:      b.Width,
					Height:     b.Height,
					Confidence: 0.9,
					Source:     "fuzzy_match",
				})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, b := range original {
			if isTableHTML(b.Text) && strings.Contains(b.Text, text) {
				regions = append(regions, region{
					Text:       text,
					Type:       m.Type,
					Left:       b.Left,
					Top:        b.Top,
					Width:      b.Width,
					Height:     b.Height,
					Confidence: 0.8,
					Source:     "table_fallback",
				})
				break
			}
		}
	}
	return regions
}

// subWordGeometry estimates where a match sits inside a block by linear
// character interpolation. Long blocks, tiny matches and multi-field
// lines interpolate too poorly to trust; those take the whole block, as
// does a match covering most of it.
func subWordGeometry(b block, startRune, matchRunes int) (left, width float64) {
	textRunes := len([]rune(b.Text))
	if textRunes == 0 {
		return b.Left, b.Width
	}

	ratio := float64(matchRunes) / float64(textRunes)
	if textRunes > 100 || ratio < 0.1 || isMultiField(b.Text) {
		return b.Left, b.Width
	}
	if ratio > 0.8 {
		return b.Left, b.Width
	}

	left = b.Left + float64(startRune)/float64(textRunes)*b.Width
	width = maxF(ratio*b.Width, subWordMinWidth)
	return left, width
}

// isMultiField detects lines like "姓名：张三  电话：138..." where cell
// separators break the linear position assumption.
func isMultiField(text string) bool {
	separators := strings.Count(text, "：") + strings.Count(text, ":") + strings.Count(text, "|")
	return separators >= 2 || strings.Contains(text, "  ") || strings.Contains(text, "\t")
}

// runeIndex returns the rune offset of substr in s, or -1.
func runeIndex(s, substr string) int {
	byteIdx := strings.Index(s, substr)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}
