package vision

import "regexp"

// Structured identifiers have reliable shapes; a regex pass over the OCR
// text catches the ones the recognizer paraphrases or misses. Only
// patterns whose type is enabled run.
var overlayPatterns = map[string]*regexp.Regexp{
	"PHONE":          regexp.MustCompile(`1[3-9]\d{9}`),
	"EMAIL":          regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	"ID_CARD":        regexp.MustCompile(`[1-9]\d{5}(?:19|20)\d{2}(?:0[1-9]|1[0-2])(?:0[1-9]|[12]\d|3[01])\d{3}[\dXx]`),
	"BANK_CARD":      regexp.MustCompile(`[3-6]\d{15,18}`),
	"COMPANY":        regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,20}(?:有限公司|股份有限公司|集团|公司)`),
	"BANK_NAME":      regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,10}(?:银行)[\x{4e00}-\x{9fa5}]{0,10}(?:分行|支行|营业部)?`),
	"ACCOUNT_NUMBER": regexp.MustCompile(`(?:账号|帐号|账户号)[：:\s]*\d{10,25}`),
	"DATE":           regexp.MustCompile(`\d{4}[-/年]\d{1,2}[-/月]\d{1,2}日?`),
}

// applyOverlay runs the enabled structural patterns over each block and
// interpolates match geometry the same way mention matching does.
func applyOverlay(blocks []block, enabledTypes map[string]bool) []region {
	var regions []region
	for _, b := range blocks {
		textRunes := []rune(b.Text)
		for typeID, pattern := range overlayPatterns {
			if !enabledTypes[typeID] {
				continue
			}
			for _, loc := range pattern.FindAllStringIndex(b.Text, -1) {
				matchText := b.Text[loc[0]:loc[1]]
				startRune := len([]rune(b.Text[:loc[0]]))
				left, width := overlayGeometry(b, len(textRunes), startRune, len([]rune(matchText)))
				regions = append(regions, region{
					Text:       matchText,
					Type:       typeID,
					Left:       left,
					Top:        b.Top,
					Width:      width,
					Height:     b.Height,
					Confidence: 1.0,
					Source:     "regex",
				})
			}
		}
	}
	return regions
}

// overlayGeometry interpolates like subWordGeometry but without the long
// block and multi-field opt-outs: regex matches have exact offsets, so
// interpolation stays trustworthy on busy lines.
func overlayGeometry(b block, textRunes, startRune, matchRunes int) (left, width float64) {
	if textRunes == 0 {
		return b.Left, b.Width
	}
	ratio := float64(matchRunes) / float64(textRunes)
	if ratio > 0.8 {
		return b.Left, b.Width
	}
	left = b.Left + float64(startRune)/float64(textRunes)*b.Width
	width = maxF(ratio*b.Width, subWordMinWidth)
	return left, width
}
