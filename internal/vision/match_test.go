package vision

import "testing"

func TestMatchMentions_ExactSubstring(t *testing.T) {
	blocks := []block{
		{Text: "电话：13812345678", Left: 100, Top: 50, Width: 160, Height: 20, Confidence: 0.95},
	}

	regions := matchMentions(blocks, blocks, []mention{{Text: "13812345678", Type: "PHONE"}})
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}

	r := regions[0]
	if r.Source != "text_match" || r.Confidence != 1.0 {
		t.Errorf("unexpected match %+v", r)
	}
	// "电话：" is 3 of 14 runes; the match starts at rune 3 and covers
	// 11/14 of the width.
	wantLeft := 100 + 3.0/14.0*160
	wantWidth := 11.0 / 14.0 * 160
	if r.Left != wantLeft || r.Width != wantWidth {
		t.Errorf("interpolated geometry = (%f, %f), want (%f, %f)", r.Left, r.Width, wantLeft, wantWidth)
	}
}

func TestMatchMentions_FuzzyFallback(t *testing.T) {
	// OCR misread one digit; exact matching fails but the block text is a
	// near-miss of the mention.
	blocks := []block{
		{Text: "13812345679", Left: 0, Top: 0, Width: 110, Height: 20},
	}

	regions := matchMentions(blocks, blocks, []mention{{Text: "13812345678", Type: "PHONE"}})
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	r := regions[0]
	if r.Source != "fuzzy_match" || r.Confidence != 0.9 {
		t.Errorf("expected a fuzzy whole-block match, got %+v", r)
	}
	if r.Width != 110 {
		t.Error("fuzzy matches take the whole block")
	}
}

func TestMatchMentions_TableFallback(t *testing.T) {
	original := []block{
		{Text: "<table><tr><td>张三</td></tr></table>", Left: 0, Top: 0, Width: 400, Height: 100},
	}
	// Expansion produced no cell containing the mention.
	expanded := []block{
		{Text: "李四", Left: 0, Top: 0, Width: 200, Height: 50},
	}

	regions := matchMentions(original, expanded, []mention{{Text: "张三", Type: "PERSON"}})
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	if regions[0].Source != "table_fallback" || regions[0].Confidence != 0.8 {
		t.Errorf("unexpected match %+v", regions[0])
	}
}

func TestMatchMentions_Unlocatable(t *testing.T) {
	blocks := []block{{Text: "今天天气不错", Width: 100, Height: 20}}
	regions := matchMentions(blocks, blocks, []mention{
		{Text: "王五", Type: "PERSON"},
		{Text: "", Type: "PERSON"},
	})
	if len(regions) != 0 {
		t.Errorf("expected no regions, got %+v", regions)
	}
}

func TestSubWordGeometry_WholeBlockRules(t *testing.T) {
	base := block{Left: 0, Top: 0, Width: 500, Height: 20}

	// A tiny match in a long line interpolates too poorly to trust.
	long := base
	long.Text = repeatRunes('字', 120)
	if left, width := subWordGeometry(long, 10, 30); left != long.Left || width != long.Width {
		t.Error("blocks over 100 runes must take the whole block")
	}

	small := base
	small.Text = repeatRunes('字', 50)
	if left, width := subWordGeometry(small, 0, 4); left != small.Left || width != small.Width {
		t.Error("a match under a tenth of the text must take the whole block")
	}

	multi := base
	multi.Text = "姓名：张三 电话：13812345678"
	idx := runeIndex(multi.Text, "张三")
	if left, width := subWordGeometry(multi, idx, 2); left != multi.Left || width != multi.Width {
		t.Error("multi-field lines must take the whole block")
	}

	most := base
	most.Text = "13812345678。"
	if left, width := subWordGeometry(most, 0, 11); left != most.Left || width != most.Width {
		t.Error("a match covering most of the block takes all of it")
	}
}

func TestSubWordGeometry_MinimumWidth(t *testing.T) {
	// 1/10 of 40px is below the floor.
	b := block{Left: 0, Width: 40, Height: 10, Text: "某某某某某某某某某甲"}
	if _, w := subWordGeometry(b, 9, 1); w != subWordMinWidth {
		t.Errorf("expected the minimum width floor, got %f", w)
	}
}

func TestRuneIndex(t *testing.T) {
	if got := runeIndex("电话：138", "138"); got != 3 {
		t.Errorf("runeIndex = %d, want 3", got)
	}
	if got := runeIndex("abc", "z"); got != -1 {
		t.Errorf("runeIndex = %d, want -1", got)
	}
}

func repeatRunes(r rune, n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = r
	}
	return string(runes)
}
