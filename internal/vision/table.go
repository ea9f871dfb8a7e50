package vision

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// The OCR service returns recognized tables as one block whose text is an
// HTML fragment. Feeding raw HTML to the recognizer drowns it in markup,
// and a single table-sized box is useless for masking one cell, so tables
// are expanded into virtual per-cell blocks on an estimated uniform grid.

type tableCell struct {
	text string
	span int
}

var htmlTag = regexp.MustCompile(`<[^>]+>`)
var whitespace = regexp.MustCompile(`\s+`)

// expandTables replaces HTML table blocks with their cells. A table that
// fails to parse degrades to its tag-stripped text at the original block
// geometry.
func expandTables(blocks []block) []block {
	expanded := make([]block, 0, len(blocks))
	for _, b := range blocks {
		if !isTableHTML(b.Text) {
			expanded = append(expanded, b)
			continue
		}
		if cells := tableCells(b); len(cells) > 0 {
			expanded = append(expanded, cells...)
			continue
		}
		plain := strings.TrimSpace(whitespace.ReplaceAllString(htmlTag.ReplaceAllString(b.Text, " "), " "))
		if plain != "" {
			b.Text = plain
		}
		expanded = append(expanded, b)
	}
	return expanded
}

func isTableHTML(text string) bool {
	return strings.HasPrefix(text, "<table") && strings.Contains(text, "</table>")
}

// tableCells lays the parsed rows onto a uniform grid inside the table
// block: every row gets an equal share of the height, every column of the
// width, and colspans stretch across their columns. Cell confidence is
// discounted against the block's.
func tableCells(b block) []block {
	rows := parseTableRows(b.Text)
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, row := range rows {
		n := 0
		for _, c := range row {
			n += c.span
		}
		if n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return nil
	}

	rowHeight := maxF(b.Height/float64(len(rows)), 1)
	colWidth := maxF(b.Width/float64(cols), 1)

	var cells []block
	for r, row := range rows {
		col := 0
		for _, c := range row {
			if strings.TrimSpace(c.text) != "" {
				cells = append(cells, block{
					Text:       c.text,
					Left:       b.Left + float64(col)*colWidth,
					Top:        b.Top + float64(r)*rowHeight,
					Width:      colWidth * float64(c.span),
					Height:     rowHeight,
					Confidence: b.Confidence * 0.9,
					Label:      b.Label,
				})
			}
			col += c.span
		}
	}
	return cells
}

// parseTableRows tokenizes the fragment and collects td/th text per tr.
func parseTableRows(fragment string) [][]tableCell {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var rows [][]tableCell
	var current []tableCell
	inCell := false
	var cellText strings.Builder
	cellSpan := 1

	flushCell := func() {
		if inCell {
			current = append(current, tableCell{
				text: strings.TrimSpace(cellText.String()),
				span: cellSpan,
			})
			inCell = false
		}
	}
	flushRow := func() {
		flushCell()
		if len(current) > 0 {
			rows = append(rows, current)
		}
		current = nil
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			flushRow()
			return rows
		case html.StartTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "tr":
				flushRow()
			case "td", "th":
				flushCell()
				inCell = true
				cellText.Reset()
				cellSpan = 1
				for _, attr := range token.Attr {
					if attr.Key == "colspan" {
						if n, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && n > 1 {
							cellSpan = n
						}
					}
				}
			}
		case html.EndTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "td", "th":
				flushCell()
			case "tr", "table":
				flushRow()
			}
		case html.TextToken:
			if inCell {
				cellText.Write(tokenizer.Text())
			}
		}
	}
}
