package writer

import (
	"os"
	"strings"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/extractor"
	unipdf "github.com/unidoc/unipdf/v3/model"

	"github.com/docuveil/docuveil/internal/faults"
)

// coverFontSize is the size of the replacement text painted over a
// covered span.
const coverFontSize = 10

// RedactPDFText rewrites a text-layer PDF with every replacement applied
// and writes the result to outputPath. Each occurrence is located through
// the extractor's text marks, covered with a white rectangle, and the
// replacement text is painted over the cover. Returns the number of
// spans covered.
func RedactPDFText(inputPath, outputPath string, replacements []Replacement) (int, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot open PDF")
	}
	defer f.Close()

	reader, err := unipdf.NewPdfReader(f)
	if err != nil {
		return 0, faults.Wrap(faults.ParseError, err, "cannot read PDF")
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return 0, faults.Wrap(faults.ParseError, err, "cannot count PDF pages")
	}

	ordered := orderedByLength(replacements)

	c := creator.New()
	total := 0
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return 0, faults.Wrap(faults.ParseError, err, "cannot read PDF page %d", i)
		}
		covers, err := locateCovers(page, ordered)
		if err != nil {
			return 0, err
		}
		if err := c.AddPage(page); err != nil {
			return 0, faults.Wrap(faults.Internal, err, "cannot copy PDF page %d", i)
		}
		mediaBox, err := page.GetMediaBox()
		if err != nil {
			return 0, faults.Wrap(faults.ParseError, err, "cannot read page media box")
		}
		for _, cov := range covers {
			// Creator coordinates run top-down from the page's
			// upper left corner.
			x := cov.llx - mediaBox.Llx
			y := mediaBox.Ury - cov.ury
			w := cov.urx - cov.llx
			h := cov.ury - cov.lly

			rect := c.NewRectangle(x, y, w, h)
			rect.SetFillColor(creator.ColorWhite)
			rect.SetBorderColor(creator.ColorWhite)
			rect.SetBorderWidth(0)
			if err := c.Draw(rect); err != nil {
				return 0, faults.Wrap(faults.Internal, err, "cannot cover span on page %d", i)
			}

			para := c.NewParagraph(cov.text)
			para.SetFontSize(coverFontSize)
			para.SetColor(creator.ColorBlack)
			para.SetPos(x, y)
			if err := c.Draw(para); err != nil {
				return 0, faults.Wrap(faults.Internal, err, "cannot write replacement on page %d", i)
			}
			total++
		}
	}

	if err := c.WriteToFile(outputPath); err != nil {
		return 0, faults.Wrap(faults.Internal, err, "cannot write output PDF")
	}
	return total, nil
}

// cover is one located occurrence in PDF user space, bottom-left origin.
type cover struct {
	llx, lly, urx, ury float64
	text               string
}

// locateCovers finds every replacement occurrence on a page and resolves
// it to a bounding box through the extractor's text marks.
func locateCovers(page *unipdf.PdfPage, replacements []Replacement) ([]cover, error) {
	ex, err := extractor.New(page)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot extract page text")
	}
	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot extract page text")
	}
	text := pageText.Text()
	marks := pageText.Marks()

	var covers []cover
	claimed := make([]bool, len(text))
	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		start := 0
		for {
			pos := strings.Index(text[start:], r.Old)
			if pos < 0 {
				break
			}
			pos += start
			end := pos + len(r.Old)
			start = end
			if overlapsClaimed(claimed, pos, end) {
				continue
			}
			span, err := marks.RangeOffset(pos, end)
			if err != nil {
				continue
			}
			bbox, ok := span.BBox()
			if !ok {
				continue
			}
			for i := pos; i < end; i++ {
				claimed[i] = true
			}
			covers = append(covers, cover{
				llx:  bbox.Llx,
				lly:  bbox.Lly,
				urx:  bbox.Urx,
				ury:  bbox.Ury,
				text: r.New,
			})
		}
	}
	return covers, nil
}

func overlapsClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end && i < len(claimed); i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}
