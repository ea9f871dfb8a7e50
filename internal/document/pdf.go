package document

import (
	"bytes"
	"image/png"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/unidoc/unipdf/v3/common"
	"github.com/unidoc/unipdf/v3/extractor"
	unipdf "github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/render"

	"github.com/docuveil/docuveil/internal/faults"
)

func init() {
	common.SetLogger(common.NewConsoleLogger(common.LogLevelError))
}

// pageCount reads the page count without parsing page content.
func pageCount(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, faults.Wrap(faults.ParseError, err, "cannot read PDF")
	}
	return ctx.PageCount, nil
}

// parsePDF extracts per-page text and classifies the document. Pages
// averaging under the density threshold mean the text layer is absent or
// vestigial, so the document goes down the scanned path.
func parsePDF(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot open PDF")
	}
	defer f.Close()

	reader, err := unipdf.NewPdfReaderLazy(f)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot read PDF")
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot count PDF pages")
	}

	pages := make([]string, 0, numPages)
	totalRunes := 0
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return nil, faults.Wrap(faults.ParseError, err, "cannot read PDF page %d", i)
		}
		text := ""
		if ex, err := extractor.New(page); err == nil {
			if extracted, err := ex.ExtractText(); err == nil {
				text = extracted
			}
		}
		pages = append(pages, text)
		totalRunes += len([]rune(strings.TrimSpace(text)))
	}

	avg := 0
	if numPages > 0 {
		avg = totalRunes / numPages
	}
	if avg < textDensityThreshold {
		return &ParseResult{
			FileType:  TypePDFScanned,
			PageCount: numPages,
			IsScanned: true,
		}, nil
	}
	return &ParseResult{
		FileType:  TypePDF,
		Content:   strings.Join(pages, "\n\n"),
		PageCount: numPages,
		Pages:     pages,
	}, nil
}

// renderPDFPage rasterizes one page to PNG at the given DPI.
func renderPDFPage(path string, pageNum, dpi int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot open PDF")
	}
	defer f.Close()

	reader, err := unipdf.NewPdfReaderLazy(f)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot read PDF")
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot count PDF pages")
	}
	if pageNum < 1 || pageNum > numPages {
		return nil, faults.New(faults.InvalidInput, "page %d out of range, PDF has %d pages", pageNum, numPages)
	}

	page, err := reader.GetPage(pageNum)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot read PDF page %d", pageNum)
	}

	device := render.NewImageDevice()
	mediaBox, err := page.GetMediaBox()
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot read page media box")
	}
	// PDF points are 1/72 inch.
	device.OutputWidth = int(float64(mediaBox.Urx-mediaBox.Llx) * float64(dpi) / 72.0)

	img, err := device.Render(page)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot render PDF page %d", pageNum)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot encode page image")
	}
	return buf.Bytes(), nil
}
