package writer

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/signintech/gopdf"

	"github.com/docuveil/docuveil/internal/faults"
)

// BuildPDF assembles page images back into a PDF, one image per page,
// sized so the images keep their physical dimensions at the given DPI.
// Scanned PDFs are redacted this way: render, fill, reassemble.
func BuildPDF(pages [][]byte, dpi int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, faults.New(faults.InvalidInput, "no pages to assemble")
	}
	if dpi <= 0 {
		dpi = 150
	}

	sizes := make([]gopdf.Rect, len(pages))
	for i, data := range pages {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, faults.Wrap(faults.ParseError, err, "cannot read page image %d", i+1)
		}
		// Pixels to points at the render DPI.
		sizes[i] = gopdf.Rect{
			W: float64(cfg.Width) * 72.0 / float64(dpi),
			H: float64(cfg.Height) * 72.0 / float64(dpi),
		}
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: sizes[0]})
	for i, data := range pages {
		pdf.AddPageWithOption(gopdf.PageOption{PageSize: &sizes[i]})
		holder, err := gopdf.ImageHolderByBytes(data)
		if err != nil {
			return nil, faults.Wrap(faults.ParseError, err, "cannot load page image %d", i+1)
		}
		if err := pdf.ImageByHolder(holder, 0, 0, &sizes[i]); err != nil {
			return nil, faults.Wrap(faults.Internal, err, "cannot place page image %d", i+1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot write assembled PDF")
	}
	return buf.Bytes(), nil
}
