package writer

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
)

// RedactImage fills every approved region with solid black and returns
// the result as PNG. The image is EXIF-corrected first so unit
// coordinates land where the reviewer saw them.
func RedactImage(data []byte, boxes []entity.BoundingBox) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot decode image")
	}

	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()
	black := image.NewUniform(color.Black)
	for _, b := range boxes {
		if !b.Selected {
			continue
		}
		rect := boxPixels(b, bounds.Dx(), bounds.Dy())
		draw.Draw(canvas, rect, black, image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot encode redacted image")
	}
	return buf.Bytes(), nil
}
