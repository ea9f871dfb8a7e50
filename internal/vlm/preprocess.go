package vlm

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
)

// maxImageSide caps the longer edge before upload. Larger scans blow the
// model's context for no detection benefit.
const maxImageSide = 2048

// jpegQuality for the uploaded copy
const jpegQuality = 85

// preprocess applies EXIF orientation, downscales oversized images and
// re-encodes to JPEG. Returns the base64 payload and the dimensions the
// model will see, which the coordinate reconciliation needs.
func preprocess(data []byte) (string, int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageSide || h > maxImageSide {
		img = imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos)
		bounds = img.Bounds()
		w, h = bounds.Dx(), bounds.Dy()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), w, h, nil
}
