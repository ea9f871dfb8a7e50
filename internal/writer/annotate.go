package writer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
)

const outlineWidth = 2

// labelRunes caps the region text shown next to a box.
const labelRunes = 10

// Annotate draws each region's outline and type label onto the image for
// review previews. Colors maps entity type ids to "#rrggbb" strings;
// unknown types fall back to red.
func Annotate(data []byte, boxes []entity.BoundingBox, colors map[string]string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "cannot decode image")
	}

	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()
	for _, b := range boxes {
		c := parseHexColor(colors[b.Type])
		rect := boxPixels(b, bounds.Dx(), bounds.Dy())
		drawOutline(canvas, rect, c)
		drawLabel(canvas, rect, boxLabel(b), c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot encode annotated image")
	}
	return buf.Bytes(), nil
}

func boxLabel(b entity.BoundingBox) string {
	text := []rune(b.Text)
	if len(text) > labelRunes {
		return fmt.Sprintf("[%s] %s...", b.Type, string(text[:labelRunes]))
	}
	if len(text) == 0 {
		return fmt.Sprintf("[%s]", b.Type)
	}
	return fmt.Sprintf("[%s] %s", b.Type, string(text))
}

func drawOutline(dst draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+outlineWidth)
	bottom := image.Rect(r.Min.X, r.Max.Y-outlineWidth, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+outlineWidth, r.Max.Y)
	right := image.Rect(r.Max.X-outlineWidth, r.Min.Y, r.Max.X, r.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Src)
	}
}

// drawLabel paints the label just above the box, or inside its top edge
// when the box touches the top of the image.
func drawLabel(dst draw.Image, r image.Rectangle, label string, c color.Color) {
	y := r.Min.Y - 4
	if y < basicfont.Face7x13.Height {
		y = r.Min.Y + basicfont.Face7x13.Height + 2
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X, y),
	}
	d.DrawString(label)
}

// parseHexColor reads "#rrggbb", returning red when the string does not
// parse.
func parseHexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 0xff, A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
