package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/ocr"
	"github.com/docuveil/docuveil/internal/vlm"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// ocrServer serves the /ocr extraction endpoint with fixed blocks.
func ocrServer(t *testing.T, blocks []ocr.Block) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"boxes": blocks, "model": "has-ocr", "elapsed": 0.1,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// chatServer serves an OpenAI-compatible chat endpoint with one scripted
// reply for every call.
func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDetect_RecognizerDownDegradesWithWarning(t *testing.T) {
	srv := ocrServer(t, []ocr.Block{
		{Text: "联系电话：13812345678", X: 0.1, Y: 0.1, Width: 0.6, Height: 0.05, Confidence: 0.95, Label: ocr.LabelText},
	})
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	p := New(ocr.NewClient(ocr.WithEndpoint(srv.URL)), ner.NewClient(ner.WithBaseURL(dead.URL)), nil)
	boxes, warnings, err := p.Detect(context.Background(), testPNG(t, 200, 100),
		[]vlm.DetectType{{ID: "PHONE", Name: "电话号码"}})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	// The regex overlay still finds the phone number.
	if len(boxes) != 1 || boxes[0].Type != "PHONE" || boxes[0].Text != "13812345678" {
		t.Fatalf("boxes = %+v", boxes)
	}
	if !boxes[0].Selected {
		t.Error("overlay boxes must be pre-selected")
	}

	// The recognizer outage is visible to the caller, not just the log.
	if len(warnings) != 1 || !strings.Contains(warnings[0], "recognizer unavailable") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestDetect_HealthyRecognizerNoWarnings(t *testing.T) {
	srv := ocrServer(t, []ocr.Block{
		{Text: "联系电话：13812345678", X: 0.1, Y: 0.1, Width: 0.6, Height: 0.05, Confidence: 0.95, Label: ocr.LabelText},
	})
	chat := chatServer(t, `{}`)

	p := New(ocr.NewClient(ocr.WithEndpoint(srv.URL)), ner.NewClient(ner.WithBaseURL(chat.URL)), nil)
	boxes, warnings, err := p.Detect(context.Background(), testPNG(t, 200, 100),
		[]vlm.DetectType{{ID: "PHONE", Name: "电话号码"}})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if len(boxes) != 1 {
		t.Errorf("boxes = %+v", boxes)
	}
}

func TestDetect_SealPromotion(t *testing.T) {
	srv := ocrServer(t, []ocr.Block{
		{Text: "（印章）", X: 0.7, Y: 0.8, Width: 0.2, Height: 0.15, Confidence: 0.88, Label: ocr.LabelSeal},
	})
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	p := New(ocr.NewClient(ocr.WithEndpoint(srv.URL)), ner.NewClient(ner.WithBaseURL(dead.URL)), nil)
	boxes, warnings, err := p.Detect(context.Background(), testPNG(t, 200, 100),
		[]vlm.DetectType{{ID: "SEAL", Name: "印章"}})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(boxes) != 1 || boxes[0].Type != "SEAL" {
		t.Fatalf("boxes = %+v", boxes)
	}
	// A seal-only page never consults the recognizer, so the dead
	// endpoint must not surface.
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestDetect_UndecodableImage(t *testing.T) {
	srv := ocrServer(t, nil)
	p := New(ocr.NewClient(ocr.WithEndpoint(srv.URL)), ner.NewClient(), nil)

	if _, _, err := p.Detect(context.Background(), []byte("junk"), nil); err == nil {
		t.Error("expected a decode error")
	}
}
