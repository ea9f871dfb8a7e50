package pipeline

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

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/modelcfg"
	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/ocr"
	"github.com/docuveil/docuveil/internal/vision"
)

func TestFuse_DropsOverlappingVisionBoxes(t *testing.T) {
	ocrBoxes := []entity.BoundingBox{
		{ID: "ocr_0", Type: "PHONE", X: 0.10, Y: 0.10, Width: 0.30, Height: 0.05, Source: entity.BoxSourceOCR},
	}
	glmBoxes := []entity.BoundingBox{
		// Heavy overlap with the OCR box.
		{ID: "glm_0", Type: "PHONE", X: 0.12, Y: 0.10, Width: 0.30, Height: 0.05, Source: entity.BoxSourceVLM},
		// Elsewhere on the page.
		{ID: "glm_1", Type: "SEAL", X: 0.70, Y: 0.80, Width: 0.20, Height: 0.15, Source: entity.BoxSourceVLM},
	}

	merged := fuse(ocrBoxes, glmBoxes)
	if len(merged) != 2 {
		t.Fatalf("expected 2 boxes after fusing, got %d", len(merged))
	}
	if merged[0].ID != "ocr_0" {
		t.Error("measured OCR geometry must come first")
	}
	if merged[1].ID != "glm_1" {
		t.Errorf("expected the non-overlapping vision box to survive, got %s", merged[1].ID)
	}
}

func TestFuse_KeepsLowOverlapBoxes(t *testing.T) {
	ocrBoxes := []entity.BoundingBox{
		{ID: "ocr_0", X: 0.0, Y: 0.0, Width: 0.2, Height: 0.2},
	}
	glmBoxes := []entity.BoundingBox{
		// Corner touch: IoU well under the threshold.
		{ID: "glm_0", X: 0.18, Y: 0.18, Width: 0.2, Height: 0.2},
	}

	merged := fuse(ocrBoxes, glmBoxes)
	if len(merged) != 2 {
		t.Errorf("a below-threshold overlap must keep both boxes, got %d", len(merged))
	}
}

func TestFuse_EmptyPipelines(t *testing.T) {
	glmBoxes := []entity.BoundingBox{{ID: "glm_0", X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}}

	if merged := fuse(nil, glmBoxes); len(merged) != 1 {
		t.Errorf("vision-only results must pass through, got %d", len(merged))
	}
	if merged := fuse(nil, nil); len(merged) != 0 {
		t.Errorf("expected no boxes, got %d", len(merged))
	}
}

func TestMerge_ManualBoxes(t *testing.T) {
	fused := []entity.BoundingBox{
		{ID: "ocr_0", X: 0.10, Y: 0.10, Width: 0.30, Height: 0.05},
	}
	extras := []entity.BoundingBox{
		// Redundant with the detected box.
		{ID: "manual_0", X: 0.11, Y: 0.10, Width: 0.30, Height: 0.05, Source: entity.BoxSourceManual},
		// A region the pipelines missed.
		{ID: "manual_1", X: 0.60, Y: 0.60, Width: 0.10, Height: 0.10, Source: entity.BoxSourceManual},
	}

	merged := Merge(fused, extras)
	if len(merged) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(merged))
	}
	if merged[1].ID != "manual_1" {
		t.Errorf("expected the novel manual box to be kept, got %s", merged[1].ID)
	}
}

func TestDetectTypes(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	types := s.DetectTypes(ModeGLMVision)
	if len(types) == 0 {
		t.Fatal("expected the preset vision types")
	}
	for _, dt := range types {
		if dt.ID == "" || dt.Name == "" {
			t.Errorf("incomplete detect type %+v", dt)
		}
	}

	// Disabling the pipeline empties its detect list, which skips it.
	if _, err := s.Toggle(ModeGLMVision); err != nil {
		t.Fatal(err)
	}
	if got := s.DetectTypes(ModeGLMVision); got != nil {
		t.Errorf("a disabled pipeline must yield nil, got %v", got)
	}
}

func TestFuserDetect_SurfacesRecognizerDegradation(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	ocrSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"boxes": []ocr.Block{
				{Text: "联系电话：13812345678", X: 0.1, Y: 0.1, Width: 0.6, Height: 0.05, Confidence: 0.95, Label: ocr.LabelText},
			},
			"model": "has-ocr", "elapsed": 0.1,
		})
	}))
	t.Cleanup(ocrSrv.Close)
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	cfg, err := NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	// Only the ocr_has pipeline runs.
	if _, err := cfg.Toggle(ModeGLMVision); err != nil {
		t.Fatal(err)
	}
	models, err := modelcfg.NewStore("")
	if err != nil {
		t.Fatal(err)
	}

	ocrHas := vision.New(ocr.NewClient(ocr.WithEndpoint(ocrSrv.URL)), ner.NewClient(ner.WithBaseURL(dead.URL)), nil)
	f := NewFuser(ocrHas, NewGLMPipeline(models, nil, nil, nil), cfg, nil)

	result, err := f.Detect(context.Background(), buf.Bytes(), 3)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	// The regex overlay keeps detecting while the recognizer is down,
	// and the outage is recorded on the result, not just logged.
	if len(result.Boxes) != 1 || result.Boxes[0].Type != "PHONE" {
		t.Fatalf("boxes = %+v", result.Boxes)
	}
	if result.Boxes[0].Page != 3 {
		t.Errorf("page = %d, want 3", result.Boxes[0].Page)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "recognizer unavailable") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestStore_TypeLifecycle(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatal(err)
	}

	added := TypeConfig{ID: "CAPTCHA", Name: "验证码截图", Enabled: true, Order: 99}
	if err := s.AddType(ModeGLMVision, added); err != nil {
		t.Fatalf("AddType() error = %v", err)
	}
	if err := s.AddType(ModeGLMVision, added); err == nil {
		t.Error("duplicate type ids must be rejected")
	}

	enabled, err := s.ToggleType(ModeGLMVision, "CAPTCHA")
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("expected the toggle to disable the new type")
	}

	if err := s.DeleteType(ModeGLMVision, "CAPTCHA"); err != nil {
		t.Fatalf("DeleteType() error = %v", err)
	}
	if err := s.DeleteType(ModeGLMVision, "CAPTCHA"); err == nil {
		t.Error("deleting twice must report not found")
	}
}
