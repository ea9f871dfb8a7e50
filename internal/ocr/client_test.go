package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docuveil/docuveil/internal/faults"
)

func TestExtract(t *testing.T) {
	image := []byte("fake-png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil || string(decoded) != string(image) {
			t.Error("image bytes did not round-trip through base64")
		}
		if req.MaxNewTokens != DefaultMaxNewTokens {
			t.Errorf("expected default max_new_tokens, got %d", req.MaxNewTokens)
		}
		json.NewEncoder(w).Encode(extractResponse{
			Boxes: []Block{
				{Text: "合同编号：HT-2024-001", X: 0.1, Y: 0.05, Width: 0.4, Height: 0.03, Confidence: 0.97, Label: LabelTitle},
				{Text: "（印章）", X: 0.7, Y: 0.8, Width: 0.2, Height: 0.15, Confidence: 0.88, Label: LabelSeal},
			},
			Model:   "has-ocr",
			Elapsed: 0.42,
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	blocks, err := c.Extract(context.Background(), image, 0)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Label != LabelTitle || blocks[0].Text != "合同编号：HT-2024-001" {
		t.Errorf("unexpected first block %+v", blocks[0])
	}
	if blocks[1].Label != LabelSeal {
		t.Errorf("expected a seal block, got %+v", blocks[1])
	}
}

func TestExtract_ServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	_, err := c.Extract(context.Background(), []byte("x"), 128)
	if faults.KindOf(err) != faults.UpstreamUnavailable {
		t.Errorf("expected UpstreamUnavailable for a 503, got %v", err)
	}

	srv.Close()
	_, err = c.Extract(context.Background(), []byte("x"), 128)
	if faults.KindOf(err) != faults.UpstreamUnavailable {
		t.Errorf("expected UpstreamUnavailable when unreachable, got %v", err)
	}
}

func TestExtract_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	_, err := c.Extract(context.Background(), []byte("x"), 128)
	if faults.KindOf(err) != faults.ParseError {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	ready := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(healthResponse{Status: "ok", Model: "has-ocr", Ready: ready})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	if !c.Available(context.Background()) {
		t.Error("expected available when the service reports ready")
	}

	ready = false
	if c.Available(context.Background()) {
		t.Error("a live but not-ready service is unavailable")
	}

	srv.Close()
	if c.Available(context.Background()) {
		t.Error("expected unavailable after shutdown")
	}
}
