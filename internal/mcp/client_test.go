package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

func TestDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mcp/detect" {
			http.NotFound(w, r)
			return
		}
		var req detectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Provider != "openai" || req.APIKey != "sk-test" {
			t.Errorf("model config did not travel with the request: %+v", req)
		}
		json.NewEncoder(w).Encode(DetectResult{
			Boxes: []entity.BoundingBox{
				{ID: "box_0", Type: "SEAL", X: 0.7, Y: 0.8, Width: 0.2, Height: 0.15, Confidence: 0.9},
			},
			ImageWidth:  1654,
			ImageHeight: 2339,
			Elapsed:     1.5,
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	result, err := c.Detect(context.Background(), []byte("png"), nil, modelcfg.Config{
		Provider:  modelcfg.ProviderOpenAI,
		APIKey:    "sk-test",
		ModelName: "gpt-4o",
	})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(result.Boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(result.Boxes))
	}

	b := result.Boxes[0]
	if b.Source != entity.BoxSourceVLM {
		t.Errorf("proxy boxes must carry the vision source, got %s", b.Source)
	}
	if !b.Selected || b.Page != 1 {
		t.Errorf("expected selected page-1 box, got %+v", b)
	}
}

func TestDetect_ProxyDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(WithEndpoint(url))
	_, err := c.Detect(context.Background(), []byte("png"), nil, modelcfg.Config{})
	if faults.KindOf(err) != faults.UpstreamUnavailable {
		t.Errorf("expected UpstreamUnavailable, got %v", err)
	}
}

func TestDraw(t *testing.T) {
	annotated := []byte("annotated-png")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mcp/draw" {
			http.NotFound(w, r)
			return
		}
		var req drawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(drawResponse{
			ResultImage: base64.StdEncoding.EncodeToString(annotated),
			BoxCount:    len(req.Boxes),
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	out, err := c.Draw(context.Background(), []byte("png"), []entity.BoundingBox{
		{ID: "b0", X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2},
	})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if string(out) != string(annotated) {
		t.Errorf("annotated image did not round-trip")
	}
}

func TestDraw_MalformedImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(drawResponse{ResultImage: "!!! not base64 !!!"})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	_, err := c.Draw(context.Background(), []byte("png"), nil)
	if faults.KindOf(err) != faults.ParseError {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	status := "ok"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(healthResponse{Status: status, Service: "image-proxy"})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	if !c.Available(context.Background()) {
		t.Error("expected available")
	}

	status = "degraded"
	if c.Available(context.Background()) {
		t.Error("a non-ok status is unavailable")
	}
}

func TestMonitor_Probe(t *testing.T) {
	up := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !up {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
	}))
	defer srv.Close()

	m := NewMonitor(NewClient(WithEndpoint(srv.URL)), nil)
	if m.Available() {
		t.Error("a monitor starts unavailable until the first probe")
	}

	m.probe(context.Background())
	if !m.Available() {
		t.Error("expected available after a successful probe")
	}

	up = false
	m.probe(context.Background())
	if m.Available() {
		t.Error("expected unavailable after a failed probe")
	}
}
