package server

import (
	"encoding/base64"
	"net/http"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/pipeline"
	"github.com/docuveil/docuveil/internal/redact"
	"github.com/docuveil/docuveil/internal/replace"
	"github.com/docuveil/docuveil/internal/writer"
)

type detectTextRequest struct {
	Text  string   `json:"text"`
	Types []string `json:"types,omitempty"`
	Mode  string   `json:"mode,omitempty"`
}

func (s *Server) handleDetectText(w http.ResponseWriter, r *http.Request) {
	var req detectTextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Text == "" {
		s.respondError(w, faults.New(faults.InvalidInput, "text is required"))
		return
	}
	mode := hybrid.Mode(req.Mode)
	if mode == "" {
		mode = hybrid.ModeAuto
	}
	typeIDs := req.Types
	if len(typeIDs) == 0 {
		typeIDs = s.types.EnabledIDs()
	}
	result, err := s.detector.Detect(r.Context(), req.Text, typeIDs, mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type detectVisionRequest struct {
	ImageBase64 string `json:"image_base64"`
	Page        int    `json:"page,omitempty"`
	Preview     bool   `json:"preview,omitempty"`
}

type detectVisionResponse struct {
	*pipeline.FuseResult
	Preview string `json:"preview,omitempty"`
}

func (s *Server) handleDetectVision(w http.ResponseWriter, r *http.Request) {
	var req detectVisionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	img, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(img) == 0 {
		s.respondError(w, faults.New(faults.InvalidInput, "image_base64 is not valid base64"))
		return
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	result, err := s.fuser.Detect(r.Context(), img, page)
	if err != nil {
		s.respondError(w, err)
		return
	}

	resp := detectVisionResponse{FuseResult: result}
	if req.Preview && len(result.Boxes) > 0 {
		preview, err := s.preview(r, img, result)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			resp.Preview = base64.StdEncoding.EncodeToString(preview)
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// preview renders the detected regions onto the image, through the proxy
// when it is up and locally otherwise.
func (s *Server) preview(r *http.Request, img []byte, result *pipeline.FuseResult) ([]byte, error) {
	if s.monitor != nil && s.monitor.Available() {
		return s.proxy.Draw(r.Context(), img, result.Boxes)
	}
	return writer.Annotate(img, result.Boxes, s.typeColors())
}

// typeColors merges display colors from the taxonomy and both pipeline
// type lists.
func (s *Server) typeColors() map[string]string {
	colors := make(map[string]string)
	for _, t := range s.types.List(false) {
		if t.Color != "" {
			colors[t.ID] = t.Color
		}
	}
	for _, mode := range []pipeline.Mode{pipeline.ModeOCRHaS, pipeline.ModeGLMVision} {
		types, err := s.pipelines.Types(mode, false)
		if err != nil {
			continue
		}
		for _, t := range types {
			if t.Color != "" {
				colors[t.ID] = t.Color
			}
		}
	}
	return colors
}

type detectFileRequest struct {
	Types []string `json:"types,omitempty"`
	Mode  string   `json:"mode,omitempty"`
}

func (s *Server) handleDetectFile(w http.ResponseWriter, r *http.Request) {
	var req detectFileRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	mode := hybrid.Mode(req.Mode)
	if mode == "" {
		mode = hybrid.ModeAuto
	}
	job, err := s.jobs.Detect(r.Context(), r.PathValue("id"), req.Types, mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var review redact.Review
	if err := s.decodeJSON(w, r, &review); err != nil {
		s.respondError(w, err)
		return
	}
	job, err := s.jobs.Apply(r.PathValue("id"), review)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

type redactRequest struct {
	Mode   string            `json:"mode,omitempty"`
	Custom map[string]string `json:"custom,omitempty"`
}

func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	var req redactRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	mode := replace.Mode(req.Mode)
	if mode == "" {
		mode = replace.ModeSmart
	}
	job, err := s.jobs.Redact(r.Context(), r.PathValue("id"), mode, req.Custom)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}
