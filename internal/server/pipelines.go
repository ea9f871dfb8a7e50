package server

import (
	"net/http"

	"github.com/docuveil/docuveil/internal/pipeline"
)

func (s *Server) handleListPipelines(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pipelines": s.pipelines.List(enabledOnly),
	})
}

func (s *Server) handleTogglePipeline(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	enabled, err := s.pipelines.Toggle(mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":    mode,
		"enabled": enabled,
	})
}

func (s *Server) handlePipelineTypes(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	enabledOnly := r.URL.Query().Get("enabled") == "true"
	types, err := s.pipelines.Types(mode, enabledOnly)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"types": types})
}

func (s *Server) handleAddPipelineType(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	var t pipeline.TypeConfig
	if err := s.decodeJSON(w, r, &t); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.pipelines.AddType(mode, t); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdatePipelineType(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	var t pipeline.TypeConfig
	if err := s.decodeJSON(w, r, &t); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.pipelines.UpdateType(mode, r.PathValue("id"), t); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeletePipelineType(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	if err := s.pipelines.DeleteType(mode, r.PathValue("id")); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": r.PathValue("id")})
}

func (s *Server) handleTogglePipelineType(w http.ResponseWriter, r *http.Request) {
	mode := pipeline.Mode(r.PathValue("mode"))
	enabled, err := s.pipelines.ToggleType(mode, r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      r.PathValue("id"),
		"enabled": enabled,
	})
}

func (s *Server) handleResetPipelines(w http.ResponseWriter, _ *http.Request) {
	if err := s.pipelines.Reset(); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pipelines": s.pipelines.List(false),
	})
}
