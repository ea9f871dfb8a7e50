package server

import (
	"net/http"

	"github.com/docuveil/docuveil/internal/taxonomy"
)

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"types": s.types.List(enabledOnly),
	})
}

func (s *Server) handleGetType(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.types.Get(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var cfg taxonomy.EntityTypeConfig
	if err := s.decodeJSON(w, r, &cfg); err != nil {
		s.respondError(w, err)
		return
	}
	created, err := s.types.Create(cfg)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateType(w http.ResponseWriter, r *http.Request) {
	var update taxonomy.Update
	if err := s.decodeJSON(w, r, &update); err != nil {
		s.respondError(w, err)
		return
	}
	updated, err := s.types.ApplyUpdate(r.PathValue("id"), update)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	if err := s.types.Delete(r.PathValue("id")); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": r.PathValue("id")})
}

func (s *Server) handleToggleType(w http.ResponseWriter, r *http.Request) {
	enabled, err := s.types.Toggle(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      r.PathValue("id"),
		"enabled": enabled,
	})
}

func (s *Server) handleResetTypes(w http.ResponseWriter, _ *http.Request) {
	if err := s.types.Reset(); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"types": s.types.List(false),
	})
}

func (s *Server) handleImportTypes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	imported, err := s.types.ImportPresets(req.Path)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
