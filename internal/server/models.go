package server

import (
	"net/http"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

// listed is a model entry with its key redacted for display.
type listed struct {
	modelcfg.Config
	APIKey string `json:"api_key,omitempty"`
	Active bool   `json:"active"`
}

func (s *Server) handleListModels(w http.ResponseWriter, _ *http.Request) {
	active := ""
	if cfg, err := s.models.Active(); err == nil {
		active = cfg.ID
	}
	configs := s.models.List()
	out := make([]listed, 0, len(configs))
	for _, cfg := range configs {
		entry := listed{Config: cfg, Active: cfg.ID == active}
		if cfg.APIKey != "" {
			entry.APIKey = "***"
		}
		entry.Config.APIKey = ""
		out = append(out, entry)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"models": out})
}

func (s *Server) handleActiveModel(w http.ResponseWriter, _ *http.Request) {
	cfg, err := s.models.Active()
	if err != nil {
		s.respondError(w, err)
		return
	}
	if cfg.APIKey != "" {
		cfg.APIKey = "***"
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutModel(w http.ResponseWriter, r *http.Request) {
	var cfg modelcfg.Config
	if err := s.decodeJSON(w, r, &cfg); err != nil {
		s.respondError(w, err)
		return
	}
	if id := r.PathValue("id"); id != "" {
		cfg.ID = id
	}
	if cfg.ID == "" {
		s.respondError(w, faults.New(faults.InvalidInput, "model id is required"))
		return
	}
	if err := s.models.Put(cfg); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": cfg.ID})
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.models.Delete(r.PathValue("id")); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": r.PathValue("id")})
}

func (s *Server) handleActivateModel(w http.ResponseWriter, r *http.Request) {
	if err := s.models.SetActive(r.PathValue("id")); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"active": r.PathValue("id")})
}
