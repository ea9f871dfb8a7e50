package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/docuveil/docuveil/internal/faults"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, faults.Wrap(faults.InvalidInput, err, "missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, faults.Wrap(faults.InvalidInput, err, "cannot read upload"))
		return
	}
	meta, err := s.docs.Save(header.Filename, data)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, meta)
}

func (s *Server) handleListFiles(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"files": s.docs.List(),
	})
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	meta, err := s.docs.Get(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meta)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.jobs.Delete(id); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.docs.Delete(id); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	result, err := s.docs.Parse(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePageImage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil || page < 1 {
		s.respondError(w, faults.New(faults.InvalidInput, "invalid page number %q", r.PathValue("page")))
		return
	}
	data, err := s.docs.PageImage(r.PathValue("id"), page)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	comparison, err := s.jobs.Comparison(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, err := s.jobs.Deliver(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filepath.Base(path)))
	http.ServeFile(w, r, path)
}
