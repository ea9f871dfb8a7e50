// Package pipeline configures and fuses the two image detection
// pipelines: the OCR-plus-recognizer path for textual identifiers and the
// vision model path for visual elements. Each pipeline carries its own
// enabled-type list.
package pipeline

import (
	"sort"
	"strings"
	"sync"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/state"
	"github.com/docuveil/docuveil/internal/vlm"
)

// Mode names one of the two fixed pipelines.
type Mode string

const (
	// ModeOCRHaS is OCR text extraction plus neural recognition
	ModeOCRHaS Mode = "ocr_has"

	// ModeGLMVision is the vision language model
	ModeGLMVision Mode = "glm_vision"
)

// TypeConfig is one detectable category within a pipeline.
type TypeConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Color       string   `json:"color,omitempty"`
	Enabled     bool     `json:"enabled"`
	Order       int      `json:"order"`
}

// Config is one pipeline's full configuration.
type Config struct {
	Mode        Mode         `json:"mode"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Enabled     bool         `json:"enabled"`
	Types       []TypeConfig `json:"types"`
}

// Store holds both pipeline configurations with persistence.
type Store struct {
	mu        sync.RWMutex
	pipelines map[Mode]Config
	filePath  string
}

// NewStore loads the persisted configuration or seeds the presets.
func NewStore(filePath string) (*Store, error) {
	s := &Store{
		pipelines: make(map[Mode]Config),
		filePath:  filePath,
	}

	var saved []Config
	found := false
	if filePath != "" {
		var err error
		found, err = state.Load(filePath, &saved)
		if err != nil {
			return nil, err
		}
	}

	if found && len(saved) > 0 {
		for _, p := range saved {
			s.pipelines[p.Mode] = p
		}
	}
	// Presets fill in any mode the file does not carry.
	for mode, preset := range presetPipelines() {
		if _, ok := s.pipelines[mode]; !ok {
			s.pipelines[mode] = preset
		}
	}
	return s, nil
}

// List returns both pipelines, ocr_has first.
func (s *Store) List(enabledOnly bool) []Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Config, 0, len(s.pipelines))
	for _, p := range s.pipelines {
		if enabledOnly && !p.Enabled {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// Get returns one pipeline configuration.
func (s *Store) Get(mode Mode) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return Config{}, faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	return p, nil
}

// Toggle flips a pipeline's enabled flag and returns the new value.
func (s *Store) Toggle(mode Mode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return false, faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	p.Enabled = !p.Enabled
	s.pipelines[mode] = p
	return p.Enabled, s.persistLocked()
}

// Types lists a pipeline's type configurations sorted by order.
func (s *Store) Types(mode Mode, enabledOnly bool) ([]TypeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return nil, faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	out := make([]TypeConfig, 0, len(p.Types))
	for _, t := range p.Types {
		if enabledOnly && !t.Enabled {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// AddType appends a type to a pipeline. Duplicate ids are rejected.
func (s *Store) AddType(mode Mode, t TypeConfig) error {
	if t.ID == "" || t.Name == "" {
		return faults.New(faults.InvalidInput, "type id and name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	for _, existing := range p.Types {
		if existing.ID == t.ID {
			return faults.New(faults.InvalidInput, "type %q already exists in pipeline %q", t.ID, mode)
		}
	}
	p.Types = append(p.Types, t)
	s.pipelines[mode] = p
	return s.persistLocked()
}

// UpdateType replaces a type's configuration, keeping its id.
func (s *Store) UpdateType(mode Mode, typeID string, t TypeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	for i, existing := range p.Types {
		if existing.ID == typeID {
			t.ID = typeID
			p.Types[i] = t
			s.pipelines[mode] = p
			return s.persistLocked()
		}
	}
	return faults.New(faults.NotFound, "type %q does not exist in pipeline %q", typeID, mode)
}

// ToggleType flips one type's enabled flag and returns the new value.
func (s *Store) ToggleType(mode Mode, typeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return false, faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	for i, t := range p.Types {
		if t.ID == typeID {
			p.Types[i].Enabled = !t.Enabled
			s.pipelines[mode] = p
			return p.Types[i].Enabled, s.persistLocked()
		}
	}
	return false, faults.New(faults.NotFound, "type %q does not exist in pipeline %q", typeID, mode)
}

// DeleteType removes a type from a pipeline.
func (s *Store) DeleteType(mode Mode, typeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[mode]
	if !ok {
		return faults.New(faults.NotFound, "pipeline %q does not exist", mode)
	}
	for i, t := range p.Types {
		if t.ID == typeID {
			p.Types = append(p.Types[:i], p.Types[i+1:]...)
			s.pipelines[mode] = p
			return s.persistLocked()
		}
	}
	return faults.New(faults.NotFound, "type %q does not exist in pipeline %q", typeID, mode)
}

// Reset restores both pipelines to their presets.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pipelines = presetPipelines()
	return s.persistLocked()
}

// DetectTypes converts a pipeline's enabled types to the detector's
// type descriptors. A disabled pipeline yields nil, which skips it.
func (s *Store) DetectTypes(mode Mode) []vlm.DetectType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pipelines[mode]
	if !ok || !p.Enabled {
		return nil
	}
	sorted := make([]TypeConfig, len(p.Types))
	copy(sorted, p.Types)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	var out []vlm.DetectType
	for _, t := range sorted {
		if !t.Enabled {
			continue
		}
		out = append(out, vlm.DetectType{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Examples:    strings.Join(t.Examples, "、"),
		})
	}
	return out
}

func (s *Store) persistLocked() error {
	if s.filePath == "" {
		return nil
	}
	list := make([]Config, 0, len(s.pipelines))
	for _, p := range s.pipelines {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Mode < list[j].Mode })
	return state.Save(s.filePath, list)
}
