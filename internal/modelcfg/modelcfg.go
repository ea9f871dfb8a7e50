// Package modelcfg stores the named vision model endpoints. At most one
// entry is active; the vision detector selects it per call.
package modelcfg

import (
	"sort"
	"sync"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/state"
)

// Provider identifies the wire protocol and SDK used to reach a model.
type Provider string

const (
	// ProviderLocal is an OpenAI-compatible server on localhost
	ProviderLocal Provider = "local"

	// ProviderZhipu is the GLM vision endpoint (OpenAI-compatible)
	ProviderZhipu Provider = "zhipu"

	// ProviderOpenAI is the OpenAI API
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic is the Anthropic API
	ProviderAnthropic Provider = "anthropic"

	// ProviderGoogle is the Gemini API
	ProviderGoogle Provider = "google"

	// ProviderCustom is any other OpenAI-compatible endpoint
	ProviderCustom Provider = "custom"
)

// Config describes one model endpoint.
type Config struct {
	// ID is the unique entry name
	ID string `json:"id"`

	// Provider selects the client implementation
	Provider Provider `json:"provider"`

	// BaseURL overrides the provider's default endpoint
	BaseURL string `json:"base_url,omitempty"`

	// APIKey authenticates against the provider
	APIKey string `json:"api_key,omitempty"`

	// ModelName is the model to request
	ModelName string `json:"model_name"`

	// Sampling parameters forwarded verbatim
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`

	// EnableThinking toggles the provider's reasoning mode where supported
	EnableThinking bool `json:"enable_thinking"`
}

// stored is the persisted shape.
type stored struct {
	Models   []Config `json:"models"`
	ActiveID string   `json:"active_id"`
}

// Store manages the endpoint list.
type Store struct {
	mu       sync.RWMutex
	models   map[string]Config
	activeID string
	filePath string
}

// defaultConfigs seeds a fresh store with a local llama-server entry.
func defaultConfigs() []Config {
	return []Config{
		{
			ID:          "local",
			Provider:    ProviderLocal,
			BaseURL:     "http://localhost:8081/v1",
			ModelName:   "glm-4v-local",
			Temperature: 0.1,
			TopP:        0.9,
			MaxTokens:   2048,
		},
	}
}

// NewStore loads the persisted list or seeds the default.
func NewStore(filePath string) (*Store, error) {
	s := &Store{
		models:   make(map[string]Config),
		filePath: filePath,
	}

	var saved stored
	found := false
	if filePath != "" {
		var err error
		found, err = state.Load(filePath, &saved)
		if err != nil {
			return nil, err
		}
	}

	if found && len(saved.Models) > 0 {
		for _, m := range saved.Models {
			s.models[m.ID] = m
		}
		s.activeID = saved.ActiveID
	} else {
		for _, m := range defaultConfigs() {
			s.models[m.ID] = m
		}
		s.activeID = "local"
	}
	return s, nil
}

// List returns all entries sorted by id.
func (s *Store) List() []Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Config, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns one entry.
func (s *Store) Get(id string) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[id]
	if !ok {
		return Config{}, faults.New(faults.NotFound, "model config %q does not exist", id)
	}
	return m, nil
}

// Active returns the currently selected endpoint.
func (s *Store) Active() (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[s.activeID]
	if !ok {
		return Config{}, faults.New(faults.NotFound, "no active model config")
	}
	return m, nil
}

// Put creates or replaces an entry.
func (s *Store) Put(cfg Config) error {
	if cfg.ID == "" {
		return faults.New(faults.InvalidInput, "model config id is required")
	}
	if cfg.ModelName == "" {
		return faults.New(faults.InvalidInput, "model name is required")
	}
	switch cfg.Provider {
	case ProviderLocal, ProviderZhipu, ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderCustom:
	default:
		return faults.New(faults.InvalidInput, "unknown provider %q", cfg.Provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[cfg.ID] = cfg
	return s.persistLocked()
}

// Delete removes an entry. The active entry cannot be removed.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[id]; !ok {
		return faults.New(faults.NotFound, "model config %q does not exist", id)
	}
	if id == s.activeID {
		return faults.New(faults.InvalidInput, "cannot delete the active model config")
	}
	delete(s.models, id)
	return s.persistLocked()
}

// SetActive switches the active entry.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[id]; !ok {
		return faults.New(faults.NotFound, "model config %q does not exist", id)
	}
	s.activeID = id
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.filePath == "" {
		return nil
	}
	list := make([]Config, 0, len(s.models))
	for _, m := range s.models {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return state.Save(s.filePath, stored{Models: list, ActiveID: s.activeID})
}
