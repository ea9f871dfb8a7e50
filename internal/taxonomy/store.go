package taxonomy

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"sort"
	"sync"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/state"
)

// Store is the process-wide entity type registry. Readers take snapshots;
// mutations persist the full catalog atomically before returning.
type Store struct {
	mu       sync.RWMutex
	types    map[string]EntityTypeConfig
	compiled map[string]*regexp.Regexp
	filePath string
	log      *logger.Logger
}

// Update is a partial mutation of an EntityTypeConfig. Nil fields are left
// untouched.
type Update struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Examples     *[]string `json:"examples,omitempty"`
	Color        *string   `json:"color,omitempty"`
	RegexPattern *string   `json:"regex_pattern,omitempty"`
	UseLLM       *bool     `json:"use_llm,omitempty"`
	Enabled      *bool     `json:"enabled,omitempty"`
	Order        *int      `json:"order,omitempty"`
	TagTemplate  *string   `json:"tag_template,omitempty"`
	RiskLevel    *int      `json:"risk_level,omitempty"`
}

// NewStore builds a registry seeded with the presets, overlaid with any
// previously persisted catalog at filePath. An empty filePath keeps the
// store in memory only.
func NewStore(filePath string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Get()
	}
	s := &Store{
		types:    make(map[string]EntityTypeConfig),
		compiled: make(map[string]*regexp.Regexp),
		filePath: filePath,
		log:      log,
	}
	for _, t := range presets() {
		s.types[t.ID] = t
	}

	if filePath != "" {
		var saved []EntityTypeConfig
		found, err := state.Load(filePath, &saved)
		if err != nil {
			return nil, err
		}
		if found {
			for _, t := range saved {
				s.types[t.ID] = t
			}
		}
	}

	s.compileAll()
	return s, nil
}

// compileAll compiles every regex pattern. A pattern that fails to compile
// disables its type until reconfigured. Callers must hold the write lock.
func (s *Store) compileAll() {
	s.compiled = make(map[string]*regexp.Regexp)
	for id, t := range s.types {
		if t.RegexPattern == "" {
			continue
		}
		re, err := regexp.Compile(t.RegexPattern)
		if err != nil {
			s.log.WithOperation("taxonomy.compile").WithError(err).Warnf("disabling type %s: bad pattern %q", id, t.RegexPattern)
			t.Enabled = false
			s.types[id] = t
			continue
		}
		s.compiled[id] = re
	}
}

// isPreset reports whether id belongs to the shipped catalog.
func isPreset(id string) bool {
	for _, t := range presets() {
		if t.ID == id {
			return true
		}
	}
	return false
}

// List returns the catalog sorted by (order, id). With enabledOnly set,
// disabled entries are omitted.
func (s *Store) List(enabledOnly bool) []EntityTypeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]EntityTypeConfig, 0, len(s.types))
	for _, t := range s.types {
		if enabledOnly && !t.Enabled {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns a single entry.
func (s *Store) Get(id string) (EntityTypeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.types[id]
	if !ok {
		return EntityTypeConfig{}, faults.New(faults.NotFound, "entity type %q does not exist", id)
	}
	return t, nil
}

// Pattern returns the compiled regex for a type, if it has one.
func (s *Store) Pattern(id string) (*regexp.Regexp, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	re, ok := s.compiled[id]
	return re, ok
}

// Create adds a user-defined type with a generated custom_<hex> id at
// order 200.
func (s *Store) Create(cfg EntityTypeConfig) (EntityTypeConfig, error) {
	if cfg.Name == "" {
		return EntityTypeConfig{}, faults.New(faults.InvalidInput, "entity type name is required")
	}
	if cfg.RegexPattern == "" && !cfg.UseLLM {
		return EntityTypeConfig{}, faults.New(faults.InvalidInput, "a type without a regex pattern must use LLM recognition")
	}
	if cfg.RegexPattern != "" {
		if _, err := regexp.Compile(cfg.RegexPattern); err != nil {
			return EntityTypeConfig{}, faults.Wrap(faults.InvalidInput, err, "invalid regex pattern")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.ID = "custom_" + randomHex(8)
	cfg.Enabled = true
	cfg.Order = 200
	if cfg.Category == "" {
		cfg.Category = CategoryOther
	}
	if cfg.RiskLevel == 0 {
		cfg.RiskLevel = 2
	}
	s.types[cfg.ID] = cfg
	if cfg.RegexPattern != "" {
		s.compiled[cfg.ID] = regexp.MustCompile(cfg.RegexPattern)
	}

	if err := s.persistLocked(); err != nil {
		return EntityTypeConfig{}, err
	}
	return cfg, nil
}

// ApplyUpdate partially updates an entry. Preset entries accept every field
// except the id itself.
func (s *Store) ApplyUpdate(id string, u Update) (EntityTypeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[id]
	if !ok {
		return EntityTypeConfig{}, faults.New(faults.NotFound, "entity type %q does not exist", id)
	}

	if u.RegexPattern != nil && *u.RegexPattern != "" {
		if _, err := regexp.Compile(*u.RegexPattern); err != nil {
			return EntityTypeConfig{}, faults.Wrap(faults.InvalidInput, err, "invalid regex pattern")
		}
	}

	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Examples != nil {
		t.Examples = *u.Examples
	}
	if u.Color != nil {
		t.Color = *u.Color
	}
	if u.RegexPattern != nil {
		t.RegexPattern = *u.RegexPattern
	}
	if u.UseLLM != nil {
		t.UseLLM = *u.UseLLM
	}
	if u.Enabled != nil {
		t.Enabled = *u.Enabled
	}
	if u.Order != nil {
		t.Order = *u.Order
	}
	if u.TagTemplate != nil {
		t.TagTemplate = *u.TagTemplate
	}
	if u.RiskLevel != nil {
		t.RiskLevel = *u.RiskLevel
	}
	if t.RegexPattern == "" {
		t.UseLLM = true
	}

	s.types[id] = t
	if t.RegexPattern != "" {
		s.compiled[id] = regexp.MustCompile(t.RegexPattern)
	} else {
		delete(s.compiled, id)
	}

	if err := s.persistLocked(); err != nil {
		return EntityTypeConfig{}, err
	}
	return t, nil
}

// Delete removes a user-created type. Presets can only be disabled.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.types[id]; !ok {
		return faults.New(faults.NotFound, "entity type %q does not exist", id)
	}
	if isPreset(id) {
		return faults.New(faults.PresetProtected, "preset type %q cannot be deleted, only disabled", id)
	}
	delete(s.types, id)
	delete(s.compiled, id)
	return s.persistLocked()
}

// Toggle flips the enabled flag and returns the new value.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[id]
	if !ok {
		return false, faults.New(faults.NotFound, "entity type %q does not exist", id)
	}
	t.Enabled = !t.Enabled
	s.types[id] = t
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	return t.Enabled, nil
}

// Reset restores the preset catalog verbatim and drops user entries.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.types = make(map[string]EntityTypeConfig)
	for _, t := range presets() {
		s.types[t.ID] = t
	}
	s.compileAll()
	return s.persistLocked()
}

// EnabledIDs returns the ids of all enabled types in listing order.
func (s *Store) EnabledIDs() []string {
	types := s.List(true)
	ids := make([]string, len(types))
	for i, t := range types {
		ids[i] = t.ID
	}
	return ids
}

// persistLocked writes the catalog. Callers must hold the write lock.
func (s *Store) persistLocked() error {
	if s.filePath == "" {
		return nil
	}
	list := make([]EntityTypeConfig, 0, len(s.types))
	for _, t := range s.types {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].ID < list[j].ID
	})
	return state.Save(s.filePath, list)
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to a
		// fixed marker rather than panicking in a config mutation.
		return "00000000"[:n]
	}
	return hex.EncodeToString(buf)[:n]
}
