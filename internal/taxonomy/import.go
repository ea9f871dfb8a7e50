package taxonomy

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/docuveil/docuveil/internal/faults"
)

// presetFile is the YAML overlay format for site-specific catalogs.
type presetFile struct {
	Types []EntityTypeConfig `yaml:"types"`
}

// ImportPresets merges a YAML catalog into the registry. Entries sharing an
// id with an existing entry replace it wholesale: the newest import wins.
// Returns the number of entries applied.
func (s *Store) ImportPresets(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, faults.Wrap(faults.InvalidInput, err, "cannot read preset file %s", path)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, faults.Wrap(faults.InvalidInput, err, "cannot parse preset file %s", path)
	}

	for i, t := range file.Types {
		if t.ID == "" || t.Name == "" {
			return 0, faults.New(faults.InvalidInput, "preset entry %d is missing id or name", i)
		}
		if t.RegexPattern != "" {
			if _, err := regexp.Compile(t.RegexPattern); err != nil {
				return 0, faults.Wrap(faults.InvalidInput, err, "preset %s has an invalid pattern", t.ID)
			}
		}
		if t.RegexPattern == "" {
			t.UseLLM = true
			file.Types[i] = t
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range file.Types {
		if t.Category == "" {
			t.Category = CategoryOther
		}
		s.types[t.ID] = t
	}
	s.compileAll()

	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	s.log.WithOperation("taxonomy.import").Infof("imported %d entity types from %s", len(file.Types), path)
	return len(file.Types), nil
}
