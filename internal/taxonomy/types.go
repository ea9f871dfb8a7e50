// Package taxonomy maintains the catalog of identifier categories the
// detectors recognize, following the GB/T 37964-2019 de-identification
// classification (direct / quasi identifiers and sensitive attributes).
package taxonomy

// Category classifies an identifier per GB/T 37964-2019.
type Category string

const (
	// CategoryDirect identifies a natural person on its own
	CategoryDirect Category = "direct"

	// CategoryQuasi identifies a person only in combination with other data
	CategoryQuasi Category = "quasi"

	// CategorySensitive is protected regardless of identifiability
	CategorySensitive Category = "sensitive"

	// CategoryOther covers general attributes
	CategoryOther Category = "other"
)

// EntityTypeConfig is one registry entry.
type EntityTypeConfig struct {
	// ID is the stable string key, unique across the registry
	ID string `json:"id" yaml:"id"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Category is the GB/T 37964-2019 identifier class
	Category Category `json:"category" yaml:"category"`

	// Description guides the neural recognizer
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Examples are sample surface forms, ordered
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Color is the display color for review UIs
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// RegexPattern, when present, makes the regex path authoritative for this type
	RegexPattern string `json:"regex_pattern,omitempty" yaml:"regex_pattern,omitempty"`

	// UseLLM enables neural recognition; must be true when RegexPattern is empty
	UseLLM bool `json:"use_llm" yaml:"use_llm"`

	// Enabled toggles the type without deleting it
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Order is the ascending sort weight for listings
	Order int `json:"order" yaml:"order"`

	// TagTemplate is the structured replacement template with an {index} placeholder
	TagTemplate string `json:"tag_template,omitempty" yaml:"tag_template,omitempty"`

	// RiskLevel is the re-identification risk, 1 (low) to 5 (high)
	RiskLevel int `json:"risk_level" yaml:"risk_level"`

	// Confidence is assigned to regex matches of this type
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Priority orders types for per-position deduplication ties. Address spans
// win over organization and person-like spans, which win over the rest.
func Priority(typeID string) int {
	switch typeID {
	case "ADDRESS":
		return 3
	case "ORG", "PERSON", "LEGAL_PARTY", "LAWYER", "JUDGE":
		return 2
	default:
		return 1
	}
}
