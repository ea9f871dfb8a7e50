package ner

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/docuveil/docuveil/internal/faults"
)

// outermostJSON grabs the widest brace-delimited region, covering models
// that wrap their JSON in prose or code fences.
var outermostJSON = regexp.MustCompile(`(?s)\{.*\}`)

// tagPattern matches structured semantic tags of the form
// <CATEGORY[NNN].SUBTYPE.ATTRIBUTE>.
var tagPattern = regexp.MustCompile(`<([^>\[]+)\[(\d+)\]\.([^>\.]+)\.([^>]+)>`)

// Tag is a parsed structured semantic tag.
type Tag struct {
	// Raw is the full tag text including the angle brackets
	Raw string

	// Category is the top-level class, e.g. 人物
	Category string

	// Index is the per-category instance number
	Index int

	// Subtype and Attribute refine the category, e.g. 个人.姓名
	Subtype   string
	Attribute string
}

// parseMentionMap parses model output into {label: [mentions]}. Strict JSON
// first, then the outermost object as a fallback.
func parseMentionMap(content string) (map[string][]string, error) {
	var result map[string][]string
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if match := outermostJSON.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result, nil
		}
	}

	return nil, faults.New(faults.ParseError, "no JSON object found in recognizer output")
}

// ParseTag parses one structured tag. Returns false for anything that is
// not a well-formed tag.
func ParseTag(s string) (Tag, bool) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return Tag{}, false
	}
	var index int
	fmt.Sscanf(m[2], "%d", &index)
	return Tag{
		Raw:       m[0],
		Category:  m[1],
		Index:     index,
		Subtype:   m[3],
		Attribute: m[4],
	}, true
}

// FindTags returns every structured tag in a masked text, in order.
func FindTags(s string) []Tag {
	var out []Tag
	for _, m := range tagPattern.FindAllString(s, -1) {
		if t, ok := ParseTag(m); ok {
			out = append(out, t)
		}
	}
	return out
}

// IsTag reports whether s as a whole looks like a structured tag.
func IsTag(s string) bool {
	m := tagPattern.FindString(s)
	return m == s && m != ""
}
