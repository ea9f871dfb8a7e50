package vlm

import (
	"encoding/json"
	"regexp"
)

// object is one detection in the model's response.
type object struct {
	Type string    `json:"type"`
	Text string    `json:"text"`
	Box  []float64 `json:"box_2d"`
}

// response is the requested top-level shape.
type response struct {
	Objects []object `json:"objects"`
}

var (
	jsonBlock = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)

	// objectPattern recovers individual complete objects from a response
	// that was truncated mid-array.
	objectPattern = regexp.MustCompile(`\{[^{}]*"type"\s*:\s*"[^"]*"[^{}]*"box_2d"\s*:\s*\[[^\]]+\][^{}]*\}`)
)

// parseObjects extracts detections from a model response, in order of
// decreasing strictness: the whole text as JSON, the outermost JSON block,
// then individual object literals from a truncated answer. Objects without
// a 4-element box are dropped.
func parseObjects(text string) []object {
	if objs, ok := decode([]byte(text)); ok {
		return valid(objs)
	}

	block := jsonBlock.FindString(text)
	if block == "" {
		return nil
	}
	if objs, ok := decode([]byte(block)); ok {
		return valid(objs)
	}

	var recovered []object
	for _, m := range objectPattern.FindAllString(block, -1) {
		var obj object
		if err := json.Unmarshal([]byte(m), &obj); err == nil {
			recovered = append(recovered, obj)
		}
	}
	return valid(recovered)
}

// decode accepts both the documented {"objects": [...]} shape and a bare
// top-level array.
func decode(data []byte) ([]object, bool) {
	var wrapped response
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Objects != nil {
		return wrapped.Objects, true
	}
	var list []object
	if err := json.Unmarshal(data, &list); err == nil {
		return list, true
	}
	return nil, false
}

func valid(objs []object) []object {
	out := objs[:0]
	for _, o := range objs {
		if len(o.Box) == 4 {
			out = append(out, o)
		}
	}
	return out
}
