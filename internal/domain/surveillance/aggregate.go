package surveillance

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// AggregateSymptoms counts symptom/value pairs over every triage payload.
// A payload that is not a JSON object contributes nothing; the second return
// value is how many such payloads were seen. Empty payloads are not counted
// as malformed. The result does not depend on the order of triages.
func AggregateSymptoms(triages []TriageRecord) (SymptomSummary, int) {
	summary := SymptomSummary{}
	malformed := 0

	for _, t := range triages {
		responses, ok := parseResponses(t.ResponsesJSON)
		if !ok {
			malformed++
			continue
		}
		for symptom, value := range responses {
			values, exists := summary[symptom]
			if !exists {
				values = make(map[string]int)
				summary[symptom] = values
			}
			values[value]++
		}
	}

	return summary, malformed
}

// parseResponses decodes a payload into symptom -> canonical value. It
// reports false only for non-empty payloads that are not a JSON object.
func parseResponses(payload string) (map[string]string, bool) {
	if strings.TrimSpace(payload) == "" {
		return nil, true
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil || raw == nil {
		return nil, false
	}

	out := make(map[string]string, len(raw))
	for symptom, value := range raw {
		out[symptom] = canonicalValue(value)
	}
	return out, true
}

// canonicalValue maps any JSON value to the string key it is counted under:
// strings as-is, booleans and null as their literal, numbers in shortest
// decimal form, objects and arrays as compact JSON.
func canonicalValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	case 't', 'f', 'n':
		return string(trimmed)
	default:
		if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return string(trimmed)
}
