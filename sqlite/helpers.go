package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// The error message includes the field name to aid debugging.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// encodeStrings marshals a string slice to its JSON column form.
// A nil slice encodes as an empty array so reads round-trip cleanly.
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode strings: %w", err)
	}
	return string(b), nil
}

// decodeStrings unmarshals a JSON string array column.
func decodeStrings(value string, fieldName string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fieldName, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// encodeVector marshals an embedding vector to its JSON column form.
// A nil vector encodes as NULL.
func encodeVector(vec []float32) (any, error) {
	if vec == nil {
		return nil, nil
	}
	b, err := json.Marshal(vec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding: %w", err)
	}
	return string(b), nil
}

// decodeVector unmarshals a JSON embedding column.
func decodeVector(value *string) ([]float32, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	var out []float32
	if err := json.Unmarshal([]byte(*value), &out); err != nil {
		return nil, fmt.Errorf("failed to decode embedding: %w", err)
	}
	return out, nil
}
