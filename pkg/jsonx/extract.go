// Package jsonx recovers structured data from free text produced by language models.
//
// Models are asked for JSON but routinely wrap it in prose or code fences, or leave a
// trailing comma behind. Extraction finds the first balanced top-level object or array,
// parses it strictly and, failing that, parses it again with trailing commas removed.
package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoJSON    = errors.New("jsonx: no json region found")
	ErrNotObject = errors.New("jsonx: value is not an object")
)

// Extract returns the decoded value of the first JSON region in s.
func Extract(s string) (any, error) {
	region, ok := First(s)
	if !ok {
		return nil, ErrNoJSON
	}

	var v any
	err := json.Unmarshal([]byte(region), &v)
	if err == nil {
		return v, nil
	}

	if repaired := StripTrailingCommas(region); repaired != region {
		if err2 := json.Unmarshal([]byte(repaired), &v); err2 == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("jsonx: decode: %w", err)
}

// ExtractObject is Extract restricted to objects.
func ExtractObject(s string) (map[string]any, error) {
	v, err := Extract(s)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}

// ObjectOrEmpty never fails: anything that is not a recoverable object yields an empty map.
func ObjectOrEmpty(s string) map[string]any {
	m, err := ExtractObject(s)
	if err != nil {
		return map[string]any{}
	}
	return m
}
