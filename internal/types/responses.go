package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ------------------------------
// Response Types
// ------------------------------

// SpeciesPage is one page of the plant catalog.
type SpeciesPage struct {
	Data        []PlantSpecies `json:"data"`
	To          int            `json:"to"`
	PerPage     int            `json:"per_page"`
	CurrentPage int            `json:"current_page"`
	From        int            `json:"from"`
	LastPage    int            `json:"last_page"`
	Total       int            `json:"total"`
}

// AuthResult is a normalized login/register outcome.
type AuthResult struct {
	Token string
	User  User
}

// DecodeList accepts a bare JSON array or an object wrapping the array
// under "data" or one of keys.
func DecodeList[T any](raw []byte, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	for _, k := range append([]string{"data"}, keys...) {
		inner, ok := envelope[k]
		if !ok {
			continue
		}
		return DecodeList[T](inner, keys...)
	}
	return nil, fmt.Errorf("no list found under data or %v", keys)
}

// DecodeObject accepts a bare object or one wrapped under "data" or one of
// keys.
func DecodeObject[T any](raw []byte, keys ...string) (T, error) {
	var zero T
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return zero, err
	}
	for _, k := range append([]string{"data"}, keys...) {
		inner, ok := envelope[k]
		if !ok || len(bytes.TrimSpace(inner)) == 0 || bytes.TrimSpace(inner)[0] != '{' {
			continue
		}
		raw = inner
		break
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, err
	}
	return out, nil
}
