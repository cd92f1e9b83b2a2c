package repository

import (
	"alcyxob/fitcoach-api/internal/schema"
	"encoding/json"
	"fmt"
)

// Programs, preferences and exercise items are stored as JSON text blobs.
// These helpers are shared by every backend so the stored format is the same.

// EncodeProgram serializes a program union.
func EncodeProgram(p schema.Program) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode program: %w", err)
	}
	return string(data), nil
}

// DecodeProgram parses and validates a stored program.
func DecodeProgram(text string) (schema.Program, error) {
	p, err := schema.Parse(text)
	if err != nil {
		return schema.Program{}, fmt.Errorf("decode stored program: %w", err)
	}
	return *p, nil
}

// EncodePreferences serializes optional preferences; nil stays nil.
func EncodePreferences(p *schema.Preferences) (*string, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	s := string(data)
	return &s, nil
}

// DecodePreferences parses stored preferences. A nil, empty or "null" blob
// yields nil.
func DecodePreferences(text *string) (*schema.Preferences, error) {
	if text == nil || *text == "" || *text == "null" {
		return nil, nil
	}
	var p schema.Preferences
	if err := json.Unmarshal([]byte(*text), &p); err != nil {
		return nil, fmt.Errorf("decode stored preferences: %w", err)
	}
	return &p, nil
}

// EncodeItems serializes an exercise list.
func EncodeItems(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(data), nil
}

// DecodeItems parses a stored exercise list.
func DecodeItems(text string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("decode stored items: %w", err)
	}
	return items, nil
}
