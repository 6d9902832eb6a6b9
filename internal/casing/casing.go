// Package casing translates record field names between the application's
// camelCase convention and the backend's snake_case column convention.
//
// The translation is a heuristic. Names it cannot round-trip (runs of
// capitals such as "photoURL") are pinned in an explicit table that is
// consulted before the heuristic in both directions.
package casing

import (
	"regexp"
	"strings"
)

var (
	// acronymBoundary splits a run of capitals from a following capitalized
	// word: "HTMLParser" -> "HTML_Parser".
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	// wordBoundary splits a lowercase letter or digit from a following capital.
	wordBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// overrides maps application names to backend names for keys the heuristic
// gets wrong on the way back.
var overrides = map[string]string{
	"photoURL": "photo_url",
}

var reverseOverrides = func() map[string]string {
	m := make(map[string]string, len(overrides))
	for app, backend := range overrides {
		m[backend] = app
	}
	return m
}()

// ToBackend converts an application field name to its backend column name.
func ToBackend(key string) string {
	if v, ok := overrides[key]; ok {
		return v
	}
	s := acronymBoundary.ReplaceAllString(key, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ToApp converts a backend column name to its application field name.
// The first segment is kept as-is and each later segment has its first
// letter upper-cased.
func ToApp(key string) string {
	if v, ok := reverseOverrides[key]; ok {
		return v
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// RecordToBackend returns a copy of rec with every top-level key converted by
// ToBackend. Nested maps and slices are shared, not translated.
func RecordToBackend(rec map[string]any) map[string]any {
	return translate(rec, ToBackend)
}

// RecordToApp returns a copy of rec with every top-level key converted by ToApp.
func RecordToApp(rec map[string]any) map[string]any {
	return translate(rec, ToApp)
}

func translate(rec map[string]any, fn func(string) string) map[string]any {
	if rec == nil {
		return nil
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[fn(k)] = v
	}
	return out
}
