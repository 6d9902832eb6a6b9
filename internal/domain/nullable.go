package domain

import "github.com/oapi-codegen/nullable"

// Patch fields for nullable columns are nullable.Nullable so a partial update
// can tell an absent field (left unchanged) from an explicit null (cleared).
// Tag them `json:",omitempty"`: an unspecified Nullable is an empty map.

// NullableFrom returns a Nullable holding *p, or an unspecified one when p is
// nil.
func NullableFrom[T any](p *T) nullable.Nullable[T] {
	if p == nil {
		return nil
	}
	return nullable.NewNullableWithValue(*p)
}

// valueOf returns a pointer to the value of n, or nil when n is absent or null.
func valueOf[T any](n nullable.Nullable[T]) *T {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}
