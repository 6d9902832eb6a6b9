package repo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/wayfarer/backend/internal/casing"
	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// record is an entity in its JSON shape, keyed by application field names.
// Both stores build entities through records so defaulting, stamping and
// shallow merging behave identically on either backend.
type record map[string]any

// Defaults applied at creation to fields the caller left unset.
var (
	itineraryDefaults    = record{"activities": []any{}}
	notificationDefaults = record{"read": false}
	hotelDefaults        = record{"amenities": []any{}, "images": []any{}}
	placeDefaults        = record{"images": []any{}}
	reviewDefaults       = record{"verified": false}
	budgetDefaults       = record{"currency": domain.DefaultCurrency, "categories": map[string]any{}}
	expenseDefaults      = record{"currency": domain.DefaultCurrency}
)

// toRecord encodes v as a record. Null fields are dropped, so an unset
// optional field is "not supplied" rather than "set to null".
func toRecord(v any) (record, error) {
	rec, err := encodeRecord(v)
	if err != nil {
		return nil, err
	}
	maps.DeleteFunc(rec, func(_ string, v any) bool { return v == nil })
	return rec, nil
}

// patchRecord encodes a partial update. Absent fields are omitted by the
// patch type itself; a field explicitly set to null stays in the record as
// nil so the merge clears it.
func patchRecord(patch any) (record, error) {
	return encodeRecord(patch)
}

func encodeRecord(v any) (record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	rec := record{}
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// fromRecord decodes rec into an entity. Missing fields take their zero value,
// which for optional (pointer) fields is null.
func fromRecord[T any](rec record) (T, error) {
	var out T
	b, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// newRecord builds the record for an insert: defaults, then the supplied
// fields, then server-owned fields, each layer overriding the previous one.
func newRecord(in any, defaults, stamps record) (record, error) {
	supplied, err := toRecord(in)
	if err != nil {
		return nil, err
	}
	rec := make(record, len(defaults)+len(supplied)+len(stamps))
	maps.Copy(rec, defaults)
	maps.Copy(rec, supplied)
	maps.Copy(rec, stamps)
	return rec, nil
}

// backendArgs translates rec to backend column names and converts values to
// types pgx can encode. Integral numbers become int64; other numbers are sent
// as text and parsed by Postgres for the column's type.
func backendArgs(rec record) pgx.NamedArgs {
	out := pgx.NamedArgs{}
	for k, v := range casing.RecordToBackend(rec) {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				v = i
			} else {
				v = n.String()
			}
		}
		out[k] = v
	}
	return out
}

// fromRow converts a row read from the backend into an entity.
func fromRow[T any](row map[string]any) (T, error) {
	return fromRecord[T](record(casing.RecordToApp(row)))
}
