package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// identified is implemented by every model that can appear as a nested
// related object in an API response.
type identified interface {
	RefID() int64
}

// Ref is a related-object field that the API sends either as a bare primary
// key (number or numeric string) or as the full nested object.
type Ref[T any] struct {
	ID    int64
	Value *T
}

// Present reports whether the field carried anything other than null.
func (r Ref[T]) Present() bool {
	return r.ID != 0 || r.Value != nil
}

// UnmarshalJSON accepts null, a number, a numeric string or an object.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*r = Ref[T]{}

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var v T
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		r.Value = &v
		if withID, ok := any(&v).(identified); ok {
			r.ID = withID.RefID()
		}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid related id %q: %w", s, err)
		}
		r.ID = id
		return nil
	default:
		return json.Unmarshal(trimmed, &r.ID)
	}
}

// MarshalJSON writes the nested object when one is held, else the bare id.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID != 0 {
		return json.Marshal(r.ID)
	}
	return []byte("null"), nil
}
