package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexList is a slice that can be unmarshaled from either a single JSON value
// or a JSON array. Entry creation accepts activity_ids and image_urls in
// either form.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexList[T](slice)
		return nil
	}

	// Single item, wrap it in a slice
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*f = FlexList[T]{item}
	return nil
}

// Slice converts FlexList[T] back to []T.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}

// FlexID is a row id that can be unmarshaled from either a JSON number or a
// JSON string, for clients that serialize ids as strings.
type FlexID uint

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexID: invalid id string %q: %w", s, err)
		}
		*f = FlexID(val)
		return nil
	}

	return fmt.Errorf("FlexID: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint(f))
}

// Uint converts FlexID back to uint.
func (f FlexID) Uint() uint {
	return uint(f)
}
