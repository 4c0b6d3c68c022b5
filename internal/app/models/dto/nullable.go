package dto

import "encoding/json"

// Nullable is a PATCH field over a nullable column. It distinguishes a
// field that was absent from the body (leave the column untouched) from
// an explicit null (clear the column).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marks the field as supplied; a JSON null leaves Value
// nil.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// NullableOf wraps a supplied value; useful when building requests in
// code rather than decoding them.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// setNullable records the column change when the field was supplied,
// with nil standing for SQL NULL.
func setNullable[T any](changes map[string]interface{}, column string, value Nullable[T]) {
	if !value.Set {
		return
	}
	if value.Value == nil {
		changes[column] = nil
		return
	}
	changes[column] = *value.Value
}
