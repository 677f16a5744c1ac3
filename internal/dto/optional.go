package dto

import "github.com/goccy/go-json"

// Optional distinguishes a field that was absent from the request body from
// one that was sent as null. Set is true whenever the key was present.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
