package requests

import (
	"encoding/json"

	"apkraft/internal/domain/query"
)

// Nullable tells an absent JSON field apart from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Optional converts to a patch field: unset when absent, Some(nil) when null.
func (n Nullable[T]) Optional() query.Optional[*T] {
	if !n.Set {
		return query.Optional[*T]{}
	}
	return query.Some(n.Value)
}
