package conf

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/yamldoc/keypath"
)

// Getter reads values by path. [*File], [*Section] and [*View] implement
// it.
type Getter interface {
	Get(p keypath.Path) (any, bool)
}

// Decode converts a stored value to T by encoding it as YAML and decoding
// the result into T.
func Decode[T any](v any) (T, error) {
	var out T

	if t, ok := v.(T); ok {
		return t, nil
	}

	b, err := yaml.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encode %T: %w", v, err)
	}

	err = yaml.Unmarshal(b, &out)
	if err != nil {
		return out, fmt.Errorf("decode into %T: %w", out, err)
	}

	return out, nil
}

// GetAs returns the value at p converted to T. It fails with [ErrNotFound]
// if p holds no value.
func GetAs[T any](g Getter, p keypath.Path) (T, error) {
	v, ok := g.Get(p)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	out, err := Decode[T](v)
	if err != nil {
		return out, fmt.Errorf("%s: %w", p, err)
	}

	return out, nil
}
