package yamlstore

import (
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
)

// normalize converts maps to sections with sorted keys, recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(yaml.MapSlice, 0, len(t))
		for _, item := range t {
			out = append(out, yaml.MapItem{Key: keyString(item.Key), Value: normalize(item.Value)})
		}

		return out

	case map[string]any:
		out := make(yaml.MapSlice, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			out = append(out, yaml.MapItem{Key: k, Value: normalize(t[k])})
		}

		return out

	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[keyString(k)] = val
		}

		return normalize(m)

	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}

		return out
	}

	return v
}

// clone deep-copies sections and sequences. Other values are immutable or
// owned by the caller.
func clone(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		if t == nil {
			return yaml.MapSlice(nil)
		}

		out := make(yaml.MapSlice, len(t))
		for i, item := range t {
			out[i] = yaml.MapItem{Key: item.Key, Value: clone(item.Value)}
		}

		return out

	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}

		return out
	}

	return v
}

// Plain converts sections in v to map[string]any, recursively. Other values
// are returned as is.
func Plain(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]any, len(t))
		for _, item := range t {
			out[keyString(item.Key)] = Plain(item.Value)
		}

		return out

	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}

		return out
	}

	return v
}
