package patch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	jsonpatch "github.com/evanphx/json-patch"

	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

var (
	// ErrInvalidPatch indicates a patch document that could not be decoded.
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrApply indicates a patch that could not be applied.
	ErrApply = errors.New("apply patch")
)

// Target holds the values being patched. [*conf.File], [*conf.Section] and
// [*conf.View] implement it.
type Target interface {
	Get(p keypath.Path) (any, bool)
	Set(p keypath.Path, v any, docs ...string) error
}

// Apply applies a JSON Patch to the values of t.
func Apply(t Target, patch []byte) error {
	data, err := toJSON(patch)
	if err != nil {
		return err
	}

	ops, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	return update(t, func(doc []byte) ([]byte, error) {
		return ops.Apply(doc)
	})
}

// Merge applies a JSON Merge Patch to the values of t. Null members delete
// the corresponding keys.
func Merge(t Target, patch []byte) error {
	data, err := toJSON(patch)
	if err != nil {
		return err
	}

	return update(t, func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, data)
	})
}

func update(t Target, apply func([]byte) ([]byte, error)) error {
	before, _ := t.Get(keypath.Root)

	orig, ok := before.(yaml.MapSlice)
	if !ok && before != nil {
		return fmt.Errorf("%w: target is %T, not a mapping", ErrApply, before)
	}

	doc, err := json.Marshal(yamlstore.Plain(orig))
	if err != nil {
		return fmt.Errorf("%w: encode values: %w", ErrApply, err)
	}

	out, err := apply(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrApply, err)
	}

	var after any

	err = yaml.UnmarshalWithOptions(out, &after, yaml.UseOrderedMap())
	if err != nil {
		return fmt.Errorf("%w: decode result: %w", ErrApply, err)
	}

	ms, ok := after.(yaml.MapSlice)
	if !ok {
		if after != nil {
			return fmt.Errorf("%w: result is %T, not a mapping", ErrApply, after)
		}

		ms = yaml.MapSlice{}
	}

	return t.Set(keypath.Root, reorder(orig, ms))
}

// toJSON accepts a JSON or YAML patch document.
func toJSON(patch []byte) ([]byte, error) {
	if json.Valid(patch) {
		return patch, nil
	}

	data, err := yaml.YAMLToJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	return data, nil
}

// reorder returns next with keys that also exist in prev moved to prev's
// order. Other keys keep their relative order after them.
func reorder(prev, next yaml.MapSlice) yaml.MapSlice {
	if len(prev) == 0 {
		return next
	}

	index := make(map[string]int, len(next))
	for i, item := range next {
		index[fmt.Sprint(item.Key)] = i
	}

	used := make([]bool, len(next))
	out := make(yaml.MapSlice, 0, len(next))

	for _, old := range prev {
		i, ok := index[fmt.Sprint(old.Key)]
		if !ok {
			continue
		}

		item := next[i]
		if a, ok := old.Value.(yaml.MapSlice); ok {
			if b, ok := item.Value.(yaml.MapSlice); ok {
				item.Value = reorder(a, b)
			}
		}

		out = append(out, item)
		used[i] = true
	}

	for i, item := range next {
		if !used[i] {
			out = append(out, item)
		}
	}

	return out
}
