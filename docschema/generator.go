package docschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

// DraftURI is the $schema of generated schemas.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// JSON Schema type names.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

var (
	// ErrNoValues indicates a source without a root section.
	ErrNoValues = errors.New("no values")
	// ErrInvalid indicates values that do not match a schema.
	ErrInvalid = errors.New("values do not match schema")
)

// Source provides values and documentation by path. [*conf.File],
// [*conf.Section] and [*conf.View] implement it.
type Source interface {
	Get(p keypath.Path) (any, bool)
	Docs(p keypath.Path) []string
}

// Generator produces JSON Schema from a [Source].
//
// Create instances with [New].
type Generator struct {
	logger      *slog.Logger
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a [Generator].
type Option func(*Generator)

// New creates a [Generator] with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description. Without it, the
// documentation of the root path is used.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// Generate produces a schema for the values in src.
func (g *Generator) Generate(src Source) (*jsonschema.Schema, error) {
	root, ok := src.Get(keypath.Root)
	if !ok {
		return nil, ErrNoValues
	}

	if _, ok := root.(yaml.MapSlice); !ok {
		return nil, fmt.Errorf("%w: root is %T", ErrNoValues, root)
	}

	result := g.build(src, keypath.Root, root)
	result.Schema = DraftURI

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	return result, nil
}

func (g *Generator) build(src Source, p keypath.Path, v any) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Description: strings.Join(src.Docs(p), " "),
	}

	if ms, ok := v.(yaml.MapSlice); ok {
		s.Type = typeObject
		s.Properties = make(map[string]*jsonschema.Schema, len(ms))

		for _, item := range ms {
			key := fmt.Sprint(item.Key)
			s.Properties[key] = g.build(src, p.Append(key), item.Value)
		}

		if g.strict {
			s.AdditionalProperties = falseSchema()
		}

		g.logger.Debug("generated object schema",
			slog.String("path", p.String()),
			slog.Int("properties", len(ms)),
		)

		return s
	}

	s.Type = inferType(v)
	if s.Type == typeArray {
		s.Items = inferItems(v)
	}

	if v != nil {
		s.Default = defaultValue(v)
	}

	return s
}

// inferType returns the JSON Schema type of a stored value. Null values get
// no type.
func inferType(v any) string {
	if v == nil {
		return ""
	}

	if _, ok := v.(yaml.MapSlice); ok {
		return typeObject
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return typeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeInteger
	case reflect.Float32, reflect.Float64:
		return typeNumber
	case reflect.String:
		return typeString
	case reflect.Slice, reflect.Array:
		return typeArray
	case reflect.Map, reflect.Struct:
		return typeObject
	}

	return ""
}

// inferItems returns the schema shared by all elements of a sequence, or
// nil if the elements have incompatible types.
func inferItems(v any) *jsonschema.Schema {
	rv := reflect.ValueOf(v)
	if rv.Len() == 0 {
		return nil
	}

	var result string

	for i := range rv.Len() {
		elem := inferType(rv.Index(i).Interface())
		if i == 0 {
			result = elem

			continue
		}

		result = widenType(result, elem)
	}

	if result == "" {
		return nil
	}

	return &jsonschema.Schema{Type: result}
}

// widenType returns the narrowest type both a and b fit in, or "" for no
// constraint.
func widenType(a, b string) string {
	switch {
	case a == b:
		return a
	case a == "":
		return b
	case b == "":
		return a
	case (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger):
		return typeNumber
	}

	return ""
}

func defaultValue(v any) json.RawMessage {
	b, err := json.Marshal(yamlstore.Plain(v))
	if err != nil {
		return nil
	}

	return b
}

// falseSchema validates nothing.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
