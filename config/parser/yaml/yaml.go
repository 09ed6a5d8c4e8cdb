package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gmprocess/gmconf/config"

	"github.com/goccy/go-yaml"
)

// ErrInvalidUTF8 is returned when the input is not UTF-8 encoded.
var ErrInvalidUTF8 = errors.New("data is not valid UTF-8")

//nolint:gochecknoglobals // constant byte sequence.
var utf8BOM = []byte("\xef\xbb\xbf")

// Parser implements config.Decoder for YAML documents.
// Mappings are decoded in document order.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Decode parses a YAML document into a config.Value.
// An empty document decodes to the null value. Duplicate mapping keys are rejected.
func (p *Parser) Decode(data []byte) (config.Value, error) {
	if !utf8.Valid(data) {
		return config.Value{}, ErrInvalidUTF8
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return config.Value{}, fmt.Errorf("unmarshal error: %w", err)
	}

	return convert(raw)
}

// Encode renders value as a YAML document, keeping mapping key order.
func (p *Parser) Encode(value config.Value) ([]byte, error) {
	data, err := yaml.Marshal(toYAML(value))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

func convert(raw any) (config.Value, error) {
	switch typed := raw.(type) {
	case yaml.MapSlice:
		result := config.NewMapping()

		for _, item := range typed {
			key := keyString(item.Key)

			value, err := convert(item.Value)
			if err != nil {
				return config.Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			result.Set(key, value)
		}

		return result, nil
	case []any:
		items := make([]config.Value, 0, len(typed))

		for i, item := range typed {
			value, err := convert(item)
			if err != nil {
				return config.Value{}, fmt.Errorf("index %d: %w", i, err)
			}

			items = append(items, value)
		}

		return config.Seq(items...), nil
	default:
		value, err := config.FromInterface(raw)
		if err != nil {
			// Timestamps and other tagged scalars keep their textual form.
			return config.String(fmt.Sprint(raw)), nil //nolint:nilerr // fallback representation
		}

		return value, nil
	}
}

func keyString(key any) string {
	switch typed := key.(type) {
	case nil:
		return "null"
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

func toYAML(value config.Value) any {
	switch value.Kind() {
	case config.KindMapping:
		keys := value.Keys()
		result := make(yaml.MapSlice, 0, len(keys))

		for _, key := range keys {
			item, _ := value.Get(key)
			result = append(result, yaml.MapItem{Key: key, Value: toYAML(item)})
		}

		return result
	case config.KindSequence:
		items := value.Items()
		result := make([]any, 0, len(items))

		for _, item := range items {
			result = append(result, toYAML(item))
		}

		return result
	case config.KindScalar:
		return value.Scalar()
	default:
		return nil
	}
}
