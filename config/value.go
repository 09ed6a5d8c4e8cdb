package config

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNull is the zero Value, produced for empty documents and YAML null.
	KindNull Kind = iota
	// KindScalar holds a string, int64, uint64, float64 or bool.
	KindScalar
	// KindSequence holds an ordered list of values.
	KindSequence
	// KindMapping holds string keys in insertion order.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a node of a decoded configuration tree.
//
// Mappings have reference semantics: copying a mapping Value shares its entries,
// which is what lets UpdateDict merge in place. Use Clone for an independent copy.
type Value struct {
	kind    Kind
	scalar  any
	items   []Value
	entries *mapping
}

type mapping struct {
	keys   []string
	values map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewMapping returns an empty mapping.
func NewMapping() Value {
	return Value{
		kind:    KindMapping,
		entries: &mapping{values: make(map[string]Value)},
	}
}

// Seq returns a sequence holding items.
func Seq(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// String returns a string scalar.
func String(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Int returns a signed integer scalar.
func Int(i int64) Value {
	return Value{kind: KindScalar, scalar: i}
}

// Uint returns an unsigned integer scalar. Values that fit into int64 are
// stored as int64 so equal numbers compare equal regardless of origin.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}

	return Value{kind: KindScalar, scalar: u}
}

// Float returns a floating point scalar.
func Float(f float64) Value {
	return Value{kind: KindScalar, scalar: f}
}

// Bool returns a boolean scalar.
func Bool(b bool) Value {
	return Value{kind: KindScalar, scalar: b}
}

// FromInterface converts a plain Go tree (map[string]any, []any and scalars) into a Value.
func FromInterface(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed.Clone(), nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Uint(uint64(typed)), nil
	case uint8:
		return Uint(uint64(typed)), nil
	case uint16:
		return Uint(uint64(typed)), nil
	case uint32:
		return Uint(uint64(typed)), nil
	case uint64:
		return Uint(typed), nil
	case float32:
		return Float(float64(typed)), nil
	case float64:
		return Float(typed), nil
	case []any:
		items := make([]Value, 0, len(typed))

		for i, item := range typed {
			value, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}

			items = append(items, value)
		}

		return Seq(items...), nil
	case map[string]any:
		result := NewMapping()

		for _, key := range sortedKeys(typed) {
			value, err := FromInterface(typed[key])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			result.Set(key, value)
		}

		return result, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidArgument, raw)
	}
}

// MustFromInterface is like FromInterface but panics on error. Intended for literals in tests and examples.
func MustFromInterface(raw any) Value {
	value, err := FromInterface(raw)
	if err != nil {
		panic(err)
	}

	return value
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMapping reports whether v is a mapping.
func (v Value) IsMapping() bool {
	return v.kind == KindMapping
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Scalar returns the scalar payload, or nil for non-scalars.
func (v Value) Scalar() any {
	if v.kind != KindScalar {
		return nil
	}

	return v.scalar
}

// Items returns a copy of the sequence elements, or nil for non-sequences.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}

	items := make([]Value, len(v.items))
	copy(items, v.items)

	return items
}

// Len returns the number of entries of a mapping or elements of a sequence.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.entries.keys)
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Keys returns the mapping keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}

	keys := make([]string, len(v.entries.keys))
	copy(keys, v.entries.keys)

	return keys
}

// Get returns the value stored under key. ok is false when v is not a mapping or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}

	value, ok := v.entries.values[key]

	return value, ok
}

// Lookup walks nested mappings following path.
func (v Value) Lookup(path ...string) (Value, bool) {
	current := v

	for _, key := range path {
		next, ok := current.Get(key)
		if !ok {
			return Value{}, false
		}

		current = next
	}

	return current, true
}

// Set stores value under key, keeping the position of an existing key.
// It panics if v is not a mapping.
func (v Value) Set(key string, value Value) {
	if v.kind != KindMapping {
		panic(fmt.Sprintf("config: Set called on %s value", v.kind))
	}

	v.entries.set(key, value)
}

func (m *mapping) set(key string, value Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Clone returns a deep copy of v that shares nothing with it.
func (v Value) Clone() Value {
	switch v.kind {
	case KindMapping:
		clone := NewMapping()
		clone.entries.keys = make([]string, 0, len(v.entries.keys))

		for _, key := range v.entries.keys {
			clone.entries.set(key, v.entries.values[key].Clone())
		}

		return clone
	case KindSequence:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}

		return Seq(items...)
	default:
		return v
	}
}

// Equal reports structural equality. Mapping key order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return reflect.DeepEqual(v.scalar, other.scalar)
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}

		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		if len(v.entries.keys) != len(other.entries.keys) {
			return false
		}

		for key, value := range v.entries.values {
			otherValue, ok := other.entries.values[key]
			if !ok || !value.Equal(otherValue) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Interface converts v back into plain Go values: map[string]any, []any, scalars and nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindMapping:
		result := make(map[string]any, len(v.entries.keys))
		for _, key := range v.entries.keys {
			result[key] = v.entries.values[key].Interface()
		}

		return result
	case KindSequence:
		result := make([]any, len(v.items))
		for i, item := range v.items {
			result[i] = item.Interface()
		}

		return result
	case KindScalar:
		return v.scalar
	default:
		return nil
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%v", v.Interface())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
