package config

import "fmt"

// MergeDicts merges mappings into a new mapping. Later mappings take precedence
// over earlier ones.
//
// The first mapping is deep-copied before merging, so the result never aliases
// any of the inputs and none of them is modified. Calling MergeDicts without
// arguments, or with a non-mapping argument, returns ErrInvalidArgument.
func MergeDicts(mappings ...Value) (Value, error) {
	if len(mappings) == 0 {
		return Value{}, fmt.Errorf("%w: no mappings to merge", ErrInvalidArgument)
	}

	for i, value := range mappings {
		if !value.IsMapping() {
			return Value{}, fmt.Errorf("%w: argument %d is a %s, not a mapping", ErrInvalidArgument, i, value.Kind())
		}
	}

	target := mappings[0].Clone()

	for _, source := range mappings[1:] {
		updateDict(target.entries, source.entries)
	}

	return target, nil
}

// UpdateDict merges source into target in place.
//
// A key whose source value is a mapping and whose target value is also a mapping
// is merged recursively. Any other source value, sequences included, replaces the
// target value wholesale. Source is never modified nor aliased by target.
func UpdateDict(target, source Value) error {
	if !target.IsMapping() {
		return fmt.Errorf("%w: target is a %s, not a mapping", ErrInvalidArgument, target.Kind())
	}

	if !source.IsMapping() {
		return fmt.Errorf("%w: source is a %s, not a mapping", ErrInvalidArgument, source.Kind())
	}

	updateDict(target.entries, source.entries)

	return nil
}

func updateDict(target, source *mapping) {
	for _, key := range source.keys {
		value := source.values[key]

		current, exists := target.values[key]
		if !value.IsMapping() || !exists || !current.IsMapping() {
			target.set(key, value.Clone())

			continue
		}

		updateDict(current.entries, value.entries)
	}
}
