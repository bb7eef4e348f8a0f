// Package merge combines independently computed document fragments.
//
// Fragments are string-keyed dictionaries (paths, definitions, parameters,
// schema properties). Disjoint rejects any shared key; Idempotent accepts a
// shared key only when every occurrence is deep-equal. These are the only
// ways fragments are combined, so a divergent redefinition can never silently
// overwrite another.
package merge

import (
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

// equateEmpty treats nil and empty slices/maps alike, as they serialize to the
// same JSON.
var equateEmpty = cmpopts.EquateEmpty()

// Disjoint returns the union of dicts. It fails if any key appears in more
// than one input. Inputs are processed left to right, keys in sorted order.
func Disjoint[V any](dicts ...map[string]V) (map[string]V, error) {
	result := make(map[string]V)
	for _, dict := range dicts {
		for _, key := range slices.Sorted(maps.Keys(dict)) {
			if _, exists := result[key]; exists {
				return nil, errors.NewDuplicateKey(key)
			}
			result[key] = dict[key]
		}
	}
	return result, nil
}

// Idempotent returns the union of dicts. A key may appear in several inputs
// only if every occurrence is deep-equal.
func Idempotent[V any](dicts ...map[string]V) (map[string]V, error) {
	result := make(map[string]V)
	for _, dict := range dicts {
		for _, key := range slices.Sorted(maps.Keys(dict)) {
			if _, err := Put(result, key, dict[key]); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Put inserts value under key following the Idempotent rule. It reports
// whether the key was newly inserted; an equal existing value is left in place.
func Put[V any](dst map[string]V, key string, value V) (bool, error) {
	existing, exists := dst[key]
	if !exists {
		dst[key] = value
		return true, nil
	}
	if !Equal(existing, value) {
		return false, errors.NewInconsistentDuplicate(key, cmp.Diff(existing, value, equateEmpty))
	}
	return false, nil
}

// Equal reports whether a and b are deep-equal fragment values.
func Equal(a, b interface{}) bool {
	return cmp.Equal(a, b, equateEmpty)
}
