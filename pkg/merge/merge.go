package merge

import (
	"sort"

	"github.com/huandu/go-clone"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// Merge deep-merges a validated change map into the document and returns the
// merged copy. The input document is never mutated. Merging an empty change
// set returns the document unchanged; merging the same non-append change set
// twice yields the same result as merging it once. Shape conflicts never
// abort the merge: safe coercions are applied, everything else is dropped
// with a warning.
func Merge(doc gamestate.Document, updates map[string]any) (gamestate.Document, []gamestate.ValidationWarning) {
	if len(updates) == 0 {
		return doc, nil
	}
	out := doc.Clone()
	if out == nil {
		out = gamestate.Document{}
	}
	var warnings []gamestate.ValidationWarning
	mergeInto(map[string]any(out), updates, "", &warnings)
	initCompanions(map[string]any(out))
	return out, warnings
}

func mergeInto(dst, src map[string]any, path string, warnings *[]gamestate.ValidationWarning) {
	for _, key := range sortedKeys(src) {
		raw := src[key]
		fieldPath := joinPath(path, key)

		switch ch := classify(raw).(type) {
		case Append:
			appendItems(dst, key, fieldPath, ch.Items, warnings)
		case Replace:
			replaceValue(dst, key, fieldPath, ch.Value, warnings)
		}
	}
}

func appendItems(dst map[string]any, key, fieldPath string, items []any, warnings *[]gamestate.ValidationWarning) {
	switch existing := dst[key].(type) {
	case []any:
		merged := make([]any, 0, len(existing)+len(items))
		merged = append(merged, existing...)
		merged = append(merged, cloneSlice(items)...)
		dst[key] = merged
	case nil:
		dst[key] = cloneSlice(items)
	default:
		*warnings = append(*warnings, gamestate.Warningf("merge", fieldPath,
			"append target holds %T, not an array; fragment dropped", existing))
	}
}

func replaceValue(dst map[string]any, key, fieldPath string, value any, warnings *[]gamestate.ValidationWarning) {
	incoming, incomingIsMap := value.(map[string]any)

	switch existing := dst[key].(type) {
	case map[string]any:
		if incomingIsMap {
			mergeInto(existing, incoming, fieldPath, warnings)
			return
		}
		*warnings = append(*warnings, gamestate.Warningf("merge", fieldPath,
			"existing value is an object but the change holds %T; fragment dropped", value))
	case []any:
		if incomingIsMap {
			// Producer sent records keyed by id where an array of records
			// lives; convert the values into an array before merging.
			dst[key] = recordsFromMap(incoming)
			return
		}
		if _, isList := value.([]any); isList {
			dst[key] = clone.Clone(value)
			return
		}
		*warnings = append(*warnings, gamestate.Warningf("merge", fieldPath,
			"existing value is an array but the change holds %T; fragment dropped", value))
	case nil:
		dst[key] = clone.Clone(value)
	default:
		if incomingIsMap {
			*warnings = append(*warnings, gamestate.Warningf("merge", fieldPath,
				"existing value is a %T but the change holds an object; fragment dropped", existing))
			return
		}
		dst[key] = clone.Clone(value)
	}
}

// recordsFromMap converts an id-keyed record map into an array of records.
// Keys are taken in sorted order so repeated merges stay deterministic; the
// id key is preserved on each record when the record does not carry one.
func recordsFromMap(m map[string]any) []any {
	out := make([]any, 0, len(m))
	for _, id := range sortedKeys(m) {
		record := clone.Clone(m[id])
		if rm, ok := record.(map[string]any); ok {
			if _, hasID := rm["id"]; !hasID {
				rm["id"] = id
			}
		}
		out = append(out, record)
	}
	return out
}

func cloneSlice(items []any) []any {
	return clone.Clone(items).([]any)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
