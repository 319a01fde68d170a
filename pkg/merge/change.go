package merge

// AppendKey is the reserved key the producer uses inside a change value to
// request array concatenation instead of replacement.
const AppendKey = "append"

// Change is the resolved intent of one incoming value. The producer's wire
// format is untagged JSON; lifting it into an explicit variant keeps the
// merger itself free of magic-key lookups.
type Change interface {
	isChange()
}

// Replace sets the target to Value outright (maps still merge recursively).
type Replace struct {
	Value any
}

// Append concatenates Items onto the target array.
type Append struct {
	Items []any
}

func (Replace) isChange() {}
func (Append) isChange()  {}

// classify lifts a raw producer value into its Change variant. Only an
// object holding nothing but the reserved key is an append request; an
// object that merely contains an "append" field among others is ordinary
// data.
func classify(value any) Change {
	m, ok := value.(map[string]any)
	if !ok || len(m) != 1 {
		return Replace{Value: value}
	}
	items, ok := m[AppendKey]
	if !ok {
		return Replace{Value: value}
	}
	switch v := items.(type) {
	case []any:
		return Append{Items: v}
	default:
		return Append{Items: []any{v}}
	}
}
