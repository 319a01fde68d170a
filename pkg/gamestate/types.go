package gamestate

import (
	"fmt"

	"github.com/huandu/go-clone"
)

// Document is the persistent per-session state tree. It is read once at the
// start of a turn, transformed in memory, and written back once; absent keys
// are valid and mean "never set".
type Document map[string]any

// Clone returns a deep copy of the document suitable for mutation without
// affecting the original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return clone.Clone(d).(Document)
}

// Map returns the nested map at the given key path, or nil when any step is
// missing or not an object.
func (d Document) Map(path ...string) map[string]any {
	cur := map[string]any(d)
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// EnsureMap returns the nested map at the given key path, creating empty
// objects along the way.
func (d Document) EnsureMap(path ...string) map[string]any {
	cur := map[string]any(d)
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	return cur
}

// StringList returns the array of strings at the given key path, tolerating
// []any elements of mixed types (non-strings are skipped).
func (d Document) StringList(path ...string) []string {
	if len(path) == 0 {
		return nil
	}
	parent := map[string]any(d)
	if len(path) > 1 {
		parent = d.Map(path[:len(path)-1]...)
		if parent == nil {
			return nil
		}
	}
	raw, ok := parent[path[len(path)-1]].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// PlanningBlock is the producer's out-of-band reasoning payload. It is kept
// for audit but must never appear in user-visible narrative.
type PlanningBlock struct {
	Thinking string         `json:"thinking" mapstructure:"thinking"`
	Choices  map[string]any `json:"choices,omitempty" mapstructure:"choices"`
}

// RollRecord is one dice-roll audit entry emitted alongside the narrative.
type RollRecord struct {
	Expression string `json:"expression" mapstructure:"expression"`
	Purpose    string `json:"purpose,omitempty" mapstructure:"purpose"`
	Total      int    `json:"total" mapstructure:"total"`
	Rolls      []int  `json:"rolls,omitempty" mapstructure:"rolls"`
}

// ActionResolution is the unified mechanical outcome of the player's action.
// Legacy "outcome_resolution" objects are normalized into this shape at the
// extraction boundary; when both styles are present the new style wins.
type ActionResolution struct {
	Action  string `json:"action" mapstructure:"action"`
	Skill   string `json:"skill,omitempty" mapstructure:"skill"`
	Total   int    `json:"total" mapstructure:"total"`
	DC      int    `json:"dc,omitempty" mapstructure:"dc"`
	Success bool   `json:"success" mapstructure:"success"`
}

// TurnResult is the structured outcome of one generator call. It is created
// once by the extractor and treated as immutable afterwards.
type TurnResult struct {
	Narrative     string
	StateUpdates  map[string]any
	Planning      *PlanningBlock
	Rolls         []RollRecord
	Resolution    *ActionResolution
	AdminResponse string
	DMNotes       []string
	Corrections   []string
	Debug         map[string]any
}

// ConsumedResources reports whether the turn spent mechanical resources
// (rolls, spell slots, hit dice, class features). Used to decide whether the
// turn is worth anchoring in memory.
func (t *TurnResult) ConsumedResources() bool {
	if len(t.Rolls) > 0 {
		return true
	}
	for _, key := range []string{UpdateResources, UpdateSpellSlots, UpdateClassFeatures} {
		if _, ok := t.StateUpdates[key]; ok {
			return true
		}
	}
	return false
}

// ValidationWarning records a non-fatal schema problem. Warnings never block a
// merge; they are logged and surfaced to the caller.
type ValidationWarning struct {
	Domain  string
	Field   string
	Message string
}

func (w ValidationWarning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("%s: %s", w.Domain, w.Message)
	}
	return fmt.Sprintf("%s.%s: %s", w.Domain, w.Field, w.Message)
}

// Warningf builds a ValidationWarning with a formatted message.
func Warningf(domain, field, format string, args ...any) ValidationWarning {
	return ValidationWarning{Domain: domain, Field: field, Message: fmt.Sprintf(format, args...)}
}
