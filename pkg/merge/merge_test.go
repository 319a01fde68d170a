package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

func sampleDoc() gamestate.Document {
	return gamestate.Document{
		gamestate.DomainCharacter: map[string]any{
			"name":  "Sera",
			"level": 4,
			"inventory": []any{
				map[string]any{"name": "rope", "qty": 1},
			},
		},
		gamestate.DomainWorld: map[string]any{
			"location": "Waterdeep",
			"time":     map[string]any{"day": 12, "hour": 14},
		},
	}
}

func TestMergeEmptyChangeSetIsIdentity(t *testing.T) {
	doc := sampleDoc()
	merged, warnings := Merge(doc, nil)
	assert.Empty(t, warnings)
	assert.Equal(t, doc, merged)

	merged, warnings = Merge(doc, map[string]any{})
	assert.Empty(t, warnings)
	assert.Equal(t, doc, merged)
}

func TestMergeIsIdempotentForNonAppendChanges(t *testing.T) {
	doc := sampleDoc()
	changes := map[string]any{
		gamestate.DomainCharacter: map[string]any{
			"level": 5,
			"conditions": []any{"poisoned"},
		},
		gamestate.DomainWorld: map[string]any{
			"location": "Undermountain",
		},
	}
	once, _ := Merge(doc, changes)
	twice, _ := Merge(once, changes)
	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	doc := sampleDoc()
	_, _ = Merge(doc, map[string]any{
		gamestate.DomainCharacter: map[string]any{"level": 9},
	})
	assert.Equal(t, 4, doc.Map(gamestate.DomainCharacter)["level"])
}

func TestMergeRecursesIntoMaps(t *testing.T) {
	merged, warnings := Merge(sampleDoc(), map[string]any{
		gamestate.DomainWorld: map[string]any{
			"time": map[string]any{"hour": 15},
		},
	})
	assert.Empty(t, warnings)
	world := merged.Map(gamestate.DomainWorld)
	// Sibling keys survive a partial update.
	assert.Equal(t, "Waterdeep", world["location"])
	assert.Equal(t, 15, world["time"].(map[string]any)["hour"])
	assert.Equal(t, 12, world["time"].(map[string]any)["day"])
}

func TestMergeAppendConcatenates(t *testing.T) {
	merged, warnings := Merge(sampleDoc(), map[string]any{
		gamestate.DomainCharacter: map[string]any{
			"inventory": map[string]any{
				AppendKey: []any{map[string]any{"name": "torch", "qty": 3}},
			},
		},
	})
	assert.Empty(t, warnings)
	inventory := merged.Map(gamestate.DomainCharacter)["inventory"].([]any)
	require.Len(t, inventory, 2)
	assert.Equal(t, "rope", inventory[0].(map[string]any)["name"])
	assert.Equal(t, "torch", inventory[1].(map[string]any)["name"])
}

func TestMergeAppendOntoMissingFieldCreatesArray(t *testing.T) {
	merged, warnings := Merge(sampleDoc(), map[string]any{
		gamestate.DomainCharacter: map[string]any{
			"titles": map[string]any{AppendKey: []any{"Hero of Daggerford"}},
		},
	})
	assert.Empty(t, warnings)
	assert.Equal(t, []any{"Hero of Daggerford"}, merged.Map(gamestate.DomainCharacter)["titles"])
}

func TestMergeAppendOntoScalarDropsFragment(t *testing.T) {
	merged, warnings := Merge(sampleDoc(), map[string]any{
		gamestate.DomainCharacter: map[string]any{
			"name": map[string]any{AppendKey: []any{"the Bold"}},
		},
	})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "append target")
	assert.Equal(t, "Sera", merged.Map(gamestate.DomainCharacter)["name"])
}

func TestMergeCoercesIDKeyedMapIntoRecordArray(t *testing.T) {
	changes := map[string]any{
		gamestate.DomainCharacter: map[string]any{
			"inventory": map[string]any{
				"rope":  map[string]any{"qty": 2},
				"torch": map[string]any{"qty": 5},
			},
		},
	}
	merged, warnings := Merge(sampleDoc(), changes)
	assert.Empty(t, warnings)
	inventory := merged.Map(gamestate.DomainCharacter)["inventory"].([]any)
	require.Len(t, inventory, 2)
	// Stable order, ids preserved onto the records.
	assert.Equal(t, "rope", inventory[0].(map[string]any)["id"])
	assert.Equal(t, "torch", inventory[1].(map[string]any)["id"])

	// Coercion is idempotent as well.
	twice, _ := Merge(merged, changes)
	assert.Equal(t, merged, twice)
}

func TestMergeShapeConflictDropsFragmentAndWarns(t *testing.T) {
	merged, warnings := Merge(sampleDoc(), map[string]any{
		gamestate.DomainWorld: map[string]any{
			"time": "noon",
		},
	})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Field, "time")
	// Prior value untouched.
	assert.Equal(t, 12, merged.Map(gamestate.DomainWorld, "time")["day"])
}

func TestMergeAutoInitializesCompletedMissions(t *testing.T) {
	doc := gamestate.Document{
		gamestate.DomainCampaign: map[string]any{
			"active_missions": []any{"find the heir"},
		},
	}
	merged, _ := Merge(doc, map[string]any{
		gamestate.DomainCampaign: map[string]any{
			"active_missions": []any{},
		},
	})
	campaign := merged.Map(gamestate.DomainCampaign)
	assert.Equal(t, []any{}, campaign["active_missions"])
	require.Contains(t, campaign, "completed_missions")
	assert.Equal(t, []any{}, campaign["completed_missions"])
}

func TestMergeNeverClobbersExistingCompanion(t *testing.T) {
	doc := gamestate.Document{
		gamestate.DomainCampaign: map[string]any{
			"active_missions":    []any{"find the heir"},
			"completed_missions": []any{"escort the caravan"},
		},
	}
	merged, _ := Merge(doc, map[string]any{
		gamestate.DomainCampaign: map[string]any{
			"active_missions": []any{},
		},
	})
	assert.Equal(t, []any{"escort the caravan"},
		merged.Map(gamestate.DomainCampaign)["completed_missions"])
}

func TestClassify(t *testing.T) {
	assert.IsType(t, Append{}, classify(map[string]any{AppendKey: []any{1}}))
	assert.IsType(t, Replace{}, classify(map[string]any{AppendKey: []any{1}, "other": 2}))
	assert.IsType(t, Replace{}, classify("scalar"))
	assert.IsType(t, Replace{}, classify([]any{1, 2}))
}
