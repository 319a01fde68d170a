package validate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

func TestApplyEmptyUpdates(t *testing.T) {
	normalized, warnings := Apply(nil, zerolog.Nop())
	assert.Nil(t, normalized)
	assert.Empty(t, warnings)
}

func TestApplyPassesUnknownDomainsThrough(t *testing.T) {
	updates := map[string]any{
		"campaign_custom": map[string]any{"cult_suspicion": 3},
	}
	normalized, warnings := Apply(updates, zerolog.Nop())
	assert.Empty(t, warnings)
	assert.Equal(t, updates["campaign_custom"], normalized["campaign_custom"])
}

func TestApplyIsolatesPanickingValidator(t *testing.T) {
	original := validators
	defer func() { validators = original }()

	validators = []struct {
		Domain string
		Fn     Func
	}{
		{"boom", func(any) (any, []gamestate.ValidationWarning) { panic("validator bug") }},
		{gamestate.UpdateExperience, validateExperience},
	}

	updates := map[string]any{
		"boom":                     map[string]any{"x": 1},
		gamestate.UpdateExperience: map[string]any{"level": float64(25)},
	}
	normalized, warnings := Apply(updates, zerolog.Nop())

	// The faulting validator is a no-op for its sub-tree; the next one still
	// ran and clamped the level.
	assert.Equal(t, map[string]any{"x": 1}, normalized["boom"])
	exp := normalized[gamestate.UpdateExperience].(map[string]any)
	assert.Equal(t, 20, exp["level"])
	require.NotEmpty(t, warnings)
}

func TestApplyDoesNotMutateInputMap(t *testing.T) {
	updates := map[string]any{
		gamestate.UpdateSpellsKnown: []any{"fireball", 7},
	}
	normalized, _ := Apply(updates, zerolog.Nop())
	assert.Len(t, normalized[gamestate.UpdateSpellsKnown], 1)
	// Top-level input map still maps the domain to the original value.
	assert.Len(t, updates[gamestate.UpdateSpellsKnown], 2)
}
