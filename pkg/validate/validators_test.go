package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResourcesUsedMax(t *testing.T) {
	tree := map[string]any{
		"hit_points": map[string]any{"current": float64(25), "max": float64(20)},
		"hit_dice":   map[string]any{"used": float64(5), "max": float64(3)},
	}
	normalized, warnings := validateResources(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, 20, m["hit_points"].(map[string]any)["current"])
	assert.Equal(t, 3, m["hit_dice"].(map[string]any)["used"])
	assert.Len(t, warnings, 2)
}

func TestValidateResourcesNilNumericField(t *testing.T) {
	tree := map[string]any{
		"hit_dice": map[string]any{"used": nil, "max": float64(4)},
	}
	_, warnings := validateResources(tree)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "cannot be empty")
}

func TestValidateResourcesRejectsFractionalFloat(t *testing.T) {
	tree := map[string]any{
		"hit_points": map[string]any{"current": 12.5, "max": float64(20)},
	}
	normalized, warnings := validateResources(tree)
	m := normalized.(map[string]any)["hit_points"].(map[string]any)
	_, present := m["current"]
	assert.False(t, present, "fractional value should be dropped")
	assert.Equal(t, 20, m["max"])
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Message, "whole number")
}

func TestValidateSpellSlotsLevelRange(t *testing.T) {
	tree := map[string]any{
		"3":  map[string]any{"used": float64(1), "max": float64(3)},
		"10": map[string]any{"used": float64(0), "max": float64(1)},
		"x":  map[string]any{"used": float64(0), "max": float64(1)},
	}
	normalized, warnings := validateSpellSlots(tree)
	m := normalized.(map[string]any)
	assert.Contains(t, m, "3")
	assert.NotContains(t, m, "10")
	assert.NotContains(t, m, "x")
	assert.Len(t, warnings, 2)
}

func TestValidateWrongContainerShapeNeverPanics(t *testing.T) {
	for _, tree := range []any{[]any{"not", "a", "map"}, "bare string", 42.0, nil} {
		for _, v := range validators {
			assert.NotPanics(t, func() { v.Fn(tree) }, "validator %s on %T", v.Domain, tree)
		}
	}
}

func TestValidateReputationRanges(t *testing.T) {
	tree := map[string]any{
		"public": map[string]any{
			"score":           float64(150),
			"notoriety_level": "galactic",
		},
		"private": map[string]any{
			"harpers":   float64(-15),
			"zhentarim": float64(4),
		},
	}
	normalized, warnings := validateReputation(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, 100, m["public"].(map[string]any)["score"])
	assert.Equal(t, -10, m["private"].(map[string]any)["harpers"])
	assert.Equal(t, 4, m["private"].(map[string]any)["zhentarim"])
	// Invalid notoriety level is warned about but kept.
	assert.Equal(t, "galactic", m["public"].(map[string]any)["notoriety_level"])
	assert.Len(t, warnings, 3)
}

func TestValidateRelationshipsTrust(t *testing.T) {
	tree := map[string]any{
		"elaria": map[string]any{"trust": float64(12), "disposition": "friendly"},
	}
	normalized, warnings := validateRelationships(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, 10, m["elaria"].(map[string]any)["trust"])
	assert.Len(t, warnings, 1)
}

func TestValidateWorldTimeRanges(t *testing.T) {
	tree := map[string]any{
		"year":  float64(1492),
		"month": "Mirtul",
		"day":   float64(35),
		"hour":  float64(24),
	}
	normalized, warnings := validateWorldTime(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, 31, m["day"])
	assert.Equal(t, 23, m["hour"])
	assert.Equal(t, 1492, m["year"])
	assert.Len(t, warnings, 2)
}

func TestValidateSocialChallengeTierScaling(t *testing.T) {
	tree := []any{
		map[string]any{
			"npc":        "Captain Hale",
			"tier":       "guard",
			"resistance": map[string]any{"current": float64(2), "max": float64(9)},
		},
	}
	normalized, warnings := validateSocialChallenges(tree)
	challenge := normalized.([]any)[0].(map[string]any)
	resistance := challenge["resistance"].(map[string]any)
	// Guard tier caps the meter at 3.
	assert.Equal(t, 3, resistance["max"])
	require.NotEmpty(t, warnings)
}

func TestValidateSocialChallengeUnknownTier(t *testing.T) {
	tree := []any{
		map[string]any{
			"npc":        "The Stranger",
			"tier":       "demigod",
			"resistance": map[string]any{"current": float64(4), "max": float64(20)},
		},
	}
	normalized, warnings := validateSocialChallenges(tree)
	resistance := normalized.([]any)[0].(map[string]any)["resistance"].(map[string]any)
	// Unknown tier: warn, leave the meter alone.
	assert.Equal(t, 20, resistance["max"])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "tier")
}

func TestValidateCombatStateEnums(t *testing.T) {
	tree := map[string]any{
		"phase":             "aftermath",
		"round":             float64(-2),
		"rewards_processed": "yes",
	}
	normalized, warnings := validateCombatState(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, "aftermath", m["phase"])
	assert.Equal(t, 0, m["round"])
	assert.Len(t, warnings, 3)
}

func TestValidateDeathSavesClamped(t *testing.T) {
	tree := map[string]any{"successes": float64(5), "failures": float64(-1)}
	normalized, warnings := validateDeathSaves(tree)
	m := normalized.(map[string]any)
	assert.Equal(t, 3, m["successes"])
	assert.Equal(t, 0, m["failures"])
	assert.Len(t, warnings, 2)
}
