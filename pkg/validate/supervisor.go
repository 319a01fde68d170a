package validate

import (
	"github.com/rs/zerolog"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// Func validates and normalizes one state_updates sub-tree. Implementations
// never panic on malformed input by contract; the supervisor still guards
// each call so a slipped panic cannot take the other validators down.
type Func func(tree any) (any, []gamestate.ValidationWarning)

// validators runs in a fixed order so warning output is deterministic.
var validators = []struct {
	Domain string
	Fn     Func
}{
	{gamestate.UpdateResources, validateResources},
	{gamestate.UpdateSpellSlots, validateSpellSlots},
	{gamestate.UpdateClassFeatures, validateClassFeatures},
	{gamestate.UpdateCombatState, validateCombatState},
	{gamestate.UpdateEncounterState, validateEncounterState},
	{gamestate.UpdateReputation, validateReputation},
	{gamestate.UpdateRelationships, validateRelationships},
	{gamestate.UpdateWorldTime, validateWorldTime},
	{gamestate.UpdateAttributes, validateAttributes},
	{gamestate.UpdateExperience, validateExperience},
	{gamestate.UpdateDeathSaves, validateDeathSaves},
	{gamestate.UpdateSpellsKnown, validateSpellsKnown},
	{gamestate.UpdateStatusConditions, validateStatusConditions},
	{gamestate.UpdateActiveEffects, validateActiveEffects},
	{gamestate.UpdateCombatStats, validateCombatStats},
	{gamestate.UpdateEquipment, validateEquipment},
	{gamestate.UpdateSocialChallenges, validateSocialChallenges},
	{gamestate.UpdateArcMilestones, validateArcMilestones},
	{gamestate.UpdateTimePressure, validateTimePressure},
}

// Apply runs every registered validator over its sub-tree of updates and
// returns the normalized update map plus all collected warnings. Sub-trees
// without a registered validator (custom campaign state) pass through
// untouched. Apply never fails: a validator fault is logged and its sub-tree
// is left as the producer sent it.
func Apply(updates map[string]any, logger zerolog.Logger) (map[string]any, []gamestate.ValidationWarning) {
	if len(updates) == 0 {
		return updates, nil
	}
	out := make(map[string]any, len(updates))
	for k, v := range updates {
		out[k] = v
	}

	var all []gamestate.ValidationWarning
	for _, v := range validators {
		tree, present := out[v.Domain]
		if !present {
			continue
		}
		normalized, warnings := runIsolated(v.Domain, v.Fn, tree, logger)
		out[v.Domain] = normalized
		for _, w := range warnings {
			logger.Warn().Str("domain", w.Domain).Str("field", w.Field).Msg(w.Message)
		}
		all = append(all, warnings...)
	}
	return out, all
}

// runIsolated is the per-validator error boundary: a panic inside one
// validator becomes a logged error and a no-op for that sub-tree, and the
// remaining validators still run.
func runIsolated(domain string, fn Func, tree any, logger zerolog.Logger) (normalized any, warnings []gamestate.ValidationWarning) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("domain", domain).Interface("panic", r).Msg("validator panicked, leaving sub-tree untouched")
			normalized = tree
			warnings = nil
		}
	}()
	return fn(tree)
}
