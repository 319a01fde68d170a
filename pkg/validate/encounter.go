package validate

import (
	"strconv"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

var (
	combatPhases        = []string{"none", "starting", "active", "ended"}
	encounterTypes      = []string{"combat", "social", "exploration", "puzzle", "chase", "mixed"}
	encounterDifficulty = []string{"trivial", "easy", "medium", "hard", "deadly"}
)

// tierResistanceBounds sizes a social challenge's resistance meter by the
// NPC's narrative power tier. The upper bound for the top tiers is open-ended
// ("15+"); 99 stands in as the clamp ceiling.
var tierResistanceBounds = map[string][2]int{
	"commoner":   {1, 2},
	"merchant":   {2, 3},
	"guard":      {2, 3},
	"noble":      {3, 5},
	"knight":     {3, 5},
	"lord":       {5, 8},
	"general":    {5, 8},
	"king":       {8, 12},
	"ancient":    {8, 12},
	"god":        {15, 99},
	"primordial": {15, 99},
}

func validateCombatState(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateCombatState
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	enumField(domain, m, "phase", combatPhases, &warnings)
	if round, hasRound := intField(domain, m, "round", &warnings); hasRound && round < 0 {
		warnings = append(warnings, gamestate.Warningf(domain, "round", "round %d is negative, reset to 0", round))
		m["round"] = 0
	}
	if rewards, present := m["rewards_processed"]; present {
		if _, isBool := rewards.(bool); !isBool {
			warnings = append(warnings, gamestate.Warningf(domain, "rewards_processed", "expected a boolean, got %T", rewards))
		}
	}
	if combatants, present := m["combatants"]; present {
		if _, isList := combatants.([]any); !isList {
			warnings = append(warnings, gamestate.Warningf(domain, "combatants", "expected a list, got %T", combatants))
		}
	}
	if summary, present := m["summary"]; present {
		if _, isMap := summary.(map[string]any); !isMap {
			warnings = append(warnings, gamestate.Warningf(domain, "summary", "expected an object, got %T", summary))
		}
	}
	return m, warnings
}

func validateEncounterState(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateEncounterState
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	enumField(domain, m, "type", encounterTypes, &warnings)
	enumField(domain, m, "difficulty", encounterDifficulty, &warnings)
	enumField(domain, m, "phase", combatPhases, &warnings)
	return m, warnings
}

func validateSocialChallenges(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateSocialChallenges
	var warnings []gamestate.ValidationWarning
	list, isList := tree.([]any)
	if !isList {
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected a list, got %T", tree))
		return tree, warnings
	}
	for i, el := range list {
		m, isMap := el.(map[string]any)
		if !isMap {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected a challenge object, got %T", el))
			continue
		}
		validateSocialChallenge(strconv.Itoa(i), m, &warnings)
	}
	return list, warnings
}

func validateSocialChallenge(field string, m map[string]any, warnings *[]gamestate.ValidationWarning) {
	const domain = gamestate.UpdateSocialChallenges

	tier, _ := m["tier"].(string)
	bounds, knownTier := tierResistanceBounds[tier]
	if tier != "" && !knownTier {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "unrecognized tier %q", tier))
	}

	resistance, hasResistance := m["resistance"].(map[string]any)
	if !hasResistance {
		if raw, present := m["resistance"]; present {
			*warnings = append(*warnings, gamestate.Warningf(domain, field, "expected a resistance object, got %T", raw))
		}
		return
	}

	cur, hasCur := intField(domain, resistance, "current", warnings)
	maxV, hasMax := intField(domain, resistance, "max", warnings)
	if knownTier && hasMax {
		clamped := maxV
		if clamped < bounds[0] {
			clamped = bounds[0]
		}
		if clamped > bounds[1] {
			clamped = bounds[1]
		}
		if clamped != maxV {
			*warnings = append(*warnings, gamestate.Warningf(domain, field,
				"resistance max %d outside tier %q range [%d, %d], clamped to %d", maxV, tier, bounds[0], bounds[1], clamped))
			resistance["max"] = clamped
			maxV = clamped
		}
	}
	if hasCur && cur < 0 {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "resistance %d is negative, reset to 0", cur))
		resistance["current"] = 0
		cur = 0
	}
	if hasCur && hasMax && cur > maxV {
		*warnings = append(*warnings, gamestate.Warningf(domain, field, "resistance %d exceeds max %d, clamped", cur, maxV))
		resistance["current"] = maxV
	}
}
