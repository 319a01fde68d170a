package validate

import (
	"strconv"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

var statusConditionSet = []string{
	"blinded", "charmed", "deafened", "frightened", "grappled",
	"incapacitated", "invisible", "paralyzed", "petrified", "poisoned",
	"prone", "restrained", "stunned", "unconscious", "exhaustion",
}

var equipmentSlots = []string{
	"head", "chest", "hands", "legs", "feet",
	"main_hand", "off_hand", "ring_1", "ring_2", "amulet", "cloak", "belt",
}

var abilityNames = []string{
	"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
}

func validateResources(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateResources
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	if hp, present := m["hit_points"]; present {
		if hpm, isMap := hp.(map[string]any); isMap {
			cur, hasCur := intField(domain, hpm, "current", &warnings)
			maxV, hasMax := intField(domain, hpm, "max", &warnings)
			if hasMax && maxV < 0 {
				warnings = append(warnings, gamestate.Warningf(domain, "hit_points.max", "max %d is negative, reset to 0", maxV))
				hpm["max"] = 0
			}
			if hasCur && hasMax && cur > maxV {
				warnings = append(warnings, gamestate.Warningf(domain, "hit_points.current", "current %d exceeds max %d, clamped", cur, maxV))
				hpm["current"] = maxV
			}
		} else {
			warnings = append(warnings, gamestate.Warningf(domain, "hit_points", "expected an object, got %T", hp))
		}
	}
	if hd, present := m["hit_dice"]; present {
		usedMax(domain, "hit_dice", hd, &warnings)
	}
	if _, present := m["exhaustion"]; present {
		clampField(domain, m, "exhaustion", 0, 6, &warnings)
	}
	return m, warnings
}

func validateSpellSlots(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateSpellSlots
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	// Spell slots exist for levels 1-9 only; anything else is dropped.
	for key, val := range m {
		level, err := strconv.Atoi(key)
		if err != nil || level < 1 || level > 9 {
			warnings = append(warnings, gamestate.Warningf(domain, key, "invalid spell slot level %q, dropped", key))
			delete(m, key)
			continue
		}
		usedMax(domain, key, val, &warnings)
	}
	return m, warnings
}

func validateClassFeatures(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateClassFeatures
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	for name, val := range m {
		usedMax(domain, name, val, &warnings)
	}
	return m, warnings
}

func validateAttributes(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateAttributes
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	for _, ability := range abilityNames {
		if _, present := m[ability]; present {
			clampField(domain, m, ability, 1, 30, &warnings)
		}
	}
	return m, warnings
}

func validateExperience(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateExperience
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	if cur, hasCur := intField(domain, m, "current", &warnings); hasCur && cur < 0 {
		warnings = append(warnings, gamestate.Warningf(domain, "current", "experience %d is negative, reset to 0", cur))
		m["current"] = 0
	}
	if _, present := m["level"]; present {
		clampField(domain, m, "level", 1, 20, &warnings)
	}
	return m, warnings
}

func validateDeathSaves(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateDeathSaves
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	for _, field := range []string{"successes", "failures"} {
		if _, present := m[field]; present {
			clampField(domain, m, field, 0, 3, &warnings)
		}
	}
	return m, warnings
}

func validateSpellsKnown(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateSpellsKnown
	var warnings []gamestate.ValidationWarning
	list, isList := tree.([]any)
	if !isList {
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected a list, got %T", tree))
		return tree, warnings
	}
	out := make([]any, 0, len(list))
	for i, el := range list {
		if s, isStr := el.(string); isStr && s != "" {
			out = append(out, s)
			continue
		}
		warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected a spell name, got %T, dropped", el))
	}
	return out, warnings
}

func validateStatusConditions(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateStatusConditions
	var warnings []gamestate.ValidationWarning
	list, isList := tree.([]any)
	if !isList {
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected a list, got %T", tree))
		return tree, warnings
	}
	for i, el := range list {
		s, isStr := el.(string)
		if !isStr {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected a condition name, got %T", el))
			continue
		}
		known := false
		for _, cond := range statusConditionSet {
			if s == cond {
				known = true
				break
			}
		}
		if !known {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "unrecognized condition %q", s))
		}
	}
	return list, warnings
}

func validateActiveEffects(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateActiveEffects
	var warnings []gamestate.ValidationWarning
	list, isList := tree.([]any)
	if !isList {
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected a list, got %T", tree))
		return tree, warnings
	}
	for i, el := range list {
		m, isMap := el.(map[string]any)
		if !isMap {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected an effect object, got %T", el))
			continue
		}
		if _, present := m["name"]; !present {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "effect is missing a name"))
		}
		if dur, hasDur := intField(domain, m, "duration_rounds", &warnings); hasDur && dur < 0 {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "duration %d is negative, reset to 0", dur))
			m["duration_rounds"] = 0
		}
	}
	return list, warnings
}

func validateCombatStats(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateCombatStats
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	if _, present := m["armor_class"]; present {
		clampField(domain, m, "armor_class", 1, 30, &warnings)
	}
	if speed, hasSpeed := intField(domain, m, "speed", &warnings); hasSpeed && speed < 0 {
		warnings = append(warnings, gamestate.Warningf(domain, "speed", "speed %d is negative, reset to 0", speed))
		m["speed"] = 0
	}
	intField(domain, m, "initiative", &warnings)
	return m, warnings
}

func validateEquipment(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateEquipment
	var warnings []gamestate.ValidationWarning
	switch v := tree.(type) {
	case map[string]any:
		// Equipped items keyed by slot name.
		for slot := range v {
			known := false
			for _, s := range equipmentSlots {
				if slot == s {
					known = true
					break
				}
			}
			if !known {
				warnings = append(warnings, gamestate.Warningf(domain, slot, "unrecognized equipment slot %q", slot))
			}
		}
		return v, warnings
	case []any:
		// Loose inventory list of item records or names.
		for i, el := range v {
			if m, isMap := el.(map[string]any); isMap {
				enumField(domain, m, "slot", equipmentSlots, &warnings)
				continue
			}
			if _, isStr := el.(string); !isStr {
				warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected an item, got %T", el))
			}
		}
		return v, warnings
	default:
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected an object or list, got %T", tree))
		return tree, warnings
	}
}
