package validate

import (
	"strconv"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

var (
	notorietyLevels = []string{"unknown", "local", "regional", "national", "legendary"}
	dispositions    = []string{"hostile", "unfriendly", "neutral", "friendly", "trusted", "devoted"}
	timesOfDay      = []string{"dawn", "morning", "midday", "afternoon", "dusk", "evening", "night", "midnight"}
	urgencyLevels   = []string{"none", "low", "moderate", "high", "critical"}
)

func validateWorldTime(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateWorldTime
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	if _, present := m["year"]; present {
		if year, hasYear := intField(domain, m, "year", &warnings); hasYear && year < 0 {
			warnings = append(warnings, gamestate.Warningf(domain, "year", "year %d is negative, dropped", year))
			delete(m, "year")
		}
	}
	if _, present := m["day"]; present {
		clampField(domain, m, "day", 1, 31, &warnings)
	}
	if _, present := m["hour"]; present {
		clampField(domain, m, "hour", 0, 23, &warnings)
	}
	if _, present := m["minute"]; present {
		clampField(domain, m, "minute", 0, 59, &warnings)
	}
	if month, present := m["month"]; present {
		if _, isStr := month.(string); !isStr {
			warnings = append(warnings, gamestate.Warningf(domain, "month", "expected a month name, got %T", month))
		}
	}
	enumField(domain, m, "time_of_day", timesOfDay, &warnings)
	return m, warnings
}

func validateReputation(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateReputation
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	if pub, present := m["public"]; present {
		if pm, isMap := pub.(map[string]any); isMap {
			if _, hasScore := pm["score"]; hasScore {
				clampField(domain, pm, "score", -100, 100, &warnings)
			}
			enumField(domain, pm, "notoriety_level", notorietyLevels, &warnings)
		} else {
			warnings = append(warnings, gamestate.Warningf(domain, "public", "expected an object, got %T", pub))
		}
	}
	if priv, present := m["private"]; present {
		if pm, isMap := priv.(map[string]any); isMap {
			// Per-faction standing, each on the short [-10, 10] scale.
			for faction := range pm {
				clampField(domain, pm, faction, -10, 10, &warnings)
			}
		} else {
			warnings = append(warnings, gamestate.Warningf(domain, "private", "expected an object, got %T", priv))
		}
	}
	return m, warnings
}

func validateRelationships(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateRelationships
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	for npc, val := range m {
		rm, isMap := val.(map[string]any)
		if !isMap {
			warnings = append(warnings, gamestate.Warningf(domain, npc, "expected a relationship object, got %T", val))
			continue
		}
		if _, hasTrust := rm["trust"]; hasTrust {
			clampField(domain, rm, "trust", -10, 10, &warnings)
		}
		enumField(domain, rm, "disposition", dispositions, &warnings)
	}
	return m, warnings
}

func validateArcMilestones(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateArcMilestones
	var warnings []gamestate.ValidationWarning
	list, isList := tree.([]any)
	if !isList {
		warnings = append(warnings, gamestate.Warningf(domain, "", "expected a list, got %T", tree))
		return tree, warnings
	}
	for i, el := range list {
		m, isMap := el.(map[string]any)
		if !isMap {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "expected a milestone object, got %T", el))
			continue
		}
		if _, hasTitle := m["title"].(string); !hasTitle {
			warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "milestone is missing a title"))
		}
		if completed, present := m["completed"]; present {
			if _, isBool := completed.(bool); !isBool {
				warnings = append(warnings, gamestate.Warningf(domain, strconv.Itoa(i), "completed should be a boolean, got %T", completed))
			}
		}
	}
	return list, warnings
}

func validateTimePressure(tree any) (any, []gamestate.ValidationWarning) {
	const domain = gamestate.UpdateTimePressure
	var warnings []gamestate.ValidationWarning
	m, ok := asObject(domain, tree, &warnings)
	if !ok {
		return tree, warnings
	}
	enumField(domain, m, "urgency", urgencyLevels, &warnings)
	if remaining, hasRemaining := intField(domain, m, "remaining_hours", &warnings); hasRemaining && remaining < 0 {
		warnings = append(warnings, gamestate.Warningf(domain, "remaining_hours", "value %d is negative, reset to 0", remaining))
		m["remaining_hours"] = 0
	}
	if deadline, present := m["deadline"]; present {
		if dm, isMap := deadline.(map[string]any); isMap {
			if _, hasDay := dm["day"]; hasDay {
				clampField(domain, dm, "day", 1, 31, &warnings)
			}
			if _, hasHour := dm["hour"]; hasHour {
				clampField(domain, dm, "hour", 0, 23, &warnings)
			}
		} else {
			warnings = append(warnings, gamestate.Warningf(domain, "deadline", "expected an object, got %T", deadline))
		}
	}
	return m, warnings
}
