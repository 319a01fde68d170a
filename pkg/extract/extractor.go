package extract

import (
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// PlaceholderNarrative is returned as user-visible text when no narrative
// could be recovered from the generator's response. It is never raw JSON and
// never empty.
const PlaceholderNarrative = "The narrator falls silent for a moment, gathering the threads of the story."

// ExtractionFailure reports that the generator's text could not be parsed
// into a structured turn result, even after field-level recovery. The caller
// still receives a usable placeholder result alongside it.
type ExtractionFailure struct {
	Reason string
	Raw    string
}

func (e *ExtractionFailure) Error() string {
	return "extraction failed: " + e.Reason
}

func failure(reason, raw string) *ExtractionFailure {
	if len(raw) > 512 {
		raw = raw[:512]
	}
	return &ExtractionFailure{Reason: reason, Raw: raw}
}

// Extract turns raw generator text into a TurnResult. The result is always
// usable: when err is non-nil it is an *ExtractionFailure and the returned
// result carries the placeholder narrative and no state updates.
func Extract(raw string) (*gamestate.TurnResult, error) {
	cleaned := stripWrapping(raw)
	if cleaned == "" {
		return placeholderResult(), failure("empty response", raw)
	}

	payload, kind := locatePayload(cleaned)
	switch kind {
	case payloadNone:
		// Plain prose with no JSON container at all; the whole text is the
		// narrative.
		return buildResult(map[string]any{gamestate.FieldNarrative: cleaned}), nil
	case payloadObject, payloadArray:
	}

	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		recovered := recoverFields(payload)
		if len(recovered) == 0 {
			return placeholderResult(), failure("unparseable JSON: "+err.Error(), raw)
		}
		log.Debug().Int("recovered_fields", len(recovered)).Msg("extract: recovered fields from malformed JSON")
		return buildResult(recovered), nil
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		// Array payload with no trailing object: look for an element that
		// carries the narrative (dice artifacts precede the real payload).
		if arr, isArr := parsed.([]any); isArr {
			for _, el := range arr {
				if m, isMap := el.(map[string]any); isMap {
					if _, has := m[gamestate.FieldNarrative]; has {
						return buildResult(m), nil
					}
				}
			}
		}
		return placeholderResult(), failure("no object payload found", raw)
	}
	return buildResult(obj), nil
}

func placeholderResult() *gamestate.TurnResult {
	return &gamestate.TurnResult{Narrative: PlaceholderNarrative}
}

// buildResult maps a parsed top-level object into an immutable TurnResult,
// applying the narrative/administrative preference rules and scrubbing any
// planning block that leaked into the narrative text.
func buildResult(obj map[string]any) *gamestate.TurnResult {
	result := &gamestate.TurnResult{}

	narrative, _ := obj[gamestate.FieldNarrative].(string)
	narrative = strings.TrimSpace(scrubPlanningBlock(narrative))

	admin, _ := obj[gamestate.FieldAdminResponse].(string)
	admin = strings.TrimSpace(admin)
	result.AdminResponse = admin

	// Narrative wins over the administrative response when both are present;
	// a lone administrative response is promoted rather than discarded.
	switch {
	case narrative != "":
		result.Narrative = narrative
	case admin != "":
		result.Narrative = admin
	default:
		result.Narrative = PlaceholderNarrative
	}

	if updates, ok := obj[gamestate.FieldStateUpdates].(map[string]any); ok {
		result.StateUpdates = updates
	}

	result.Planning = decodePlanning(obj)
	result.Rolls = decodeRolls(obj[gamestate.FieldRolls])
	result.Resolution, result.Debug = resolveAction(obj)
	result.Corrections = stringSlice(obj[gamestate.FieldCorrections])
	result.DMNotes = collectDMNotes(obj, result.Debug)

	return result
}

func decodePlanning(obj map[string]any) *gamestate.PlanningBlock {
	thinking, hasThinking := obj[gamestate.FieldPlanning].(string)
	choices, hasChoices := obj[gamestate.FieldChoices].(map[string]any)
	if !hasThinking && !hasChoices {
		return nil
	}
	return &gamestate.PlanningBlock{Thinking: thinking, Choices: choices}
}

func decodeRolls(raw any) []gamestate.RollRecord {
	if raw == nil {
		return nil
	}
	var rolls []gamestate.RollRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rolls,
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(raw); err != nil {
		log.Debug().Err(err).Msg("extract: dice roll entries malformed, dropping")
		return nil
	}
	return rolls
}

func collectDMNotes(obj map[string]any, debug map[string]any) []string {
	notes := stringSlice(obj[gamestate.FieldDMNotes])
	if debug != nil {
		notes = append(notes, stringSlice(debug[gamestate.FieldDMNotes])...)
	}
	return notes
}

func stringSlice(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			if s, ok := el.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
