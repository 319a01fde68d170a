package extract

import (
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// resolveAction normalizes the mechanical outcome of the player's action.
// Two producer generations coexist: the unified "action_resolution" object
// and the legacy "outcome_resolution" shape. The new style wins wholesale;
// when both are present the legacy object is preserved in debug metadata so
// the conflict stays visible, but its mechanics are never merged.
func resolveAction(obj map[string]any) (*gamestate.ActionResolution, map[string]any) {
	debug, _ := obj[gamestate.FieldDebug].(map[string]any)

	newStyle := decodeResolution(obj[gamestate.FieldResolution])
	legacyRaw, hasLegacy := obj[gamestate.FieldLegacyOutcome]

	if newStyle != nil {
		if hasLegacy {
			if debug == nil {
				debug = map[string]any{}
			}
			debug["legacy_outcome_resolution"] = legacyRaw
			log.Debug().Msg("extract: both action_resolution and outcome_resolution present, keeping new style")
		}
		return newStyle, debug
	}
	if hasLegacy {
		return decodeResolution(normalizeLegacyOutcome(legacyRaw)), debug
	}
	return nil, debug
}

// normalizeLegacyOutcome maps the legacy field names onto the unified shape.
// Legacy objects sometimes carry the skill under "check" and the total under
// "roll_total".
func normalizeLegacyOutcome(raw any) any {
	m, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	out := map[string]any{}
	for k, v := range m {
		switch k {
		case "check":
			out["skill"] = v
		case "roll_total":
			out["total"] = v
		case "difficulty":
			out["dc"] = v
		default:
			out[k] = v
		}
	}
	return out
}

func decodeResolution(raw any) *gamestate.ActionResolution {
	if raw == nil {
		return nil
	}
	var res gamestate.ActionResolution
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &res,
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(raw); err != nil {
		log.Debug().Err(err).Msg("extract: action resolution malformed, dropping")
		return nil
	}
	return &res
}
