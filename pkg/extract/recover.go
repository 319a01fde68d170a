package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// Compiled once; no mutable shared state, safe across concurrent sessions.
var (
	// A complete quoted string value for the field, escapes honored.
	narrativePattern = regexp.MustCompile(`"narrative"\s*:\s*("(?:[^"\\]|\\.)*")`)
	adminPattern     = regexp.MustCompile(`"admin_response"\s*:\s*("(?:[^"\\]|\\.)*")`)
	// Truncated variant: the opening quote was written but the response was
	// cut off before the closing quote.
	narrativeTailPattern = regexp.MustCompile(`"narrative"\s*:\s*"((?:[^"\\]|\\.)*)$`)
)

// recoverFields pulls individual fields out of a payload that failed to parse
// as a whole, typically because the generator's response was truncated. Only
// fields that can be recovered safely are returned; a missing map means
// nothing was salvageable.
func recoverFields(payload string) map[string]any {
	recovered := map[string]any{}
	data := []byte(payload)

	if s, err := jsonparser.GetString(data, gamestate.FieldNarrative); err == nil && s != "" {
		recovered[gamestate.FieldNarrative] = s
	} else if s, ok := matchQuoted(narrativePattern, payload); ok {
		recovered[gamestate.FieldNarrative] = s
	} else if m := narrativeTailPattern.FindStringSubmatch(payload); m != nil {
		if tail := unescapeLoose(m[1]); strings.TrimSpace(tail) != "" {
			recovered[gamestate.FieldNarrative] = tail
		}
	}

	if s, err := jsonparser.GetString(data, gamestate.FieldAdminResponse); err == nil && s != "" {
		recovered[gamestate.FieldAdminResponse] = s
	} else if s, ok := matchQuoted(adminPattern, payload); ok {
		recovered[gamestate.FieldAdminResponse] = s
	}

	// A complete state_updates object can survive truncation elsewhere in the
	// payload; recover it only when it parses cleanly on its own.
	if value, dataType, _, err := jsonparser.Get(data, gamestate.FieldStateUpdates); err == nil && dataType == jsonparser.Object {
		var updates map[string]any
		if err := json.Unmarshal(value, &updates); err == nil {
			recovered[gamestate.FieldStateUpdates] = updates
		}
	}

	if len(recovered) == 0 {
		return nil
	}
	return recovered
}

// matchQuoted applies a pattern whose first capture group is a complete JSON
// string literal (including quotes) and returns the decoded value.
func matchQuoted(pattern *regexp.Regexp, payload string) (string, bool) {
	m := pattern.FindStringSubmatch(payload)
	if m == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal([]byte(m[1]), &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// unescapeLoose decodes common JSON escapes in a string that has no closing
// quote. Best effort: unknown escapes are kept verbatim.
func unescapeLoose(s string) string {
	replacer := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r")
	return replacer.Replace(s)
}
