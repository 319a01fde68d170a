package continuity

import (
	"strings"
	"unicode"

	"github.com/huandu/go-clone"
	"github.com/rs/zerolog"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// Fallback world time used when a session has never had its clock set.
const (
	DefaultYear  = 1492
	DefaultMonth = "Hammer"
	DefaultDay   = 1
	DefaultHour  = 8
)

const (
	// MaxAnchorLength bounds one memory entry.
	MaxAnchorLength = 240
	// MaxMemoryEntries bounds the running memory list; oldest entries fall off.
	MaxMemoryEntries = 50
)

// Apply backfills continuity-critical fields the producer omitted, using the
// pre-merge document as the reference for fallback values. The merged
// document is mutated in place. The returned string is the administrative
// acknowledgement for this turn, synthesized from the narrative when the
// producer left it empty in administrative mode.
func Apply(pre, merged gamestate.Document, result *gamestate.TurnResult, adminMode bool, logger zerolog.Logger) string {
	ensureWorldTime(pre, merged, result, logger)
	retainLocation(pre, merged, logger)
	anchorMemory(merged, result)
	persistNotes(merged, result)
	return adminResponse(result, adminMode)
}

// ensureWorldTime carries the prior clock forward verbatim when the change
// set's world-time sub-tree is missing or lacks an hour, and synthesizes the
// fixed default when the session never had one.
func ensureWorldTime(pre, merged gamestate.Document, result *gamestate.TurnResult, logger zerolog.Logger) {
	if worldTimeComplete(result.StateUpdates) {
		return
	}
	if prior, ok := pre[gamestate.UpdateWorldTime].(map[string]any); ok {
		merged[gamestate.UpdateWorldTime] = clone.Clone(prior)
		return
	}
	logger.Debug().Msg("continuity: no world time on record, synthesizing default")
	wt := map[string]any{
		"year":   DefaultYear,
		"month":  DefaultMonth,
		"day":    DefaultDay,
		"hour":   DefaultHour,
		"minute": 0,
	}
	// A partial producer time overlays the default so the clock never stays
	// hour-less.
	if partial, ok := merged[gamestate.UpdateWorldTime].(map[string]any); ok {
		for k, v := range partial {
			wt[k] = v
		}
	}
	merged[gamestate.UpdateWorldTime] = wt
}

func worldTimeComplete(updates map[string]any) bool {
	tree, ok := updates[gamestate.UpdateWorldTime].(map[string]any)
	if !ok {
		return false
	}
	_, hasHour := tree["hour"]
	return hasHour
}

// retainLocation keeps the previous location when the narrator did not
// confirm one this turn.
func retainLocation(pre, merged gamestate.Document, logger zerolog.Logger) {
	world := merged.Map(gamestate.DomainWorld)
	if world == nil {
		return
	}
	loc, _ := world["location"].(string)
	if loc != gamestate.UnknownLocation {
		return
	}
	prior, _ := pre.Map(gamestate.DomainWorld)["location"].(string)
	if prior != "" && prior != gamestate.UnknownLocation {
		logger.Debug().Str("location", prior).Msg("continuity: location unconfirmed, retaining previous")
		world["location"] = prior
	}
}

// anchorMemory appends a bounded summary of the turn's narrative to the
// running memory list when the turn involved a roll or spent resources.
// Near-duplicate entries are skipped.
func anchorMemory(merged gamestate.Document, result *gamestate.TurnResult) {
	if !result.ConsumedResources() {
		return
	}
	anchor := truncateAnchor(result.Narrative)
	if anchor == "" {
		return
	}

	existing, _ := merged[gamestate.DomainMemory].([]any)
	normalized := normalizeForComparison(anchor)
	for _, entry := range existing {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		prior := normalizeForComparison(s)
		if strings.Contains(prior, normalized) || strings.Contains(normalized, prior) {
			return
		}
	}

	existing = append(existing, anchor)
	if len(existing) > MaxMemoryEntries {
		existing = existing[len(existing)-MaxMemoryEntries:]
	}
	merged[gamestate.DomainMemory] = existing
}

func truncateAnchor(narrative string) string {
	s := strings.TrimSpace(narrative)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= MaxAnchorLength {
		return s
	}
	return strings.TrimRightFunc(string(runes[:MaxAnchorLength]), unicode.IsSpace) + "..."
}

func normalizeForComparison(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// persistNotes merges the producer's DM-only notes into the persisted notes
// list. Exact duplicates are skipped; existing notes are never removed.
func persistNotes(merged gamestate.Document, result *gamestate.TurnResult) {
	if len(result.DMNotes) == 0 {
		return
	}
	existing, _ := merged[gamestate.DomainNotes].([]any)
	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		if s, ok := entry.(string); ok {
			seen[s] = struct{}{}
		}
	}
	for _, note := range result.DMNotes {
		if _, dup := seen[note]; dup {
			continue
		}
		seen[note] = struct{}{}
		existing = append(existing, note)
	}
	merged[gamestate.DomainNotes] = existing
}

// adminResponse guarantees a non-empty acknowledgement in administrative
// mode by falling back to the narrative's first sentence.
func adminResponse(result *gamestate.TurnResult, adminMode bool) string {
	if result.AdminResponse != "" {
		return result.AdminResponse
	}
	if !adminMode {
		return ""
	}
	return firstSentence(result.Narrative)
}

func firstSentence(text string) string {
	s := strings.TrimSpace(text)
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			return s[:i+1]
		}
	}
	return s
}
