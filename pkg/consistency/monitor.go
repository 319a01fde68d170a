package consistency

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// Check runs the cross-turn invariant checks against the pre-merge and
// post-merge documents. Each check yields at most one notice per turn. The
// monitor only detects: it never mutates the flags it reports on, the next
// turn's producer is instructed to fix them instead.
func Check(prev, cur gamestate.Document, logger zerolog.Logger) []string {
	var notices []string
	if notice, ok := rewardFlagNotice(cur); ok {
		logger.Warn().Str("notice", notice).Msg("consistency: reward flag discrepancy")
		notices = append(notices, notice)
	}
	if notice, ok := temporalNotice(prev, cur); ok {
		logger.Warn().Str("notice", notice).Msg("consistency: temporal violation")
		notices = append(notices, notice)
	}
	return notices
}

// QueueNotices replaces the document's pending corrections with this turn's
// notices. The previous turn's notices were consumed by the prompt that
// produced this turn; producer-set notices survive the clear because they
// arrive through the notices argument, not the old queue.
func QueueNotices(doc gamestate.Document, producerSet, detected []string) {
	queue := make([]any, 0, len(producerSet)+len(detected))
	seen := map[string]struct{}{}
	for _, n := range append(append([]string{}, producerSet...), detected...) {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		queue = append(queue, n)
	}
	if len(queue) == 0 {
		delete(doc, gamestate.DomainCorrections)
		return
	}
	doc[gamestate.DomainCorrections] = queue
}

// rewardFlagNotice fires when combat or encounter state shows an ended phase
// with a recorded summary but rewards_processed is still false.
func rewardFlagNotice(cur gamestate.Document) (string, bool) {
	for _, domain := range []string{gamestate.DomainCombat, gamestate.DomainEncounter} {
		state := cur.Map(domain)
		if state == nil {
			continue
		}
		phase, _ := state["phase"].(string)
		if phase != "ended" {
			continue
		}
		if _, hasSummary := state["summary"].(map[string]any); !hasSummary {
			continue
		}
		processed, isBool := state["rewards_processed"].(bool)
		if !isBool || processed {
			continue
		}
		return fmt.Sprintf(
			"%s shows phase \"ended\" with a summary recorded, but rewards_processed is still false; grant any outstanding rewards and set rewards_processed to true", domain), true
	}
	return "", false
}
