package budget

// TimelineDuplicationFactor divides the history budget when the outbound
// request also serializes the per-entry-prefixed timeline log: that rendering
// repeats the same story text, roughly doubling its token cost.
const TimelineDuplicationFactor = 2

// DefaultReservedTracking is the fixed allowance held back for the auxiliary
// entity-tracking text appended to every request.
const DefaultReservedTracking = 1500

// Budget is the per-turn token plan for the next outbound request. It is
// recomputed every turn from the provider limits and never persisted.
type Budget struct {
	MaxInput            int
	ScaffoldEstimate    int
	ReservedForTracking int
	AvailableForHistory int
}

// Compute derives the history budget from the provider input limit, the
// estimated size of the fixed prompt scaffold, and the reserved tracking
// allowance. Compute is a pure function; the same inputs always yield the
// same budget.
func Compute(maxInput, scaffoldEstimate, reserved int, includeTimelineLog bool) Budget {
	raw := maxInput - scaffoldEstimate - reserved
	if raw < 0 {
		raw = 0
	}
	available := raw
	if includeTimelineLog {
		available = raw / TimelineDuplicationFactor
	}
	return Budget{
		MaxInput:            maxInput,
		ScaffoldEstimate:    scaffoldEstimate,
		ReservedForTracking: reserved,
		AvailableForHistory: available,
	}
}

// TruncateHistory drops the oldest entries until the remainder fits the
// budget. The most recent turns always survive; an oversized single entry is
// still kept when it is the newest, so the request never loses the turn it
// is about.
func TruncateHistory(entries []string, availableTokens int) []string {
	if len(entries) == 0 {
		return entries
	}
	total := 0
	keepFrom := len(entries) - 1
	for i := len(entries) - 1; i >= 0; i-- {
		cost := EstimateTokens(entries[i])
		if i < len(entries)-1 && total+cost > availableTokens {
			keepFrom = i + 1
			return entries[keepFrom:]
		}
		total += cost
		keepFrom = i
	}
	return entries[keepFrom:]
}
