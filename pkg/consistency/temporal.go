package consistency

import (
	"fmt"

	"github.com/go-go-golems/grillo/pkg/gamestate"
)

// monthOrder maps calendar month names to their position so the clock can be
// compared across month boundaries. An unrecognized month makes the tuple
// incomplete rather than wrong.
var monthOrder = map[string]int{
	"Hammer": 1, "Alturiak": 2, "Ches": 3, "Tarsakh": 4,
	"Mirtul": 5, "Kythorn": 6, "Flamerule": 7, "Eleasis": 8,
	"Eleint": 9, "Marpenoth": 10, "Uktar": 11, "Nightal": 12,
}

// timeTuple is (year, month, day, hour, minute) in comparison order.
type timeTuple [5]int

// temporalNotice fires only when both the old and new world time are
// complete and the new one is strictly earlier. Partial world-time updates
// are a routine producer omission and must never be flagged; treating them
// as violations was a known false-positive failure mode.
func temporalNotice(prev, cur gamestate.Document) (string, bool) {
	oldT, oldOK := worldTimeTuple(prev)
	newT, newOK := worldTimeTuple(cur)
	if !oldOK || !newOK {
		return "", false
	}
	if compareTuples(newT, oldT) >= 0 {
		return "", false
	}
	return fmt.Sprintf(
		"world_time moved backwards (from %s to %s); re-state the current time, moving only forward",
		formatTuple(oldT), formatTuple(newT)), true
}

// worldTimeTuple reads the document clock. The tuple is complete only when
// the date components (year, month, day) are present and non-zero and hour
// and minute are present; hour and minute may legitimately be zero.
func worldTimeTuple(doc gamestate.Document) (timeTuple, bool) {
	wt := doc.Map(gamestate.UpdateWorldTime)
	if wt == nil {
		return timeTuple{}, false
	}
	year, yearOK := intAt(wt, "year")
	monthName, _ := wt["month"].(string)
	month, monthOK := monthOrder[monthName]
	day, dayOK := intAt(wt, "day")
	hour, hourOK := intAt(wt, "hour")
	minute, minuteOK := intAt(wt, "minute")

	if !yearOK || year == 0 || !monthOK || !dayOK || day == 0 || !hourOK || !minuteOK {
		return timeTuple{}, false
	}
	return timeTuple{year, month, day, hour, minute}, true
}

func compareTuples(a, b timeTuple) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func formatTuple(t timeTuple) string {
	return fmt.Sprintf("year %d month %d day %d %02d:%02d", t[0], t[1], t[2], t[3], t[4])
}

func intAt(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}
