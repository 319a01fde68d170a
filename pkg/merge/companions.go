package merge

// companionFields pairs list fields with the companion that must exist
// alongside them: a "completed" list accompanies every "active" list of the
// same kind, so that emptying the active list has somewhere to move entries.
var companionFields = map[string]string{
	"active_missions":   "completed_missions",
	"active_quests":     "completed_quests",
	"active_objectives": "completed_objectives",
}

// initCompanions walks the merged tree and initializes missing companions to
// an empty array. An existing companion value is never touched, so the
// initialization happens at most once per field for the life of a session.
func initCompanions(m map[string]any) {
	for key, value := range m {
		if companion, ok := companionFields[key]; ok {
			if _, present := m[companion]; !present {
				m[companion] = []any{}
			}
		}
		if child, ok := value.(map[string]any); ok {
			initCompanions(child)
		}
	}
}
