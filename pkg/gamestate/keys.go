package gamestate

// Top-level domain keys of a session document. Once a domain key is present
// its value keeps the same shape (object vs. array) for the life of the
// session.
const (
	DomainCharacter   = "character"
	DomainWorld       = "world"
	DomainNPCs        = "npcs"
	DomainCombat      = "combat_state"
	DomainEncounter   = "encounter_state"
	DomainCampaign    = "campaign"
	DomainMemory      = "memory"
	DomainNotes       = "dm_notes"
	// DomainCorrections holds the correction notices queued for the next
	// turn's producer; cleared and re-populated once per turn.
	DomainCorrections = "pending_corrections"
)

// Keys recognized inside the producer's top-level response object.
const (
	FieldNarrative     = "narrative"
	FieldStateUpdates  = "state_updates"
	FieldPlanning      = "thinking"
	FieldChoices       = "choices"
	FieldRolls         = "dice_rolls"
	FieldResolution    = "action_resolution"
	FieldLegacyOutcome = "outcome_resolution"
	FieldAdminResponse = "admin_response"
	FieldDebug         = "debug"
	FieldCorrections   = "correction_notices"
	FieldDMNotes       = "dm_notes"
)

// Sub-tree keys recognized inside state_updates. Each has its own validator.
const (
	UpdateResources        = "resources"
	UpdateSpellSlots       = "spell_slots"
	UpdateClassFeatures    = "class_features"
	UpdateCombatState      = "combat_state"
	UpdateEncounterState   = "encounter_state"
	UpdateReputation       = "reputation"
	UpdateRelationships    = "relationships"
	UpdateWorldTime        = "world_time"
	UpdateAttributes       = "attributes"
	UpdateExperience       = "experience"
	UpdateDeathSaves       = "death_saves"
	UpdateSpellsKnown      = "spells_known"
	UpdateStatusConditions = "status_conditions"
	UpdateActiveEffects    = "active_effects"
	UpdateCombatStats      = "combat_stats"
	UpdateEquipment        = "equipment"
	UpdateSocialChallenges = "social_challenges"
	UpdateArcMilestones    = "arc_milestones"
	UpdateTimePressure     = "time_pressure"
)

// UnknownLocation is the sentinel the producer emits when it did not confirm
// the party's location this turn.
const UnknownLocation = "unknown"
