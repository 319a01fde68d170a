package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-go-golems/grillo/pkg/consistency"
	"github.com/go-go-golems/grillo/pkg/continuity"
	"github.com/go-go-golems/grillo/pkg/extract"
	"github.com/go-go-golems/grillo/pkg/gamestate"
	"github.com/go-go-golems/grillo/pkg/merge"
	"github.com/go-go-golems/grillo/pkg/provider"
	"github.com/go-go-golems/grillo/pkg/store"
	"github.com/go-go-golems/grillo/pkg/validate"
)

// Options configure one turn.
type Options struct {
	// AdminMode marks an administrative ("god") turn: the acknowledgement is
	// synthesized from the narrative when the producer omits it.
	AdminMode bool
}

// TurnOutcome is the single result of ingesting one generator response.
// Failure, when set, means extraction could not recover anything usable: the
// narrative is the placeholder and the persisted document was left at its
// last known-good snapshot.
type TurnOutcome struct {
	TurnID        string
	SessionID     string
	Narrative     string
	AdminResponse string
	Document      gamestate.Document
	Warnings      []gamestate.ValidationWarning
	Notices       []string
	Persisted     bool
	Failure       *extract.ExtractionFailure
}

// Pipeline runs the per-turn ingestion sequence: extract, validate, merge,
// continuity backfill, consistency check, persist. It is synchronous and
// holds no per-session state; one in-flight turn per session is the store
// collaborator's contract.
type Pipeline struct {
	store  store.DocumentStore
	logger zerolog.Logger
}

func New(docStore store.DocumentStore, logger zerolog.Logger) *Pipeline {
	return &Pipeline{store: docStore, logger: logger}
}

// RunTurn ingests one raw generator response for a session. The returned
// outcome is always usable; err is reserved for store failures.
func (p *Pipeline) RunTurn(ctx context.Context, sessionID, rawText string, opts Options) (*TurnOutcome, error) {
	turnID := uuid.NewString()
	lg := p.logger.With().
		Str("session_id", sessionID).
		Str("turn_id", turnID).
		Logger()

	lg.Info().Int("raw_bytes", len(rawText)).Msg("turn: starting ingestion")

	pre, err := store.ReadOrEmpty(ctx, p.store, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "read document for session %s", sessionID)
	}

	outcome := &TurnOutcome{
		TurnID:    turnID,
		SessionID: sessionID,
		Document:  pre,
	}

	result, extractErr := extract.Extract(rawText)
	if extractErr != nil {
		var failure *extract.ExtractionFailure
		if !errors.As(extractErr, &failure) {
			failure = &extract.ExtractionFailure{Reason: extractErr.Error()}
		}
		lg.Warn().Str("reason", failure.Reason).Msg("turn: extraction failed, aborting before merge")
		outcome.Narrative = result.Narrative
		outcome.Failure = failure
		return outcome, nil
	}

	normalized, warnings := validate.Apply(result.StateUpdates, lg)
	merged, mergeWarnings := merge.Merge(pre, normalized)
	warnings = append(warnings, mergeWarnings...)

	adminAck := continuity.Apply(pre, merged, result, opts.AdminMode, lg)

	detected := consistency.Check(pre, merged, lg)
	consistency.QueueNotices(merged, result.Corrections, detected)

	if err := p.store.Write(ctx, sessionID, merged); err != nil {
		outcome.Narrative = result.Narrative
		outcome.Document = merged
		return outcome, errors.Wrapf(err, "write document for session %s", sessionID)
	}

	outcome.Narrative = result.Narrative
	outcome.AdminResponse = adminAck
	outcome.Document = merged
	outcome.Warnings = warnings
	outcome.Notices = append(append([]string{}, result.Corrections...), detected...)
	outcome.Persisted = true

	lg.Info().
		Int("warnings", len(warnings)).
		Int("notices", len(outcome.Notices)).
		Msg("turn: ingestion complete")
	return outcome, nil
}

// RunWithGenerator asks the generator for one candidate text and ingests it.
// A provider failure is treated the same way as unparseable text: the
// session document stays untouched and the outcome carries the placeholder
// narrative.
func (p *Pipeline) RunWithGenerator(ctx context.Context, sessionID, prompt string, gen provider.Generator, opts Options) (*TurnOutcome, error) {
	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn().Err(err).Str("session_id", sessionID).Msg("turn: generator failed")
		pre, readErr := store.ReadOrEmpty(ctx, p.store, sessionID)
		if readErr != nil {
			return nil, errors.Wrapf(readErr, "read document for session %s", sessionID)
		}
		return &TurnOutcome{
			TurnID:    uuid.NewString(),
			SessionID: sessionID,
			Narrative: extract.PlaceholderNarrative,
			Document:  pre,
			Failure:   &extract.ExtractionFailure{Reason: err.Error()},
		}, nil
	}
	return p.RunTurn(ctx, sessionID, raw, opts)
}
