package provider

import (
	"context"

	"github.com/pkg/errors"
)

// Generator is the external narrator collaborator. Implementations own their
// retries, timeouts and backoff; the pipeline consumes exactly one candidate
// text per invocation and never trusts its shape.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorError wraps a provider-specific failure so the caller can treat
// it as an extraction failure without knowing the provider.
type GeneratorError struct {
	Provider string
	Err      error
}

func (e *GeneratorError) Error() string {
	return "generator " + e.Provider + ": " + e.Err.Error()
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}

// ScriptedGenerator replays canned responses in order; used by the replay
// tooling and tests.
type ScriptedGenerator struct {
	Responses []string
	next      int
}

func (g *ScriptedGenerator) Generate(_ context.Context, _ string) (string, error) {
	if g.next >= len(g.Responses) {
		return "", &GeneratorError{Provider: "scripted", Err: errors.New("no responses left")}
	}
	response := g.Responses[g.next]
	g.next++
	return response, nil
}

var _ Generator = (*ScriptedGenerator)(nil)
