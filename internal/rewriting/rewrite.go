package rewriting

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/rs/zerolog"
)

const (
	promptFile  = "rewrite.json"
	temperature = 0.7
)

// BuildPrompt embeds text verbatim into the instruction template of purpose.
func BuildPrompt(purpose Purpose, text string) (string, error) {
	key := "rewrite-summary"
	if purpose == PurposeExperience {
		key = "rewrite-experience"
	}
	tmpl, err := prompts.Get(promptFile, key)
	if err != nil {
		return "", err
	}
	return prompts.Format(tmpl, map[string]string{"Text": text}), nil
}

// Rewriter sends rewrite instructions to the text-generation service.
// A Rewriter without a client is unavailable and never calls out.
type Rewriter struct {
	client llm.Client
	tier   llm.ModelTier
	logger zerolog.Logger
}

// NewRewriter creates a rewriter. client may be nil when no credential is configured.
func NewRewriter(client llm.Client, logger zerolog.Logger) *Rewriter {
	return &Rewriter{client: client, tier: llm.TierStandard, logger: logger}
}

// Available reports whether the feature should be offered at all.
func (r *Rewriter) Available() bool {
	return r != nil && r.client != nil
}

// Rewrite returns the service's rewrite of text, trimmed. An empty or
// unexpected answer is returned as is.
func (r *Rewriter) Rewrite(ctx context.Context, purpose Purpose, text string) (string, error) {
	if !r.Available() {
		return "", ErrUnavailable
	}

	prompt, err := BuildPrompt(purpose, text)
	if err != nil {
		return "", err
	}

	out, err := r.client.GenerateContent(ctx, prompt, r.tier,
		llm.WithSystemInstruction(prompts.MustGet(promptFile, "system-instruction")),
		llm.WithTemperature(temperature),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("purpose", string(purpose)).Msg("text generation failed")
		return "", &ServiceError{Message: serviceFailureMessage, Cause: err}
	}
	return strings.TrimSpace(out), nil
}

// Store is the session state an Orchestrator reads from and commits to.
type Store interface {
	Snapshot() types.ResumeData
	Update(fn func(types.ResumeData) (types.ResumeData, error)) (types.ResumeData, error)
	Rewrites() *Tracker
}

// Orchestrator runs one rewrite invocation end to end: read the field,
// ask the service, and commit only on success.
type Orchestrator struct {
	rewriter *Rewriter
}

// NewOrchestrator creates an orchestrator around r.
func NewOrchestrator(r *Rewriter) *Orchestrator {
	return &Orchestrator{rewriter: r}
}

// Available reports whether rewrite controls should be offered.
func (o *Orchestrator) Available() bool {
	return o.rewriter.Available()
}

// Run rewrites the target field of store. On failure the field is left as it
// was and the tracker shows the error for its display window.
func (o *Orchestrator) Run(ctx context.Context, store Store, target Target) (types.ResumeData, error) {
	if !o.Available() {
		return store.Snapshot(), ErrUnavailable
	}
	if err := target.Validate(); err != nil {
		return store.Snapshot(), err
	}

	text, err := target.Text(store.Snapshot())
	if err != nil {
		return store.Snapshot(), err
	}

	finish, err := store.Rewrites().Begin(target.Key())
	if err != nil {
		return store.Snapshot(), err
	}

	suggestion, err := o.rewriter.Rewrite(ctx, target.Purpose(), text)
	if err != nil {
		finish(err)
		return store.Snapshot(), err
	}

	data, err := store.Update(func(d types.ResumeData) (types.ResumeData, error) {
		return target.Apply(d, suggestion)
	})
	finish(err)
	return data, err
}
