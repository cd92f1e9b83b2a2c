package ai

import (
	"alcyxob/fitcoach-api/internal/schema"
	"context"
	"errors"
	"fmt"
	"log"
)

const (
	generateMaxTokens = 2200
	repairMaxTokens   = 1400

	// DefaultRetries is the number of extra generation attempts after the first.
	DefaultRetries = 2
)

// ErrorCode is reported to clients when generation gives up.
const ErrorCode = "AI_FAILED"

var (
	errIncomplete = errors.New("model response incomplete")
	errEmptyText  = errors.New("model returned no text")
)

// GenerationError is returned once every attempt has failed.
type GenerationError struct {
	Attempts int
	Last     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("ai could not generate a valid program after %d attempts: %v", e.Attempts, e.Last)
}

func (e *GenerationError) Unwrap() error { return e.Last }

// ProgramGenerator turns a free-text request into a validated program.
// A rejection is a successful result; inspect Program.IsRejected.
type ProgramGenerator interface {
	Generate(ctx context.Context, text string, prefs *schema.Preferences) (*schema.Program, error)
}

type generator struct {
	model     Model
	modelName string
	retries   int
}

// NewGenerator creates a generator making at most retries+1 generation
// calls per request, each optionally followed by a single repair call.
func NewGenerator(model Model, modelName string, retries int) ProgramGenerator {
	if retries < 0 {
		retries = 0
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &generator{model: model, modelName: modelName, retries: retries}
}

type genState int

const (
	stateGenerating genState = iota
	stateRepairing
	stateExhausted
)

func (g *generator) Generate(ctx context.Context, text string, prefs *schema.Preferences) (*schema.Program, error) {
	userPrompt, err := BuildUserPrompt(text, prefs)
	if err != nil {
		return nil, err
	}

	total := g.retries + 1
	var (
		attempt int
		last    error
		badJSON string
		state   = stateGenerating
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, &GenerationError{Attempts: attempt, Last: err}
		}

		switch state {
		case stateGenerating:
			if attempt == total {
				state = stateExhausted
				continue
			}
			attempt++

			program, raw, err := g.call(ctx, systemPrompt, userPrompt, generateMaxTokens)
			if err == nil {
				return program, nil
			}
			last = err
			log.Printf("WARN: ai attempt %d/%d failed: %v", attempt, total, err)
			if ctx.Err() != nil {
				continue
			}
			// Text that is not JSON at all goes straight to another attempt.
			if schema.IsValidationError(err) && raw != "" {
				badJSON = raw
				state = stateRepairing
			}

		case stateRepairing:
			repairPrompt := BuildRepairPrompt(last.Error(), badJSON)
			program, _, err := g.call(ctx, repairSystemPrompt, repairPrompt, repairMaxTokens)
			if err == nil {
				return program, nil
			}
			last = err
			log.Printf("WARN: ai repair after attempt %d/%d failed: %v", attempt, total, err)
			badJSON = ""
			state = stateGenerating

		case stateExhausted:
			return nil, &GenerationError{Attempts: attempt, Last: last}
		}
	}
}

// call runs one model exchange and parses its text. raw is the extracted
// text, returned even when parsing fails.
func (g *generator) call(ctx context.Context, system, user string, maxTokens int) (*schema.Program, string, error) {
	resp, err := g.model.Respond(ctx, Request{
		Model:           g.modelName,
		System:          system,
		User:            user,
		MaxOutputTokens: maxTokens,
		ReasoningEffort: EffortLow,
	})
	if err != nil {
		return nil, "", err
	}
	if resp.Status == StatusIncomplete {
		return nil, "", errIncomplete
	}

	raw := ExtractText(resp)
	if raw == "" {
		return nil, "", errEmptyText
	}

	program, err := schema.Parse(raw)
	if err != nil {
		return nil, raw, err
	}
	return program, raw, nil
}
