package enhance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/prompt"
	"github.com/polishai/polish/internal/quality"
)

const (
	// firstPassMinScore is the validation bar for the first attempt.
	firstPassMinScore = 70
	// retryMinScore is the relaxed bar applied to the strict retry.
	retryMinScore = 60
	// retryBelow gates the retry: only first passes scoring under this run
	// a second stage, regardless of which rules fired.
	retryBelow = 70
)

// Runner produces one completion for a prompt, walking the candidate chain.
// *ai.Cascade satisfies it.
type Runner interface {
	Run(ctx context.Context, candidates []ai.Candidate, prompt string) (*ai.Completion, []ai.Attempt, error)
}

// Enhancer drives the full pipeline: prompt, cascade, validation, and at
// most one stricter retry.
type Enhancer struct {
	runner       Runner
	defaultModel string
	logger       *zap.Logger
}

func New(runner Runner, defaultModel string, logger *zap.Logger) *Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enhancer{
		runner:       runner,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Enhance runs one request through the pipeline. Gateway errors propagate;
// a poorly scored first pass triggers exactly one strict retry, and the
// better scored of the two stages wins, with ties going to the retry.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	candidates := ai.CandidatesFor(string(req.Type), e.defaultModel)

	basePrompt := prompt.Build(prompt.Request{
		Text:         req.Text,
		Type:         string(req.Type),
		Tone:         string(req.Tone),
		Audience:     req.Audience,
		Instructions: req.Instructions,
	})

	first, attempts, err := e.runner.Run(ctx, candidates, basePrompt)
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}

	firstCheck := quality.Validate(req.Text, first.Text, quality.Options{MinScore: firstPassMinScore, Strict: true})
	e.logger.Debug("first pass validated",
		zap.String("model", first.Model),
		zap.Int("score", firstCheck.Score),
		zap.Int("confidence", firstCheck.Confidence),
		zap.Int("violations", len(firstCheck.Violations)))

	best, bestCheck, stages := first, firstCheck, 1

	if !firstCheck.Valid && firstCheck.Score < retryBelow {
		strictPrompt := prompt.BuildStrict(basePrompt, ruleNames(firstCheck.Violations))

		second, retryAttempts, err := e.runner.Run(ctx, candidates, strictPrompt)
		if err != nil {
			return nil, fmt.Errorf("enhancement retry failed: %w", err)
		}
		attempts = append(attempts, retryAttempts...)
		stages = 2

		secondCheck := quality.Validate(req.Text, second.Text, quality.Options{MinScore: retryMinScore, Strict: true})
		e.logger.Debug("retry pass validated",
			zap.String("model", second.Model),
			zap.Int("score", secondCheck.Score),
			zap.Int("violations", len(secondCheck.Violations)))

		// Ties go to the retry.
		if secondCheck.Score >= firstCheck.Score {
			best, bestCheck = second, secondCheck
		}
	}

	return compose(req, best, bestCheck, attempts, stages, time.Since(start)), nil
}

func ruleNames(violations []quality.Violation) []string {
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, v.Rule)
	}
	return names
}
