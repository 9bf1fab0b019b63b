// Package evaluator runs one genome against one task: it prompts the
// oracle, parses the free-text response, grades correctness, and scores
// calibration and fitness. Oracle failures and malformed responses are
// absorbed here; an evaluation never fails outward.
package evaluator

import (
	"context"
	"fmt"
	"time"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/genome"
	"github.com/predictive-selection/evoagent/pkg/llms"
	"github.com/predictive-selection/evoagent/pkg/logging"
	"github.com/predictive-selection/evoagent/pkg/tasks"
)

// Outcome tags how an EvalResult came to be, so downstream analysis can
// tell genuine evaluations from neutralized fallbacks even after
// serialization.
type Outcome string

const (
	// OutcomeGenuine is a successfully parsed oracle response.
	OutcomeGenuine Outcome = "genuine"
	// OutcomeDegradedFormat means no pattern matched after all retries;
	// defaults were kept.
	OutcomeDegradedFormat Outcome = "degraded_format"
	// OutcomeDegradedError means the oracle kept failing; the neutral
	// fallback (confidence 50%, answer "unknown") was synthesized.
	OutcomeDegradedError Outcome = "degraded_error"
)

// EvalResult is the immutable outcome of evaluating one genome on one
// task.
type EvalResult struct {
	GenomeID            string  `json:"genome_id"`
	TaskID              string  `json:"task_id"`
	PredictedConfidence float64 `json:"predicted_confidence"`
	PredictedAnswer     string  `json:"predicted_answer"`
	GroundTruth         string  `json:"ground_truth"`
	IsCorrect           bool    `json:"is_correct"`
	RawCalibration      float64 `json:"raw_calibration"`
	PredictionAccuracy  float64 `json:"prediction_accuracy"`
	Fitness             float64 `json:"fitness"`
	Outcome             Outcome `json:"outcome"`
}

const predictionPrompt = `You are being tested on your predictive ability. You will be asked a question.

FIRST: Predict how confident you are that you can answer correctly.
THEN: Provide your answer.

Respond in EXACTLY this format:
Confidence: <number 0-100>%%
Answer: <your answer>

Be honest about your confidence. Overconfidence is penalized.

Question: %s`

const formatReminder = "\n\nREMINDER: You MUST respond with exactly:\nConfidence: <number>%\nAnswer: <your answer>"

// Evaluator holds the oracle client and retry policy explicitly; there
// is no package-level client state, so concurrent in-process runs can
// use different configurations.
type Evaluator struct {
	oracle          llms.LLM
	model           string
	maxRetries      int
	backoffBase     time.Duration
	maxOutputTokens int
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithMaxRetries overrides the retry ceiling (attempts = retries + 1).
func WithMaxRetries(n int) Option {
	return func(e *Evaluator) { e.maxRetries = n }
}

// WithBackoffBase overrides the first retry delay; it doubles per
// attempt.
func WithBackoffBase(d time.Duration) Option {
	return func(e *Evaluator) { e.backoffBase = d }
}

// WithMaxOutputTokens overrides the oracle output budget.
func WithMaxOutputTokens(n int) Option {
	return func(e *Evaluator) { e.maxOutputTokens = n }
}

// New creates an Evaluator for the given oracle and model.
func New(oracle llms.LLM, model string, opts ...Option) *Evaluator {
	e := &Evaluator{
		oracle:          oracle,
		model:           model,
		maxRetries:      2,
		backoffBase:     500 * time.Millisecond,
		maxOutputTokens: 300,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one genome on one task. It absorbs oracle transient
// errors (retry with exponential backoff, then neutral fallback) and
// format failures (retry with a reinforced reminder, then defaults);
// the returned error is non-nil only when ctx is canceled before the
// evaluation could finish.
func (e *Evaluator) Evaluate(ctx context.Context, g genome.AgentGenome, task tasks.Task) (EvalResult, error) {
	logger := logging.GetLogger()

	systemMsg := g.BuildSystemMessage()
	userMsg := fmt.Sprintf(predictionPrompt, task.Prompt)

	pred := prediction{confidence: 0.5, answer: "unknown"}
	outcome := OutcomeGenuine

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := errs.CheckContext(ctx, "evaluation"); err != nil {
			return EvalResult{}, err
		}

		// Reinforce format adherence on retries.
		msg := userMsg
		if attempt > 0 {
			msg += formatReminder
		}

		text, err := e.oracle.Complete(ctx, llms.CompletionRequest{
			Model:           e.model,
			SystemMessage:   systemMsg,
			UserMessage:     msg,
			Temperature:     g.Temperature,
			MaxOutputTokens: e.maxOutputTokens,
		})
		if err != nil {
			if ctx.Err() != nil {
				return EvalResult{}, errs.Wrap(ctx.Err(), errs.Canceled, "evaluation canceled")
			}
			logger.Error(ctx, "oracle error on attempt %d for task %s: %v", attempt+1, task.ID, err)
			if attempt == e.maxRetries {
				// Neutral fallback: evaluation never fails outward.
				pred = prediction{confidence: 0.5, answer: "unknown"}
				outcome = OutcomeDegradedError
				break
			}
			delay := e.backoffBase * (1 << attempt)
			select {
			case <-ctx.Done():
				return EvalResult{}, errs.Wrap(ctx.Err(), errs.Canceled, "evaluation canceled")
			case <-time.After(delay):
			}
			continue
		}

		pred = parsePrediction(text)
		if pred.confidenceFound || pred.answerFound {
			outcome = OutcomeGenuine
			break
		}

		// Neither cascade matched: format failure.
		if attempt == e.maxRetries {
			logger.Warn(ctx, "format parse failed after %d attempts for task %s", e.maxRetries+1, task.ID)
			outcome = OutcomeDegradedFormat
			break
		}
	}

	isCorrect := CheckCorrect(pred.answer, task.GroundTruth, task.Type)
	rawCal, predAcc, fitness := ScoreFitness(pred.confidence, isCorrect, g.ConfidenceBias, task.Difficulty)

	return EvalResult{
		GenomeID:            g.ID,
		TaskID:              task.ID,
		PredictedConfidence: pred.confidence,
		PredictedAnswer:     pred.answer,
		GroundTruth:         task.GroundTruth,
		IsCorrect:           isCorrect,
		RawCalibration:      rawCal,
		PredictionAccuracy:  predAcc,
		Fitness:             fitness,
		Outcome:             outcome,
	}, nil
}
