package testutil

import (
	"context"
	"errors"

	"github.com/vytor/chessreview/internal/review"
)

// ScriptedEvaluator feeds predetermined samples to a Reviewer. The first
// evaluation of each new position consumes the next sample; re-evaluations
// of a position it has already seen return the same sample again. A game
// with n applied moves therefore needs n+1 samples, in board order.
type ScriptedEvaluator struct {
	samples []review.EvaluationSample
	seen    map[string]review.EvaluationSample
	Calls   int
}

func NewScriptedEvaluator(samples ...review.EvaluationSample) *ScriptedEvaluator {
	return &ScriptedEvaluator{
		samples: samples,
		seen:    make(map[string]review.EvaluationSample),
	}
}

func (e *ScriptedEvaluator) Evaluate(_ context.Context, fen string) (review.EvaluationSample, error) {
	e.Calls++
	if s, ok := e.seen[fen]; ok {
		return s, nil
	}
	if len(e.samples) == 0 {
		return review.EvaluationSample{}, errors.New("scripted evaluator exhausted")
	}
	s := e.samples[0]
	e.samples = e.samples[1:]
	e.seen[fen] = s
	return s, nil
}

// FailingEvaluator returns the given error from every call.
type FailingEvaluator struct {
	Err error
}

func (e FailingEvaluator) Evaluate(context.Context, string) (review.EvaluationSample, error) {
	return review.EvaluationSample{}, e.Err
}
