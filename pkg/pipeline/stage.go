// Package pipeline holds the stage contract, the values passed between
// stages, file naming and the typed errors the CLI maps to exit codes.
package pipeline

import "context"

// Stage turns one input into one result. Stages return whatever partial
// result they produced alongside an error, so callers can report files
// already written.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
