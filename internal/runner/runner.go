// Package runner simulates executing documentation code snippets. Nothing is
// executed: a runnable snippet yields its recorded output after a delay.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

// DefaultDelay matches the pause the docs site shows before revealing output.
const DefaultDelay = 800 * time.Millisecond

// ErrNotRunnable is returned for snippets that are not marked runnable.
var ErrNotRunnable = errors.New("snippet is not runnable")

// Result is the outcome of a simulated run.
type Result struct {
	Language string        `json:"language"`
	Output   string        `json:"output"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Runner reveals snippet output after a fixed delay.
type Runner struct {
	delay time.Duration
}

// New creates a runner. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Runner {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Runner{delay: delay}
}

// Delay returns the configured delay.
func (r *Runner) Delay() time.Duration {
	return r.delay
}

// Run waits for the delay and returns the snippet's recorded output.
// Cancelling ctx aborts the wait and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, snippet *docs.CodeSnippet) (Result, error) {
	if snippet == nil || !snippet.Runnable {
		return Result{}, ErrNotRunnable
	}

	start := time.Now()
	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}

	return Result{
		Language: snippet.Language,
		Output:   snippet.Output,
		Elapsed:  time.Since(start),
	}, nil
}
