// Package diagnosis returns a canned crop diagnosis after a simulated
// processing delay. No image processing happens here.
package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultDelay mimics the latency of a remote analysis.
const DefaultDelay = 3 * time.Second

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidContext    = errors.New("invalid crop context")
)

// Analyzer produces mocked diagnoses.
type Analyzer struct {
	delay  time.Duration
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDelay overrides DefaultDelay. Zero answers immediately.
func WithDelay(d time.Duration) Option {
	return func(a *Analyzer) {
		a.delay = d
	}
}

// WithLogger sets the logger for the analyzer.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{delay: DefaultDelay}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a
}

// Analyze validates the inputs, waits for the configured delay and returns
// the diagnosis. The crop context is optional. Cancelling ctx aborts the wait.
func (a *Analyzer) Analyze(ctx context.Context, img Image, cc *CropContext) (Result, error) {
	if err := ValidateImage(img); err != nil {
		return Result{}, err
	}
	if cc != nil {
		if err := cc.Validate(); err != nil {
			return Result{}, err
		}
	}

	a.logger.Info("analysis started", "image", img.Name, "type", img.MIMEType, "delay", a.delay)

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			a.logger.Debug("analysis cancelled", "image", img.Name)
			return Result{}, fmt.Errorf("analysis of %s: %w", img.Name, ctx.Err())
		case <-timer.C:
		}
	}

	res := MockResult()
	if cc != nil {
		ctxCopy := *cc
		res.Context = &ctxCopy
	}
	a.logger.Info("analysis finished", "image", img.Name, "problem", res.Problem.CommonName)
	return res, nil
}

// Outcome is delivered by AnalyzeAsync.
type Outcome struct {
	Result Result
	Err    error
}

// AnalyzeAsync runs Analyze in a tracked goroutine. The channel receives
// exactly one Outcome and is then closed.
func (a *Analyzer) AnalyzeAsync(ctx context.Context, img Image, cc *CropContext) <-chan Outcome {
	out := make(chan Outcome, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		res, err := a.Analyze(ctx, img, cc)
		out <- Outcome{Result: res, Err: err}
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		a.logger.Debug("async analysis ended with error", "error", err)
	}))
	return out
}
