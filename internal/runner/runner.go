// Package runner executes scenario files against the value engine.
package runner

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/jacoelho/jsonlist/internal/config"
	"github.com/jacoelho/jsonlist/internal/exit"
	"github.com/jacoelho/jsonlist/internal/formatter"
	"github.com/jacoelho/jsonlist/internal/formatter/jsonout"
	"github.com/jacoelho/jsonlist/internal/formatter/stdout"
	"github.com/jacoelho/jsonlist/internal/parser"
	"github.com/jacoelho/jsonlist/internal/ratelimit"
	"github.com/jacoelho/jsonlist/internal/results"
)

// Runner executes scenario workflows.
type Runner struct {
	variables   map[string]any
	config      *config.Config
	rateLimiter *ratelimit.Limiter
	formatter   formatter.Formatter
}

// New creates a new Runner with the provided configuration.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	var f formatter.Formatter
	switch cfg.Output {
	case config.OutputJSON:
		f = jsonout.New()
	case config.OutputText, "":
		useColor := !cfg.NoColor && isatty.IsTerminal(os.Stdout.Fd())
		f = stdout.New(useColor)
	default:
		return nil, exit.Errorf("Error creating runner: unknown output format %q\n", cfg.Output)
	}

	return NewWithFormatter(cfg, f), nil
}

// NewWithFormatter creates a Runner reporting through f.
func NewWithFormatter(cfg *config.Config, f formatter.Formatter) *Runner {
	return &Runner{
		variables:   cfg.Variables,
		config:      cfg,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		formatter:   f,
	}
}

// Run executes the scenario files according to the configuration.
func (r *Runner) Run(ctx context.Context) int {
	if r.config.Repeat < 0 {
		return r.runInfiniteLoop(ctx)
	}
	return r.runFiniteLoop(ctx)
}

// runInfiniteLoop handles infinite execution (repeat < 0)
func (r *Runner) runInfiniteLoop(ctx context.Context) int {
	for iteration := 1; ; iteration++ {
		select {
		case <-ctx.Done():
			fmt.Printf("\nInterrupted after %d iterations\n", iteration-1)
			return exit.CodeFailure
		default:
		}

		r.debug("iteration", fmt.Sprintf("%d", iteration))

		result, err := r.runOnce(ctx)
		if result != nil {
			if ferr := r.formatter.Format(result); ferr != nil {
				fmt.Printf("Error formatting results: %v\n", ferr)
			}
		}
		if err != nil {
			fmt.Printf("\nError in iteration %d: %v\n", iteration, err)
			return exit.CodeFailure
		}
	}
}

// runFiniteLoop handles finite execution (repeat >= 0)
func (r *Runner) runFiniteLoop(ctx context.Context) int {
	var allResults []*results.Summary
	totalIterations := r.config.Repeat + 1
	code := exit.CodeSuccess

	for i := 1; i <= totalIterations; i++ {
		select {
		case <-ctx.Done():
			fmt.Printf("\nInterrupted after %d of %d iterations\n", i-1, totalIterations)
			return exit.CodeFailure
		default:
		}

		if totalIterations > 1 {
			r.debug("iteration", fmt.Sprintf("%d of %d", i, totalIterations))
		}

		result, err := r.runOnce(ctx)
		if result != nil {
			allResults = append(allResults, result)
		}
		if err != nil {
			code = exit.CodeFailure
			if ctx.Err() != nil {
				break
			}
		}
	}

	if err := r.formatter.Format(allResults...); err != nil {
		fmt.Printf("Error formatting results: %v\n", err)
	}
	return code
}

func (r *Runner) runOnce(ctx context.Context) (*results.Summary, error) {
	return r.ExecuteFiles(ctx, r.config.ScenarioFiles)
}

// ExecuteFiles runs every file in order and returns the summary together with
// the first failure, if any. A failing file does not stop the others.
func (r *Runner) ExecuteFiles(ctx context.Context, files []string) (*results.Summary, error) {
	s := results.NewSummary(len(files))

	overallStart := time.Now()
	var firstError error

	for _, filename := range files {
		select {
		case <-ctx.Done():
			s.SetTotalDuration(time.Since(overallStart))
			return s, ctx.Err()
		default:
		}

		start := time.Now()
		stepCount, err := r.executeFile(ctx, filename)
		duration := time.Since(start)

		s.Add(results.NewFileResultBuilder(filename).
			WithStepCount(stepCount).
			WithDuration(duration).
			WithError(err))

		if err != nil && firstError == nil {
			firstError = err
		}
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s, firstError
}

// executeFile runs one scenario file and returns the number of steps executed.
func (r *Runner) executeFile(ctx context.Context, filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	steps, err := parser.Parse(file)
	if err != nil {
		return 0, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}

	// start with configured variables and add runtime captures
	captures := make(map[string]any, len(r.variables))
	maps.Copy(captures, r.variables)

	stepCount := 0

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return stepCount, ctx.Err()
		default:
		}

		if err := r.rateLimiter.Wait(ctx); err != nil {
			return stepCount, fmt.Errorf("rate limiting interrupted: %w", err)
		}

		stepCount++
		if err := r.executeStep(i+1, step, captures); err != nil {
			return stepCount, fmt.Errorf("step %d failed: %w", i+1, err)
		}
	}

	return stepCount, nil
}
