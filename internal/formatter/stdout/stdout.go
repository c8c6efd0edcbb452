// Package stdout writes human-readable run reports.
package stdout

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/jacoelho/jsonlist/internal/formatter"
	"github.com/jacoelho/jsonlist/internal/results"
	"github.com/jacoelho/jsonlist/internal/sentinel"
)

const (
	rule      = "--------------------------------------------------------------------------------"
	heavyRule = "================================================================================"
)

// Formatter implements stdout-based output formatting.
type Formatter struct {
	writer io.Writer

	ok    func(a ...any) string
	fail  func(a ...any) string
	label func(a ...any) string
}

// New creates a formatter writing to stdout.
func New(useColor bool) formatter.Formatter {
	return NewWithWriter(os.Stdout, useColor)
}

// NewWithWriter creates a formatter with a custom writer.
func NewWithWriter(writer io.Writer, useColor bool) formatter.Formatter {
	return &Formatter{
		writer: writer,
		ok:     paint(useColor, color.FgGreen),
		fail:   paint(useColor, color.FgRed, color.Bold),
		label:  paint(useColor, color.FgCyan),
	}
}

func paint(useColor bool, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Format writes a single summary, or per-iteration lines plus aggregated
// statistics when given more than one.
func (f *Formatter) Format(summaries ...*results.Summary) error {
	switch {
	case len(summaries) > 1:
		return f.formatAggregated(summaries)
	case len(summaries) == 1:
		return f.formatSingle(summaries[0])
	default:
		return nil
	}
}

// Debug prints a labelled block. Reserved tokens in text are shown by name
// since they are noncharacters and would otherwise be invisible.
func (f *Formatter) Debug(label, text string) error {
	if _, err := fmt.Fprintf(f.writer, "%s %s\n", f.label(label+":"), Visible(text)); err != nil {
		return err
	}
	return nil
}

// Visible replaces each reserved token rune with a <name> marker.
func Visible(text string) string {
	if !strings.ContainsFunc(text, isReserved) {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		if isReserved(r) {
			b.WriteString("<" + sentinel.Name(string(r)) + ">")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isReserved(r rune) bool {
	return sentinel.Name(string(r)) != ""
}

func (f *Formatter) formatSingle(s *results.Summary) error {
	for _, fileResult := range s.FileResults {
		status := f.ok("Success")
		if fileResult.Error != nil {
			status = f.fail("Failed: " + fileResult.Error.Error())
		}
		_, err := fmt.Fprintf(f.writer, "%s: %s (%d step(s) in %d ms)\n",
			fileResult.Filename, status, fileResult.StepCount, fileResult.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	lines := []string{
		rule,
		fmt.Sprintf("Executed files:  %d", s.ExecutedFiles),
		fmt.Sprintf("Executed steps:  %d (%.2f/s)", s.ExecutedSteps, s.StepsPerSecond()),
		fmt.Sprintf("Succeeded files: %d (%.1f%%)", s.SucceededFiles, s.SuccessPercentage()),
		fmt.Sprintf("Failed files:    %d (%.1f%%)", s.FailedFiles, s.FailurePercentage()),
		fmt.Sprintf("Duration:        %d ms", s.TotalDuration.Milliseconds()),
	}
	return f.writeLines(lines)
}

func (f *Formatter) formatAggregated(allResults []*results.Summary) error {
	lines := []string{heavyRule, "ITERATION RESULTS:", heavyRule}
	for i, s := range allResults {
		status := f.ok("SUCCESS")
		if s.FailedFiles > 0 {
			status = f.fail("FAILED")
		}
		lines = append(lines, fmt.Sprintf("Iteration %d: %s (%d files, %d steps, %d ms)",
			i+1, status, s.ExecutedFiles, s.ExecutedSteps, s.TotalDuration.Milliseconds()))
	}

	stats := results.CalculateAggregatedStats(allResults)
	successRate := stats.SuccessRate()
	lines = append(lines,
		heavyRule,
		"AGGREGATED RESULTS:",
		heavyRule,
		"Total iterations:      "+strconv.Itoa(stats.IterationCount),
		fmt.Sprintf("Successful iterations: %d (%.1f%%)", stats.SuccessfulIterations, successRate),
		fmt.Sprintf("Failed iterations:     %d (%.1f%%)", stats.IterationCount-stats.SuccessfulIterations, 100-successRate),
		fmt.Sprintf("Total executed steps:  %d (%.2f/s)", stats.TotalExecutedSteps, stats.StepsPerSecond()),
		fmt.Sprintf("Total failed files:    %d", stats.TotalFailedFiles),
		fmt.Sprintf("Total duration:        %d ms", stats.TotalDuration.Milliseconds()),
		rule,
		fmt.Sprintf("Avg duration per iteration: %d ms", stats.AverageDuration().Milliseconds()),
	)
	return f.writeLines(lines)
}

func (f *Formatter) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}
