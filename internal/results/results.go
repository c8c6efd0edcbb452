// Package results accumulates per-file and per-iteration scenario outcomes.
package results

import (
	"time"
)

type FileResult struct {
	Filename  string
	StepCount int
	Duration  time.Duration
	Error     error
}

type FileResultBuilder struct {
	filename  string
	stepCount int
	duration  time.Duration
	err       error
}

func NewFileResultBuilder(filename string) *FileResultBuilder {
	return &FileResultBuilder{
		filename: filename,
	}
}

func (b *FileResultBuilder) WithStepCount(count int) *FileResultBuilder {
	b.stepCount = count
	return b
}

func (b *FileResultBuilder) WithDuration(duration time.Duration) *FileResultBuilder {
	b.duration = duration
	return b
}

func (b *FileResultBuilder) WithError(err error) *FileResultBuilder {
	b.err = err
	return b
}

func (b *FileResultBuilder) Build() FileResult {
	return FileResult{
		Filename:  b.filename,
		StepCount: b.stepCount,
		Duration:  b.duration,
		Error:     b.err,
	}
}

// Summary covers one iteration over all scenario files.
type Summary struct {
	FileResults    []FileResult
	ExecutedFiles  int
	ExecutedSteps  int
	SucceededFiles int
	FailedFiles    int
	TotalDuration  time.Duration
}

func NewSummary(expectedFiles int) *Summary {
	return &Summary{
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(builder *FileResultBuilder) {
	result := builder.Build()

	s.FileResults = append(s.FileResults, result)
	s.ExecutedFiles++
	s.ExecutedSteps += result.StepCount

	if result.Error != nil {
		s.FailedFiles++
	} else {
		s.SucceededFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) StepsPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.ExecutedSteps) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.SucceededFiles) / float64(s.ExecutedFiles)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.FailedFiles) / float64(s.ExecutedFiles)) * 100
}

type AggregatedStats struct {
	TotalExecutedFiles   int
	TotalExecutedSteps   int
	TotalSucceededFiles  int
	TotalFailedFiles     int
	TotalDuration        time.Duration
	SuccessfulIterations int
	IterationCount       int
}

func (a AggregatedStats) SuccessRate() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.SuccessfulIterations) / float64(a.IterationCount) * 100
}

func (a AggregatedStats) StepsPerSecond() float64 {
	if a.TotalDuration == 0 {
		return 0
	}
	return float64(a.TotalExecutedSteps) / a.TotalDuration.Seconds()
}

func (a AggregatedStats) AverageDuration() time.Duration {
	if a.IterationCount == 0 {
		return 0
	}
	return a.TotalDuration / time.Duration(a.IterationCount)
}

func CalculateAggregatedStats(allResults []*Summary) AggregatedStats {
	var stats AggregatedStats
	stats.IterationCount = len(allResults)

	for _, results := range allResults {
		stats.TotalExecutedFiles += results.ExecutedFiles
		stats.TotalExecutedSteps += results.ExecutedSteps
		stats.TotalSucceededFiles += results.SucceededFiles
		stats.TotalFailedFiles += results.FailedFiles
		stats.TotalDuration += results.TotalDuration

		if results.FailedFiles == 0 {
			stats.SuccessfulIterations++
		}
	}

	return stats
}
