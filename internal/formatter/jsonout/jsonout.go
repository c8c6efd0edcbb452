// Package jsonout writes run reports as JSON documents, one per line.
package jsonout

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/jacoelho/jsonlist/internal/formatter"
	"github.com/jacoelho/jsonlist/internal/results"
)

type Formatter struct {
	enc *json.Encoder
}

func New() formatter.Formatter {
	return NewWithWriter(os.Stdout)
}

func NewWithWriter(w io.Writer) formatter.Formatter {
	return &Formatter{enc: json.NewEncoder(w)}
}

type fileReport struct {
	Filename   string `json:"filename"`
	Steps      int    `json:"steps"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type iterationReport struct {
	Files          []fileReport `json:"files"`
	ExecutedFiles  int          `json:"executed_files"`
	ExecutedSteps  int          `json:"executed_steps"`
	SucceededFiles int          `json:"succeeded_files"`
	FailedFiles    int          `json:"failed_files"`
	DurationMS     int64        `json:"duration_ms"`
	StepsPerSecond float64      `json:"steps_per_second"`
}

type report struct {
	Iterations           []iterationReport `json:"iterations"`
	SuccessfulIterations int               `json:"successful_iterations"`
	TotalSteps           int               `json:"total_steps"`
	TotalDurationMS      int64             `json:"total_duration_ms"`
}

type debugEntry struct {
	Debug string `json:"debug"`
	Text  string `json:"text"`
}

// Format encodes every summary into a single report object.
func (f *Formatter) Format(summaries ...*results.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	stats := results.CalculateAggregatedStats(summaries)
	out := report{
		Iterations:           make([]iterationReport, 0, len(summaries)),
		SuccessfulIterations: stats.SuccessfulIterations,
		TotalSteps:           stats.TotalExecutedSteps,
		TotalDurationMS:      stats.TotalDuration.Milliseconds(),
	}

	for _, s := range summaries {
		it := iterationReport{
			Files:          make([]fileReport, 0, len(s.FileResults)),
			ExecutedFiles:  s.ExecutedFiles,
			ExecutedSteps:  s.ExecutedSteps,
			SucceededFiles: s.SucceededFiles,
			FailedFiles:    s.FailedFiles,
			DurationMS:     s.TotalDuration.Milliseconds(),
			StepsPerSecond: s.StepsPerSecond(),
		}
		for _, fr := range s.FileResults {
			entry := fileReport{
				Filename:   fr.Filename,
				Steps:      fr.StepCount,
				DurationMS: fr.Duration.Milliseconds(),
			}
			if fr.Error != nil {
				entry.Error = fr.Error.Error()
			}
			it.Files = append(it.Files, entry)
		}
		out.Iterations = append(out.Iterations, it)
	}

	return f.enc.Encode(out)
}

// Debug encodes a trace entry. Reserved tokens survive as JSON string
// content.
func (f *Formatter) Debug(label, text string) error {
	return f.enc.Encode(debugEntry{Debug: label, Text: text})
}
