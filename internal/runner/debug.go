package runner

import (
	"fmt"

	"github.com/jacoelho/jsonlist/internal/parser"
)

// debug forwards one trace entry to the formatter when --debug is set.
func (r *Runner) debug(label, text string) {
	if r.config == nil || !r.config.Debug {
		return
	}
	if err := r.formatter.Debug(label, text); err != nil {
		fmt.Printf("Error formatting debug output: %v\n", err)
	}
}

// debugStep traces the resolved inputs of a step.
func (r *Runner) debugStep(n int, step parser.Step, doc, literal string) {
	if r.config == nil || !r.config.Debug {
		return
	}

	label := fmt.Sprintf("step %d", n)
	r.debug(label+" op", step.Op)
	if step.Op == parser.OpFromList {
		r.debug(label+" shape", step.Shape)
		r.debug(label+" list", describeList(step.List.Elements()))
		return
	}
	r.debug(label+" json", doc)
	if len(step.Path) > 0 {
		r.debug(label+" path", describePath(step.Path.Elements()))
	}
	if step.Op == parser.OpSet {
		r.debug(label+" value", literal)
	}
}
