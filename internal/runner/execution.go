package runner

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/jacoelho/jsonlist/internal/binding"
	"github.com/jacoelho/jsonlist/internal/evaluator"
	"github.com/jacoelho/jsonlist/internal/list"
	"github.com/jacoelho/jsonlist/internal/parser"
	"github.com/jacoelho/jsonlist/internal/path"
	"github.com/jacoelho/jsonlist/internal/sentinel"
	"github.com/jacoelho/jsonlist/internal/template"
)

var (
	ErrUnknownOp      = errors.New("unknown operation")
	ErrExpectMismatch = errors.New("result does not match expect")
)

// outcome is what a step produced: the text every op returns, plus the host
// list for to_list.
type outcome struct {
	text  string
	elems []list.Element
}

// validateStep validates the step configuration before execution.
func validateStep(step parser.Step) error {
	switch step.Op {
	case parser.OpGet, parser.OpSet, parser.OpDelete, parser.OpType, parser.OpToList:
	case parser.OpFromList:
		if step.Shape == "" {
			return fmt.Errorf("from_list requires a shape")
		}
	case "":
		return fmt.Errorf("step op cannot be empty")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}

	if len(step.Asserts.List) > 0 && step.Op != parser.OpToList {
		return fmt.Errorf("list assertions require op %s, got %s", parser.OpToList, step.Op)
	}

	for _, assert := range step.Asserts.Result {
		if err := evaluator.Validate(assert.Predicate); err != nil {
			return fmt.Errorf("invalid result predicate: %w", err)
		}
	}
	for _, assert := range step.Asserts.JSONPath {
		if err := evaluator.Validate(assert.Predicate); err != nil {
			return fmt.Errorf("invalid jsonpath predicate: %w", err)
		}
	}
	for _, assert := range step.Asserts.List {
		if err := evaluator.Validate(assert.Predicate); err != nil {
			return fmt.Errorf("invalid list predicate: %w", err)
		}
	}

	return nil
}

// executeStep runs one engine call and checks its expectations.
func (r *Runner) executeStep(n int, step parser.Step, captures map[string]any) error {
	if err := validateStep(step); err != nil {
		return fmt.Errorf("invalid step configuration: %w", err)
	}

	doc, err := template.ApplyWithName("json", step.JSON.String(), captures)
	if err != nil {
		return fmt.Errorf("failed to process json template: %w", err)
	}

	literal, err := template.ApplyWithName("value", step.Value.String(), captures)
	if err != nil {
		return fmt.Errorf("failed to process value template: %w", err)
	}

	r.debugStep(n, step, doc, literal)

	out, err := dispatch(step, doc, literal)
	if err != nil {
		return err
	}

	r.debug(fmt.Sprintf("step %d result", n), out.text)

	if step.Expect != nil {
		want, err := template.ApplyWithName("expect", step.Expect.String(), captures)
		if err != nil {
			return fmt.Errorf("failed to process expect template: %w", err)
		}
		if out.text != want {
			return fmt.Errorf("%w: expected %q, got %q", ErrExpectMismatch, want, out.text)
		}
	}

	if err := executeAssertions(step.Asserts, out); err != nil {
		return fmt.Errorf("assertion failed: %w", err)
	}

	storeCapture(step.Capture, out, captures)
	return nil
}

// dispatch calls the binding entry point named by step.Op.
func dispatch(step parser.Step, doc, literal string) (outcome, error) {
	p := step.Path.Elements()

	switch step.Op {
	case parser.OpGet:
		return outcome{text: binding.GetValue(doc, p)}, nil
	case parser.OpSet:
		return outcome{text: binding.SetValue(doc, p, literal)}, nil
	case parser.OpDelete:
		return outcome{text: binding.SetValue(doc, p, sentinel.Delete)}, nil
	case parser.OpType:
		return outcome{text: binding.ValueType(doc, p)}, nil
	case parser.OpToList:
		elems := binding.JSONToList(doc)
		text, err := listText(elems)
		if err != nil {
			return outcome{}, err
		}
		return outcome{text: text, elems: elems}, nil
	case parser.OpFromList:
		return outcome{text: binding.ListToJSON(shapeToken(step.Shape), step.List.Elements())}, nil
	default:
		return outcome{}, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

// shapeToken accepts the names array and object as well as the raw tokens.
func shapeToken(shape string) string {
	if token, ok := sentinel.Lookup(shape); ok {
		return token
	}
	return shape
}

// listText renders a host list as a JSON array so it can be compared with
// expect and queried with JSONPath.
func listText(elems []list.Element) (string, error) {
	data, err := json.Marshal(evaluator.Natives(elems))
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

// describePath is used by debug output.
func describePath(elems []list.Element) string {
	specs, err := list.Path(elems)
	if err != nil {
		return fmt.Sprintf("%v (%v)", elems, err)
	}
	return path.Format(specs)
}

// describeList is used by debug output.
func describeList(elems []list.Element) string {
	return fmt.Sprint(elems)
}
