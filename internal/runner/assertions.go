package runner

import (
	"fmt"

	"github.com/jacoelho/jsonlist/internal/evaluator"
	"github.com/jacoelho/jsonlist/internal/parser"
)

// executeAssertions validates all assertions against a step outcome.
func executeAssertions(asserts parser.Asserts, out outcome) error {
	if err := executeResultAssertions(asserts.Result, out.text); err != nil {
		return err
	}

	if err := executeJSONPathAssertions(asserts.JSONPath, out.text); err != nil {
		return err
	}

	return executeListAssertions(asserts.List, out)
}

func executeResultAssertions(asserts []parser.ResultAssert, text string) error {
	for _, assert := range asserts {
		result, err := evaluator.EvaluatePredicate(assert.Predicate, text)
		if err != nil {
			return fmt.Errorf("result assertion error: %w", err)
		}
		if !result {
			return fmt.Errorf("result assertion failed: expected %s %v, got %q", assert.Operation, assert.Value, text)
		}
	}
	return nil
}

func executeJSONPathAssertions(asserts []parser.JSONPathAssert, text string) error {
	for _, assert := range asserts {
		result, err := evaluator.EvaluateJSONPath(text, assert.Path, assert.Predicate)
		if err != nil {
			return fmt.Errorf("JSONPath assertion failed for %s: %w", assert.Path, err)
		}
		if !result {
			return fmt.Errorf("JSONPath assertion failed for %s: expected %s %v, but condition was not met",
				assert.Path, assert.Predicate.Operation, assert.Predicate.Value)
		}
	}
	return nil
}

func executeListAssertions(asserts []parser.ListAssert, out outcome) error {
	for _, assert := range asserts {
		result, err := evaluator.EvaluateList(out.elems, assert.Index, assert.Predicate)
		if err != nil {
			return fmt.Errorf("list assertion error: %w", err)
		}
		if !result {
			where := "list"
			if assert.Index != nil {
				where = fmt.Sprintf("list[%d]", *assert.Index)
			}
			return fmt.Errorf("%s assertion failed: expected %s %v, got %s",
				where, assert.Predicate.Operation, assert.Predicate.Value, describeList(out.elems))
		}
	}
	return nil
}
