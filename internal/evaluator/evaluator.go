// Package evaluator checks scenario assertions against step results.
package evaluator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/theory/jsonpath"

	"github.com/jacoelho/jsonlist/internal/list"
	"github.com/jacoelho/jsonlist/internal/number"
	"github.com/jacoelho/jsonlist/internal/parser"
)

// Operation constants for predicate evaluation.
const (
	opEquals    = "equals"
	opNotEquals = "not_equals"
	opRegex     = "regex"
	opContains  = "contains"
	opExists    = "exists"
	opLength    = "length"
)

// ErrNotJSON indicates a JSONPath assertion on a result that is not JSON.
var ErrNotJSON = errors.New("result is not JSON")

// Validate performs operation-specific validation for predicates.
func Validate(pred parser.Predicate) error {
	switch pred.Operation {
	case opRegex:
		pattern, ok := pred.Value.(string)
		if !ok {
			return fmt.Errorf("regex predicate pattern must be a string, got %T", pred.Value)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
	case opContains:
		if !pred.HasValue {
			return fmt.Errorf("contains predicate requires a value")
		}
	case opLength:
		if _, err := number.ToStrictInt(pred.Value); err != nil {
			return fmt.Errorf("length predicate value must be an integer: %w", err)
		}
	case opEquals, opNotEquals:
		if !pred.HasValue {
			return fmt.Errorf("%s predicate requires a value", pred.Operation)
		}
	case opExists:
		// opExists doesn't require a value
	default:
		return fmt.Errorf("unknown predicate operation: %q", pred.Operation)
	}
	return nil
}

// EvaluatePredicate evaluates the given predicate against the provided input value.
// It returns true if the predicate matches, false otherwise, or an error if evaluation fails.
//
// Supported predicate operations:
//   - equals: equality with numeric coercion
//   - not_equals: inequality comparison
//   - regex: regular expression pattern matching
//   - contains: substring check on strings, membership check on lists
//   - exists: existence/nil check
//   - length: length comparison for lists, maps and strings
func EvaluatePredicate(pred parser.Predicate, input any) (bool, error) {
	if err := Validate(pred); err != nil {
		return false, err
	}

	switch pred.Operation {
	case opEquals:
		return number.Equal(input, pred.Value), nil
	case opNotEquals:
		return !number.Equal(input, pred.Value), nil
	case opRegex:
		return evaluateRegex(pred.Value, input)
	case opContains:
		return evaluateContains(pred.Value, input)
	case opExists:
		return input != nil, nil
	case opLength:
		return evaluateLength(pred.Value, input)
	default:
		return false, fmt.Errorf("unsupported predicate operation: %q", pred.Operation)
	}
}

// EvaluateJSONPath selects nodes from a JSON document and reports whether any
// of them satisfies the predicate. With no selected node the predicate sees nil.
func EvaluateJSONPath(doc string, expr string, pred parser.Predicate) (bool, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return false, fmt.Errorf("invalid JSONPath expression %q: %w", expr, err)
	}

	var data any
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		return false, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	nodes := p.Select(data)
	if len(nodes) == 0 {
		return EvaluatePredicate(pred, nil)
	}

	for _, node := range nodes {
		match, err := EvaluatePredicate(pred, node)
		if err != nil {
			continue // Skip values that can't be evaluated
		}
		if match {
			return true, nil
		}
	}

	return false, nil
}

// EvaluateList applies pred to a whole list, or to one element when index is
// set. An index past the end evaluates against nil.
func EvaluateList(elems []list.Element, index *int, pred parser.Predicate) (bool, error) {
	if index == nil {
		return EvaluatePredicate(pred, Natives(elems))
	}
	if *index >= len(elems) {
		return EvaluatePredicate(pred, nil)
	}
	return EvaluatePredicate(pred, Native(elems[*index]))
}

// Native converts a host list element to the plain Go value assertions compare.
func Native(e list.Element) any {
	switch e.Kind() {
	case list.KindInteger:
		n, _ := e.AsInteger()
		return int64(n)
	case list.KindFloat:
		f, _ := e.AsFloat()
		return f
	default:
		return e.Text()
	}
}

// Natives converts a whole host list.
func Natives(elems []list.Element) []any {
	out := make([]any, 0, len(elems))
	for _, e := range elems {
		out = append(out, Native(e))
	}
	return out
}

func evaluateRegex(patternValue, input any) (bool, error) {
	pattern, ok := patternValue.(string)
	if !ok {
		return false, fmt.Errorf("regex predicate expects string pattern, got %T", patternValue)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	return re.MatchString(convertToString(input)), nil
}

// convertToString converts various types to their string representation
func convertToString(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func evaluateContains(expected, input any) (bool, error) {
	switch v := input.(type) {
	case string:
		needle, ok := expected.(string)
		if !ok {
			return false, fmt.Errorf("contains predicate expects string value for string input, got %T", expected)
		}
		return strings.Contains(v, needle), nil
	case []any:
		for _, item := range v {
			if number.Equal(item, expected) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("contains predicate expects string or list input, got %T", input)
	}
}

func evaluateLength(expectedValue, input any) (bool, error) {
	expectedLen, err := number.ToStrictInt(expectedValue)
	if err != nil {
		return false, fmt.Errorf("length predicate expects integer value: %w", err)
	}

	inputLen, ok := getLength(input)
	if !ok {
		return false, fmt.Errorf("length predicate expects list, map, or string input, got %T", input)
	}

	return inputLen == expectedLen, nil
}

// getLength returns the length of input if it is a string, slice, or map.
// Strings are measured in characters.
func getLength(input any) (int, bool) {
	if input == nil {
		return 0, false
	}

	if v, ok := input.(string); ok {
		return len([]rune(v)), true
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}
