// Package parser decodes YAML scenario files for the value engine.
package parser

import (
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"

	"github.com/jacoelho/jsonlist/internal/list"
)

// ErrParser is the sentinel error for all parser-related failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrParser = fmt.Errorf("parser error")

// Operation names accepted in the op field.
const (
	OpGet      = "get"
	OpSet      = "set"
	OpDelete   = "delete"
	OpType     = "type"
	OpToList   = "to_list"
	OpFromList = "from_list"
)

// Step is a single engine call together with its expectations.
type Step struct {
	Op      string   `yaml:"op"`                // Operation to run
	JSON    Literal  `yaml:"json,omitempty"`    // Document text (templated)
	Path    Path     `yaml:"path,omitempty"`    // Path steps: ints are indexes, -1 appends, strings are keys
	Value   Literal  `yaml:"value,omitempty"`   // Literal for set (templated)
	Shape   string   `yaml:"shape,omitempty"`   // array or object, for from_list
	List    List     `yaml:"list,omitempty"`    // Host list, for from_list
	Expect  *Literal `yaml:"expect,omitempty"`  // Exact expected result text (templated)
	Asserts Asserts  `yaml:"asserts,omitempty"` // Result assertions
	Capture string   `yaml:"capture,omitempty"` // Variable name receiving the result text
}

// Asserts groups the assertions evaluated against a step result.
type Asserts struct {
	Result   []ResultAssert   `yaml:"result,omitempty"`   // Predicates on the raw result text
	JSONPath []JSONPathAssert `yaml:"jsonpath,omitempty"` // JSONPath assertions on JSON results
	List     []ListAssert     `yaml:"list,omitempty"`     // Assertions on to_list output
}

// ResultAssert applies a predicate to the whole result text.
type ResultAssert struct {
	Predicate `yaml:",inline"`
}

// JSONPathAssert represents an assertion on a JSONPath expression.
// It allows validation of specific data extracted from a JSON result.
type JSONPathAssert struct {
	Path      string    `yaml:"path"`    // JSONPath expression
	Predicate Predicate `yaml:",inline"` // Predicate for extracted value validation
}

// ListAssert checks a list result. Without an index the predicate sees the
// whole list; with one it sees that element.
type ListAssert struct {
	Index     *int
	Predicate Predicate
}

// UnmarshalYAML implements custom YAML unmarshaling for ResultAssert.
func (r *ResultAssert) UnmarshalYAML(node ast.Node) error {
	return r.Predicate.UnmarshalYAML(node)
}

// UnmarshalYAML implements custom YAML unmarshaling for JSONPathAssert.
// It separates the path from the predicate fields during parsing.
func (p *JSONPathAssert) UnmarshalYAML(node ast.Node) error {
	return unmarshalAssertWithField(node, "path", &p.Path, &p.Predicate, "JSONPathAssert")
}

// UnmarshalYAML implements custom YAML unmarshaling for ListAssert.
func (l *ListAssert) UnmarshalYAML(node ast.Node) error {
	values, err := mappingValues(node)
	if err != nil {
		return fmt.Errorf("%w: ListAssert: %v", ErrParser, err)
	}

	predMap := &ast.MappingNode{}
	for _, valNode := range values {
		kNode, ok := valNode.Key.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("%w: ListAssert: key must be string", ErrParser)
		}
		if kNode.Value != "index" {
			predMap.Values = append(predMap.Values, valNode)
			continue
		}
		raw, err := nodeToValue(valNode.Value)
		if err != nil {
			return fmt.Errorf("%w: ListAssert: %v", ErrParser, err)
		}
		index, ok := raw.(int64)
		if !ok || index < 0 {
			return fmt.Errorf("%w: ListAssert: index must be a non-negative integer", ErrParser)
		}
		i := int(index)
		l.Index = &i
	}

	if err := l.Predicate.UnmarshalYAML(predMap); err != nil {
		return fmt.Errorf("%w: ListAssert: %v", ErrParser, err)
	}
	return nil
}

// unmarshalAssertWithField extracts a named string field and unmarshals the
// remaining keys as the predicate.
func unmarshalAssertWithField(node ast.Node, fieldName string, fieldValue *string, predicate *Predicate, typeName string) error {
	values, err := mappingValues(node)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParser, typeName, err)
	}

	predMap := &ast.MappingNode{}
	for _, valNode := range values {
		kNode, ok := valNode.Key.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("%w: %s: key must be string", ErrParser, typeName)
		}

		if kNode.Value == fieldName {
			stringVal, ok := valNode.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: %s: %s value must be string", ErrParser, typeName, fieldName)
			}
			*fieldValue = stringVal.Value
		} else {
			predMap.Values = append(predMap.Values, valNode)
		}
	}

	if *fieldValue == "" {
		return fmt.Errorf("%w: %s: missing required '%s' field", ErrParser, typeName, fieldName)
	}

	if err := predicate.UnmarshalYAML(predMap); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParser, typeName, err)
	}

	return nil
}

// mappingValues accepts both multi-key mappings and the single key/value
// node the YAML parser produces for one-entry mappings.
func mappingValues(node ast.Node) ([]*ast.MappingValueNode, error) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, nil
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, nil
	default:
		return nil, fmt.Errorf("expected mapping node, got %s", node.Type())
	}
}

// Parse decodes a YAML stream of steps.
func Parse(r io.Reader) ([]Step, error) {
	decoder := yaml.NewDecoder(r)
	var steps []Step

	if err := decoder.Decode(&steps); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrParser, err)
	}

	return steps, nil
}

// Elements returns the path as host list elements.
func (p Path) Elements() []list.Element { return []list.Element(p) }

// Elements returns the list as host list elements.
func (l List) Elements() []list.Element { return []list.Element(l) }
