package parser

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/google/uuid"

	"github.com/jacoelho/jsonlist/internal/list"
	"github.com/jacoelho/jsonlist/internal/sentinel"
)

// Literal is scalar text taken verbatim from the YAML source, so `value: 007`
// reaches the sniffer as "007" rather than as a decoded integer.
type Literal string

// UnmarshalYAML keeps the source spelling of any scalar node.
func (l *Literal) UnmarshalYAML(node ast.Node) error {
	text, err := scalarText(node)
	if err != nil {
		return fmt.Errorf("%w: %v (quote JSON text to keep it a string)", ErrParser, err)
	}
	*l = Literal(text)
	return nil
}

func (l Literal) String() string { return string(l) }

// Path is a sequence of path steps written as YAML integers and strings.
type Path []list.Element

// UnmarshalYAML decodes path steps. Integers become indexes, -1 the append
// marker, strings object keys.
func (p *Path) UnmarshalYAML(node ast.Node) error {
	if _, ok := node.(*ast.NullNode); ok {
		*p = nil
		return nil
	}
	seq, ok := node.(*ast.SequenceNode)
	if !ok {
		return fmt.Errorf("%w: path must be a sequence", ErrParser)
	}

	out := make(Path, 0, len(seq.Values))
	for i, item := range seq.Values {
		switch n := item.(type) {
		case *ast.IntegerNode:
			v, err := integerValue(n)
			if err != nil {
				return fmt.Errorf("%w: path step %d: %v", ErrParser, i, err)
			}
			out = append(out, list.Integer(v))
		case *ast.StringNode:
			out = append(out, list.String(n.Value))
		default:
			return fmt.Errorf("%w: path step %d must be an integer or string, got %s", ErrParser, i, item.Type())
		}
	}

	*p = out
	return nil
}

// List is a host list written as a YAML sequence. Scalars map to their natural
// host type; single-key mappings force a type:
//
//	{key: <uuid>}  {float: 1}  {integer: 2}  {string: 3}
type List []list.Element

// UnmarshalYAML decodes host list elements.
func (l *List) UnmarshalYAML(node ast.Node) error {
	if _, ok := node.(*ast.NullNode); ok {
		*l = nil
		return nil
	}
	seq, ok := node.(*ast.SequenceNode)
	if !ok {
		return fmt.Errorf("%w: list must be a sequence", ErrParser)
	}

	out := make(List, 0, len(seq.Values))
	for i, item := range seq.Values {
		elem, err := listElement(item)
		if err != nil {
			return fmt.Errorf("%w: list element %d: %v", ErrParser, i, err)
		}
		out = append(out, elem)
	}

	*l = out
	return nil
}

func listElement(node ast.Node) (list.Element, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		v, err := integerValue(n)
		if err != nil {
			return list.Element{}, err
		}
		return list.Integer(v), nil
	case *ast.FloatNode:
		return list.Float(n.Value), nil
	case *ast.StringNode:
		return list.String(n.Value), nil
	case *ast.LiteralNode:
		return list.String(n.Value.Value), nil
	case *ast.BoolNode:
		if n.Value {
			return list.String(sentinel.True), nil
		}
		return list.String(sentinel.False), nil
	case *ast.NullNode:
		return list.String(sentinel.Null), nil
	case *ast.MappingNode, *ast.MappingValueNode:
		return typedElement(node)
	default:
		return list.Element{}, fmt.Errorf("unsupported node type %s", node.Type())
	}
}

func typedElement(node ast.Node) (list.Element, error) {
	values, err := mappingValues(node)
	if err != nil {
		return list.Element{}, err
	}
	if len(values) != 1 {
		return list.Element{}, fmt.Errorf("typed element needs exactly one key, got %d", len(values))
	}

	key, ok := values[0].Key.(*ast.StringNode)
	if !ok {
		return list.Element{}, fmt.Errorf("typed element key must be a string")
	}
	text, err := scalarText(values[0].Value)
	if err != nil {
		return list.Element{}, err
	}

	switch key.Value {
	case "key":
		id, err := uuid.Parse(text)
		if err != nil {
			return list.Element{}, fmt.Errorf("invalid key %q: %w", text, err)
		}
		return list.Key(id), nil
	case "string":
		return list.String(text), nil
	case "integer", "float":
		raw, err := nodeToValue(values[0].Value)
		if err != nil {
			return list.Element{}, err
		}
		switch v := raw.(type) {
		case int64:
			if key.Value == "float" {
				return list.Float(float64(v)), nil
			}
			if v < math.MinInt32 || v > math.MaxInt32 {
				return list.Element{}, fmt.Errorf("integer %d overflows 32 bits", v)
			}
			return list.Integer(int32(v)), nil
		case float64:
			if key.Value == "float" {
				return list.Float(v), nil
			}
			if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
				return list.Element{}, fmt.Errorf("integer element %v is not a 32-bit whole number", v)
			}
			return list.Integer(int32(v)), nil
		default:
			return list.Element{}, fmt.Errorf("%s element needs a number, got %T", key.Value, raw)
		}
	default:
		return list.Element{}, fmt.Errorf("unknown element type %q: use key, string, integer or float", key.Value)
	}
}

func integerValue(n *ast.IntegerNode) (int32, error) {
	raw, err := nodeToValue(n)
	if err != nil {
		return 0, err
	}
	v := raw.(int64)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("integer %d overflows 32 bits", v)
	}
	return int32(v), nil
}

func scalarText(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.NullNode, *ast.InfinityNode, *ast.NanNode:
		return node.GetToken().Value, nil
	default:
		return "", fmt.Errorf("expected a scalar, got %s", node.Type())
	}
}
