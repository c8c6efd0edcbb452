// Package number coerces the numeric types produced by YAML and JSON decoders
// so assertion values can be compared regardless of their decoded width.
package number

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case int:
		return float64(current), true
	case int32:
		return float64(current), true
	case int64:
		return float64(current), true
	case uint64:
		return float64(current), true
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ToStrictInt converts integer-typed values, and floats without a fractional
// part, into int.
func ToStrictInt(value any) (int, error) {
	switch current := value.(type) {
	case int:
		return current, nil
	case int32:
		return int(current), nil
	case int64:
		return int(current), nil
	case uint64:
		return int(current), nil
	case float64:
		if current != math.Trunc(current) {
			return 0, fmt.Errorf("value %v is not an integer", current)
		}
		return int(current), nil
	case json.Number:
		parsed, err := current.Int64()
		if err != nil {
			return 0, fmt.Errorf("value %s is not an integer", current)
		}
		return int(parsed), nil
	default:
		return 0, fmt.Errorf("value %T is not an integer", value)
	}
}

// Equal compares a and b, treating any two numbers with the same value as
// equal. Other values are compared deeply.
func Equal(a, b any) bool {
	fa, aNum := ToFloat64(a)
	fb, bNum := ToFloat64(b)
	if aNum && bNum {
		return fa == fb
	}
	if aNum || bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}
