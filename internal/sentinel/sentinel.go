// Package sentinel holds the reserved tokens exchanged with script callers.
//
// Text tokens are Unicode noncharacters so they cannot appear in legitimate
// payloads; the append marker is a negative path index.
package sentinel

const (
	Invalid = "\uFDD0"
	Object  = "\uFDD1"
	Array   = "\uFDD2"
	Number  = "\uFDD3"
	String  = "\uFDD4"
	Null    = "\uFDD5"
	True    = "\uFDD6"
	False   = "\uFDD7"
	Delete  = "\uFDD8"
)

// Append used as a path index means "one past the last element".
const Append = -1

// Name returns a readable label for a reserved token, or "" for other text.
func Name(token string) string {
	switch token {
	case Invalid:
		return "invalid"
	case Object:
		return "object"
	case Array:
		return "array"
	case Number:
		return "number"
	case String:
		return "string"
	case Null:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case Delete:
		return "delete"
	default:
		return ""
	}
}

// Lookup is the inverse of Name.
func Lookup(name string) (string, bool) {
	switch name {
	case "invalid":
		return Invalid, true
	case "object":
		return Object, true
	case "array":
		return Array, true
	case "number":
		return Number, true
	case "string":
		return String, true
	case "null":
		return Null, true
	case "true":
		return True, true
	case "false":
		return False, true
	case "delete":
		return Delete, true
	default:
		return "", false
	}
}
