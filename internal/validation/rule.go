// Package validation declares ordered request rules and evaluates them all
// against a request, collecting every failure.
package validation

// Location says where a rule reads its field from.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Rule is a single check on a single field with its own message.
type Rule struct {
	Location Location
	Field    string
	Tag      string
	Message  string
}

// Param declares a rule on a route parameter.
func Param(field, tag, message string) Rule {
	return Rule{Location: LocationParams, Field: field, Tag: tag, Message: message}
}

// Body declares a rule on a top-level JSON body field.
func Body(field, tag, message string) Rule {
	return Rule{Location: LocationBody, Field: field, Tag: tag, Message: message}
}

// FieldError is the JSON shape of one failed rule.
type FieldError struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}
