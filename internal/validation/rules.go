// Package validation declares per-field request constraints and evaluates
// them against a request without depending on the web framework.
package validation

// Location names the part of the request a rule reads.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Input is the capability set a rule needs from a request.
type Input interface {
	Param(name string) string
	BodyField(name string) (value interface{}, present bool)
}

// Check is a pure predicate over a raw request value.
type Check func(value interface{}, present bool) bool

// Rule pairs a predicate with the message reported when it fails.
type Rule struct {
	Field   string
	In      Location
	Check   Check
	Message string
}

// Violation is one failed rule, shaped for the client.
type Violation struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location Location    `json:"location"`
}

// RuleSet is an ordered list of rules bound to one route.
type RuleSet []Rule

// Evaluate runs every rule and returns all violations in declaration order.
// It never stops at the first failure.
func (rs RuleSet) Evaluate(in Input) []Violation {
	var violations []Violation
	for _, rule := range rs {
		value, present := rule.lookup(in)
		if rule.Check(value, present) {
			continue
		}
		v := Violation{
			Type:     "field",
			Msg:      rule.Message,
			Path:     rule.Field,
			Location: rule.In,
		}
		if present {
			v.Value = value
		}
		violations = append(violations, v)
	}
	return violations
}

// ReadsBody reports whether any rule inspects the request body.
func (rs RuleSet) ReadsBody() bool {
	for _, rule := range rs {
		if rule.In == LocationBody {
			return true
		}
	}
	return false
}

func (r Rule) lookup(in Input) (interface{}, bool) {
	if r.In == LocationParams {
		v := in.Param(r.Field)
		return v, v != ""
	}
	return in.BodyField(r.Field)
}

// MapInput is an Input backed by plain maps.
type MapInput struct {
	Params map[string]string
	Body   map[string]interface{}
}

// Param returns the named path parameter or "".
func (m MapInput) Param(name string) string {
	return m.Params[name]
}

// BodyField returns the named body field and whether it was sent.
func (m MapInput) BodyField(name string) (interface{}, bool) {
	v, ok := m.Body[name]
	return v, ok
}
