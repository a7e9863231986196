package validation

import (
	"github.com/go-playground/validator/v10"
)

// Rule declares that a named input field must pass the given validator tag.
// Rules are evaluated in declaration order and every violation is collected,
// so callers get a stable, complete report.
type Rule struct {
	Field   string
	Message string
	Tag     string
}

// Required is the only constraint the API currently declares.
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Tag: "required"}
}

// Violation is the wire shape of a single failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations implements error so a rule-check failure can travel through the
// usual c.Error path and be rendered by the error middleware.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	return "validation failed: " + v[0].Field
}

type RuleSet struct {
	rules    []Rule
	validate *validator.Validate
}

func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{
		rules:    rules,
		validate: validator.New(),
	}
}

// Check evaluates every rule against the named fields and returns the
// violations in rule-declaration order, or nil when all pass. Pure: no I/O,
// no mutation of fields.
func (rs *RuleSet) Check(fields map[string]string) Violations {
	var out Violations
	for _, r := range rs.rules {
		if err := rs.validate.Var(fields[r.Field], r.Tag); err != nil {
			out = append(out, Violation{Field: r.Field, Message: r.Message})
		}
	}
	return out
}
