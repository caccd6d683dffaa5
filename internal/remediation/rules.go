package remediation

import (
	"slices"
	"strings"

	"github.com/oshokin/alarm-remediation/internal/domain/incident"
)

// Category is an alarm-name pattern bucket.
type Category string

// Known categories. CategoryNone means no rule matched.
const (
	CategoryNone        Category = ""
	CategoryError       Category = "error"
	CategoryFailedLogin Category = "failed-login"
)

// Plan is the canned response for a category.
type Plan struct {
	// IncidentType is the human-readable incident label.
	IncidentType string
	// Severity is the incident severity label.
	Severity incident.Severity
	// Actions are the remediation steps reported as taken, in order.
	Actions []string
}

// Rule routes alarm names to a category.
type Rule struct {
	// Category is selected when Match reports true.
	Category Category
	// Match receives the lower-cased alarm name.
	Match func(name string) bool
}

// actionTable is the static category -> plan mapping. Log consumers depend on the exact text.
//
//nolint:gochecknoglobals // Read-only lookup table.
var actionTable = map[Category]Plan{
	CategoryError: {
		IncidentType: "Error Threshold Exceeded",
		Severity:     incident.SeverityHigh,
		Actions: []string{
			"Logged error alarm incident",
			"Gathered system metrics",
			"Notified operations team",
		},
	},
	CategoryFailedLogin: {
		IncidentType: "Multiple Failed Login Attempts Detected",
		Severity:     incident.SeverityCritical,
		Actions: []string{
			"Logged security incident",
			"Analyzed recent login patterns",
			"Reviewed access logs",
			"Alerted security team",
		},
	},
}

// DefaultRules returns the built-in rules in priority order: "error" is checked
// before "failed-login", so a name containing both is an error incident.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CategoryError, Match: contains("error")},
		{Category: CategoryFailedLogin, Match: contains("failed-login")},
	}
}

// PlanFor returns a copy of the plan for the category.
func PlanFor(category Category) (Plan, bool) {
	plan, ok := actionTable[category]
	if !ok {
		return Plan{}, false
	}

	plan.Actions = slices.Clone(plan.Actions)

	return plan, true
}

// contains builds a plain substring predicate.
func contains(substr string) func(string) bool {
	return func(name string) bool {
		return strings.Contains(name, substr)
	}
}
