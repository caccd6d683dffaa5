package remediation

import (
	"strings"

	"github.com/oshokin/alarm-remediation/internal/domain/alarm"
)

// Outcome is what happened to one envelope.
type Outcome string

// Envelope outcomes.
const (
	// OutcomeRemediated means an incident record was emitted.
	OutcomeRemediated Outcome = "remediated"
	// OutcomeSkipped means the alarm was not in the ALARM state.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeUnclassified means no rule matched the alarm name.
	OutcomeUnclassified Outcome = "unclassified"
	// OutcomeFailed means the envelope could not be processed.
	OutcomeFailed Outcome = "failed"
)

// Decision is the classifier verdict for one event.
type Decision struct {
	// Outcome is OutcomeRemediated when Plan should be emitted, otherwise a skip reason.
	Outcome Outcome
	// Category is the matched category, CategoryNone when nothing matched.
	Category Category
	// Plan is set only for OutcomeRemediated.
	Plan Plan
}

// Classifier maps alarm events to categories using an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over the given rules; nil means DefaultRules.
// Rules are evaluated in order and the first match wins.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}

	return &Classifier{rules: rules}
}

// Classify decides how the event is routed. It has no side effects.
func (c *Classifier) Classify(event *alarm.Event) Decision {
	if !event.NewState.IsAlarm() {
		return Decision{Outcome: OutcomeSkipped}
	}

	name := strings.ToLower(event.Name)

	for _, rule := range c.rules {
		if !rule.Match(name) {
			continue
		}

		plan, ok := PlanFor(rule.Category)
		if !ok {
			continue
		}

		return Decision{
			Outcome:  OutcomeRemediated,
			Category: rule.Category,
			Plan:     plan,
		}
	}

	return Decision{Outcome: OutcomeUnclassified}
}
