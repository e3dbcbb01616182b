// Package rules evaluates the onboarding checklist against a field record.
package rules

import (
	"time"

	"github.com/Veraticus/kycheck/internal/model"
	"github.com/Veraticus/kycheck/internal/money"
)

// Options tunes the checklist thresholds.
type Options struct {
	// Now supplies the current time for date checks.
	Now               func() time.Time
	DeclarationMarker string
	RecurrenceMin     int
	DeclarationCount  int
}

// DefaultOptions returns the thresholds used by the onboarding team.
func DefaultOptions() Options {
	return Options{
		Now:               time.Now,
		RecurrenceMin:     3,
		DeclarationMarker: "FALSE -",
		DeclarationCount:  4,
	}
}

// Plan lists the rules to run for a document and the fields checked for recurrence.
type Plan struct {
	Recurrence []string
	Rules      []model.RuleID
}

// Evaluator runs the checklist. It holds no per-document state and may be reused.
type Evaluator struct {
	opts Options
}

// NewEvaluator creates an evaluator, filling unset options with defaults.
func NewEvaluator(opts Options) *Evaluator {
	def := DefaultOptions()
	if opts.Now == nil {
		opts.Now = def.Now
	}
	if opts.RecurrenceMin <= 0 {
		opts.RecurrenceMin = def.RecurrenceMin
	}
	if opts.DeclarationMarker == "" {
		opts.DeclarationMarker = def.DeclarationMarker
	}
	if opts.DeclarationCount <= 0 {
		opts.DeclarationCount = def.DeclarationCount
	}
	return &Evaluator{opts: opts}
}

// Evaluate applies every rule in the plan, in order. Each rule produces a
// verdict whatever the state of its inputs; nothing here returns an error.
func (e *Evaluator) Evaluate(document string, record model.FieldRecord, plan Plan) model.Verdicts {
	verdicts := make(model.Verdicts, 0, len(plan.Rules)+len(plan.Recurrence))

	for _, rule := range plan.Rules {
		switch rule {
		case model.RuleRecurrence:
			for _, field := range plan.Recurrence {
				verdicts = append(verdicts, e.checkRecurrence(record, field))
			}
		case model.RuleLiquidNetWorth:
			verdicts = append(verdicts, e.checkLiquidNetWorth(record))
		case model.RuleIncome:
			verdicts = append(verdicts, e.checkIncome(record))
		case model.RuleIncomeSources:
			verdicts = append(verdicts, checkIncomeSources(record))
		case model.RuleSalarySavings:
			verdicts = append(verdicts, checkSalarySavings(record))
		case model.RuleNationalityFlag:
			verdicts = append(verdicts, checkNationalityFlag(record))
		case model.RuleDeclarations:
			verdicts = append(verdicts, e.checkDeclarations(document))
		case model.RuleIDExpiry:
			verdicts = append(verdicts, e.checkIDExpiry(record))
		}
	}

	return verdicts
}

// amountReader picks the amount interpretation for the record's format. Labeled
// forms hold narrative amounts, so only their largest number is meaningful.
func amountReader(record model.FieldRecord) func(string) (money.Range, error) {
	if record.Format() == model.FormatLabeled {
		return money.ParseLargest
	}
	return money.Parse
}
