package model

// Outcome is the result of one business rule.
type Outcome string

// Outcome constants.
const (
	OutcomePass          Outcome = "pass"
	OutcomeFail          Outcome = "fail"
	OutcomeNotApplicable Outcome = "not_applicable"
	OutcomeMissingData   Outcome = "missing_data"
)

// RuleID identifies a rule in the checklist.
type RuleID string

// Rule identifiers.
const (
	RuleRecurrence      RuleID = "recurrence"
	RuleLiquidNetWorth  RuleID = "liquid_vs_net_worth"
	RuleIncome          RuleID = "income_plausibility"
	RuleIncomeSources   RuleID = "income_sources"
	RuleSalarySavings   RuleID = "salary_savings"
	RuleNationalityFlag RuleID = "nationality_flag"
	RuleDeclarations    RuleID = "declaration_count"
	RuleIDExpiry        RuleID = "id_expiry"
)

// Verdict is the outcome of one rule for one document.
type Verdict struct {
	Rule    RuleID  `json:"rule" yaml:"rule"`
	Label   string  `json:"label" yaml:"label"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	// Field is set for per-field rules such as recurrence.
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Count  int    `json:"count,omitempty" yaml:"count,omitempty"`
	// Backs names the rule whose failure this verdict is meant to explain.
	Backs RuleID `json:"backs,omitempty" yaml:"backs,omitempty"`
}

// Passed reports whether the verdict is a pass.
func (v Verdict) Passed() bool {
	return v.Outcome == OutcomePass
}

// Verdicts is the ordered verdict set for a document.
type Verdicts []Verdict

// Find returns the first verdict for the rule.
func (vs Verdicts) Find(rule RuleID) (Verdict, bool) {
	for _, v := range vs {
		if v.Rule == rule {
			return v, true
		}
	}
	return Verdict{}, false
}

// Tally counts verdicts by outcome.
func (vs Verdicts) Tally() map[Outcome]int {
	t := make(map[Outcome]int, 4)
	for _, v := range vs {
		t[v.Outcome]++
	}
	return t
}
