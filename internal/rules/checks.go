package rules

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/Veraticus/kycheck/internal/model"
	"github.com/Veraticus/kycheck/internal/money"
)

// nonIncomeEmployment lists employment types expected to declare no income.
var nonIncomeEmployment = map[string]bool{
	model.EmploymentStudent:    true,
	model.EmploymentRetired:    true,
	model.EmploymentUnemployed: true,
	model.EmploymentHomemaker:  true,
}

// incomeSourceFlags are the alternative explanations for wealth beyond salary.
var incomeSourceFlags = []string{
	model.FieldInvestmentEarning,
	model.FieldPreviousJobs,
	model.FieldProvidedByFamilyMember,
	model.FieldRentalIncome,
	model.FieldOtherIncome,
}

const (
	detailMissing = "Missing data"
	detailInvalid = "Invalid data"
)

func (e *Evaluator) checkRecurrence(record model.FieldRecord, field string) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleRecurrence,
		Label: fmt.Sprintf("%s appears %d times or more", field, e.opts.RecurrenceMin),
		Field: field,
	}

	f := record.Lookup(field)
	if !f.Found() {
		v.Outcome = model.OutcomeFail
		v.Detail = "not found"
		return v
	}

	v.Value = f.Value
	v.Count = record.Count(field)
	v.Detail = fmt.Sprintf("found %d times", v.Count)
	v.Outcome = outcome(v.Count >= e.opts.RecurrenceMin)
	return v
}

func (e *Evaluator) checkLiquidNetWorth(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleLiquidNetWorth,
		Label: "LiquidNetWorth <= EstimatedNetWorth",
	}

	liquid := record.Lookup(model.FieldLiquidNetWorth)
	estimate := record.EffectiveNetWorth()
	if !liquid.Found() || !estimate.Found() {
		v.Outcome = model.OutcomeFail
		v.Detail = detailMissing
		return v
	}

	parse := amountReader(record)
	est, err := parse(estimate.Value)
	if err != nil {
		v.Outcome = model.OutcomeMissingData
		v.Detail = detailInvalid
		return v
	}

	if money.IsOverMillion(liquid.Value) {
		v.Outcome = outcome(est.Upper >= money.Million)
		v.Detail = fmt.Sprintf("%d >= %d", est.Upper, money.Million)
		return v
	}

	liq, err := parse(liquid.Value)
	if err != nil {
		v.Outcome = model.OutcomeMissingData
		v.Detail = detailInvalid
		return v
	}

	v.Outcome = outcome(liq.Upper <= est.Upper)
	v.Detail = fmt.Sprintf("%d <= %d", liq.Upper, est.Upper)
	return v
}

func (e *Evaluator) checkIncome(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleIncome,
		Label: "AnnualIncomeLevel * YearsOfService >= EstimatedNetWorth",
	}

	income := record.Lookup(model.FieldAnnualIncomeLevel)
	if !income.Found() {
		v.Outcome = model.OutcomeFail
		v.Detail = detailMissing
		return v
	}

	parse := amountReader(record)
	var upper int64
	if money.IsOverMillion(income.Value) {
		upper = money.OverMillionIncome
	} else {
		r, err := parse(income.Value)
		if err != nil {
			v.Outcome = model.OutcomeMissingData
			v.Detail = detailInvalid
			return v
		}
		upper = r.Upper
	}

	estimate := record.EffectiveNetWorth()
	if !estimate.Found() {
		v.Outcome = model.OutcomeFail
		v.Detail = detailMissing
		return v
	}
	est, err := parse(estimate.Value)
	if err != nil {
		v.Outcome = model.OutcomeMissingData
		v.Detail = detailInvalid
		return v
	}

	if nonIncomeEmployment[record.Value(model.FieldEmploymentType)] {
		v.Outcome = outcome(upper == 0)
		v.Detail = fmt.Sprintf("%d", upper)
		return v
	}

	years := yearsOfService(record.Value(model.FieldYearsOfService))
	product := money.SaturatingMul(upper, years)
	v.Outcome = outcome(product >= est.Lower)
	v.Detail = fmt.Sprintf("%d * %d = %d >= %d", upper, years, product, est.Lower)
	return v
}

func checkIncomeSources(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleIncomeSources,
		Label: "Other income sources declared",
		Backs: model.RuleIncome,
	}

	var declared []string
	for _, flag := range incomeSourceFlags {
		if record.Value(flag) == model.FlagTrue {
			declared = append(declared, flag)
		}
	}

	v.Outcome = outcome(len(declared) > 0)
	if len(declared) == 0 {
		v.Detail = "none declared"
	} else {
		v.Detail = strings.Join(declared, ", ")
	}
	return v
}

func checkSalarySavings(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleSalarySavings,
		Label: "If EmploymentType = EMPLOYED, Saving From Salary = TRUE",
		Value: record.Value(model.FieldSavingFromSalary),
	}

	employment := record.Value(model.FieldEmploymentType)
	if employment != model.EmploymentEmployed {
		v.Outcome = model.OutcomeNotApplicable
		if employment == "" {
			v.Detail = "EmploymentType not given"
		} else {
			v.Detail = "EmploymentType is " + employment
		}
		return v
	}

	v.Outcome = outcome(v.Value == model.FlagTrue)
	return v
}

func checkNationalityFlag(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleNationalityFlag,
		Label: "IsNotChinese = FALSE",
		Value: record.Value(model.FieldIsNotChinese),
	}
	v.Outcome = outcome(v.Value == model.FlagFalse)
	return v
}

func (e *Evaluator) checkDeclarations(document string) model.Verdict {
	count := strings.Count(document, e.opts.DeclarationMarker)
	return model.Verdict{
		Rule:    model.RuleDeclarations,
		Label:   fmt.Sprintf("Count of %q is %d", e.opts.DeclarationMarker, e.opts.DeclarationCount),
		Count:   count,
		Detail:  fmt.Sprintf("found %d", count),
		Outcome: outcome(count == e.opts.DeclarationCount),
	}
}

func (e *Evaluator) checkIDExpiry(record model.FieldRecord) model.Verdict {
	v := model.Verdict{
		Rule:  model.RuleIDExpiry,
		Label: "ID document valid today or later",
	}

	f := record.Lookup(model.FieldIDExpiryDate)
	if !f.Found() {
		v.Outcome = model.OutcomeMissingData
		v.Detail = "not found"
		return v
	}
	v.Value = f.Value

	switch CheckDate(f.Value, e.opts.Now()) {
	case DateFuture:
		v.Outcome = model.OutcomePass
		v.Detail = "valid"
	case DatePast:
		v.Outcome = model.OutcomeFail
		v.Detail = "expired"
	default:
		v.Outcome = model.OutcomeMissingData
		v.Detail = "invalid date format"
	}
	return v
}

// DateStatus classifies a date against today.
type DateStatus int

// Date status constants.
const (
	DateInvalid DateStatus = iota
	DateFuture
	DatePast
)

// CheckDate parses an ISO date (YYYY-MM-DD) and reports whether it falls on or
// after the day of now. Unparseable input is DateInvalid rather than an error.
func CheckDate(value string, now time.Time) DateStatus {
	given, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return DateInvalid
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if given.Before(today) {
		return DatePast
	}
	return DateFuture
}

// yearsOfService reads a whole number of years. Anything that is not plain
// digits counts as zero years.
func yearsOfService(value string) int64 {
	s := strings.TrimSpace(width.Fold.String(value))
	if s == "" {
		return 0
	}
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		if n > money.Unbounded/10 {
			return money.Unbounded
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

func outcome(pass bool) model.Outcome {
	if pass {
		return model.OutcomePass
	}
	return model.OutcomeFail
}
