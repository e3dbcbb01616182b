// Package summary composes the reviewer-facing narrative for a checked document.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/kycheck/internal/model"
)

// Options carries the constant tags appended to every case note.
type Options struct {
	Now      func() time.Time
	Channel  string
	Reviewer string
}

// DefaultOptions returns the tags used by the onboarding desk.
func DefaultOptions() Options {
	return Options{
		Now:      time.Now,
		Channel:  "non-F2F",
		Reviewer: "martin",
	}
}

// employmentPhrases maps employment types to their case-note phrase.
var employmentPhrases = map[string]string{
	model.EmploymentUnemployed:   "no job",
	model.EmploymentHomemaker:    "homemaker",
	model.EmploymentRetired:      "retired",
	model.EmploymentSelfEmployed: "self-employed",
	model.EmploymentStudent:      "student",
	model.EmploymentInvestor:     "investor",
}

// Compose builds the display record, the case-note tags and the address
// comparison. Absent fields render as empty strings.
func Compose(record model.FieldRecord, verdicts model.Verdicts, opts Options) model.Summary {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	display := DisplayOf(record)
	risk := ClassifyAML(display.AMLRemark)
	tags := Tags(record, risk, opts)

	return model.Summary{
		Display:         display,
		Tags:            tags,
		Note:            strings.Join(tags, ", "),
		AMLRisk:         risk,
		AddressesDiffer: display.EmployerAddress != display.ResidentialAddress,
		Outstanding:     Outstanding(verdicts),
	}
}

// Outstanding counts verdicts that need reviewer attention: failures and
// missing data. A verdict that only backs another rule is skipped when that
// rule passed.
func Outstanding(verdicts model.Verdicts) int {
	n := 0
	for _, v := range verdicts {
		if v.Outcome != model.OutcomeFail && v.Outcome != model.OutcomeMissingData {
			continue
		}
		if v.Backs != "" {
			if backed, ok := verdicts.Find(v.Backs); ok && backed.Passed() {
				continue
			}
		}
		n++
	}
	return n
}

// DisplayOf collects the fields shown to the reviewer.
func DisplayOf(record model.FieldRecord) model.Display {
	return model.Display{
		Name: strings.TrimSpace(record.Value(model.FieldSurname) + " " +
			record.Value(model.FieldClientName)),
		NonEnglishName:     record.FirstOf(model.FieldNoneEnglishName, model.FieldNonEnglishName).Value,
		Nationality:        record.Value(model.FieldNationality),
		DateOfBirth:        record.Value(model.FieldDateOfBirth),
		Occupation:         record.Value(model.FieldOccupation),
		EmploymentType:     record.Value(model.FieldEmploymentType),
		EmploymentIndustry: record.Value(model.FieldEmploymentIndustry),
		EmployerName:       record.Value(model.FieldEmployerName),
		ResidentialAddress: Address(record, model.FieldResidentialAddress),
		EmployerAddress:    Address(record, model.FieldEmployerAddress),
		IDAddress:          record.Value(model.FieldIDAddress),
		BankName:           record.Value(model.FieldDesignatedBankName),
		BankAccountNo:      record.Value(model.FieldDesignatedBankAccountNo),
		IDNumber:           record.Value(model.FieldNRICPassportNo),
		AMLRemark:          record.Value(model.FieldAMLRemark),
		Email:              record.Value(model.FieldEmail),
		FundingSource:      record.Value(model.FieldFundingSource),
	}
}

// Address joins the numbered address lines of a field (Prefix1..Prefix3) with
// single spaces. Records with a single un-numbered line use that instead.
func Address(record model.FieldRecord, prefix string) string {
	parts := make([]string, 0, 3)
	numbered := false
	for i := 1; i <= 3; i++ {
		f := record.Lookup(fmt.Sprintf("%s%d", prefix, i))
		if f.State != model.FieldAbsent {
			numbered = true
		}
		if f.Found() {
			parts = append(parts, f.Value)
		}
	}
	if !numbered {
		return strings.TrimSpace(record.Value(prefix))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ClassifyAML reads the risk level from the AML remark.
func ClassifyAML(remark string) model.AMLRisk {
	switch {
	case strings.Contains(remark, "MED"):
		return model.AMLRiskMedium
	case strings.Contains(remark, "HIGH"):
		if strings.Contains(remark, "INDUSTRIES") {
			return model.AMLRiskHighIndustry
		}
		return model.AMLRiskHighOther
	default:
		return model.AMLRiskNone
	}
}

// Tags returns the ordered case-note phrases.
func Tags(record model.FieldRecord, risk model.AMLRisk, opts Options) []string {
	tags := make([]string, 0, 8)

	if record.HasMarker(model.MarkerGoodFund) {
		tags = append(tags, model.GoodFundText)
	}

	switch risk {
	case model.AMLRiskMedium:
		tags = append(tags, "AML med")
	case model.AMLRiskHighIndustry:
		tags = append(tags, "AML high, industry")
	case model.AMLRiskHighOther:
		tags = append(tags, "AML high, DJ hit")
	}

	if phrase, ok := employmentPhrases[record.Value(model.FieldEmploymentType)]; ok {
		tags = append(tags, phrase)
	}

	if record.Value(model.FieldNationality) == model.NationalityChina {
		tags = append(tags, "mainland")
	}

	if opts.Channel != "" {
		tags = append(tags, opts.Channel)
	}
	if opts.Reviewer != "" {
		tags = append(tags, opts.Reviewer)
	}

	now := opts.Now()
	tags = append(tags, fmt.Sprintf("%d/%d", now.Day(), int(now.Month())))

	return tags
}
