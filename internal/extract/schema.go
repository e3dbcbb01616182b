// Package extract turns onboarding documents into field records.
package extract

import (
	"fmt"
	"regexp"

	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/model"
)

// Counting selects how recurrence of an extracted value is measured.
type Counting int

const (
	// CountSubstring counts every occurrence of the value as a substring of the
	// document. Short values over-count when they are part of longer tokens.
	CountSubstring Counting = iota
	// CountTokens counts whitespace-separated tokens equal to the value.
	// Values containing spaces never match a single token and count zero.
	CountTokens
)

func (c Counting) String() string {
	if c == CountTokens {
		return "tokens"
	}
	return "substring"
}

// FieldSpec describes one field of a schema.
type FieldSpec struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Label string `mapstructure:"label" yaml:"label"`
	// Pattern is a regular expression with one capture group for the value.
	// When empty it is derived from Label.
	Pattern string `mapstructure:"pattern" yaml:"pattern,omitempty"`
	// Truncate keeps only the text before the first tab of the captured value.
	Truncate bool `mapstructure:"truncate" yaml:"truncate,omitempty"`
}

// Schema configures extraction for one document format.
type Schema struct {
	Markers  map[string]string
	Format   model.Format
	Fields   []FieldSpec
	Counted  []string
	Rules    []model.RuleID
	Counting Counting
}

// labelValue is the capture used when a field only names a label: everything up
// to the next full-width colon or line break.
const labelValue = `\s*([^：\n]+)`

// LabeledSchema returns the frozen schema for bilingual labeled text.
func LabeledSchema() Schema {
	return Schema{
		Format: model.FormatLabeled,
		Fields: []FieldSpec{
			{Name: model.FieldNonEnglishName, Label: "姓名："},
			{Name: model.FieldClientName, Label: "姓名拼音："},
			{Name: model.FieldIDAddress, Label: "證件住址：", Truncate: true},
			{Name: model.FieldResidentialAddress, Label: "住宅地址：", Truncate: true},
			{Name: model.FieldEmployerAddress, Label: "公司地址：", Truncate: true},
			{Name: model.FieldEmployerName, Label: "公司名稱："},
			{Name: model.FieldEmploymentType, Label: "工作狀況：", Truncate: true},
			{Name: model.FieldEmploymentIndustry, Label: "行業：", Truncate: true},
			{Name: model.FieldOccupation, Label: "職業："},
			{Name: model.FieldNRICPassportNo, Label: "稅務編號：", Pattern: `稅務編號：\s*(\d+)`},
			{Name: model.FieldEmail, Label: "電子郵箱：", Pattern: `電子郵箱：\s*(\S+)`},
			{Name: model.FieldFundingSource, Label: "资金来源", Truncate: true},
			{Name: model.FieldIDExpiryDate, Label: "證件有效期：", Truncate: true},
			{Name: model.FieldLiquidNetWorth, Label: "流动资产(港币)", Truncate: true},
			{Name: model.FieldEstimatedNetWorth, Label: "资产净值(港币)", Truncate: true},
			{Name: model.FieldAnnualIncomeLevel, Label: "年薪(港币)", Truncate: true},
			{Name: model.FieldYearsOfService, Label: "受雇年期：", Truncate: true},
		},
		Counted:  []string{model.FieldNRICPassportNo, model.FieldResidentialAddress},
		Counting: CountSubstring,
		Markers:  map[string]string{model.MarkerGoodFund: model.GoodFundText},
		Rules: []model.RuleID{
			model.RuleRecurrence,
			model.RuleLiquidNetWorth,
			model.RuleIncome,
			model.RuleIDExpiry,
		},
	}
}

// TabularKeys is the frozen key set of the tab-delimited dump.
var TabularKeys = []string{
	model.FieldSurname,
	model.FieldClientName,
	model.FieldDateOfBirth,
	model.FieldNoneEnglishName,
	model.FieldNonEnglishName,
	model.FieldNationality,
	model.FieldOccupation,
	model.FieldEmploymentType,
	model.FieldEmploymentIndustry,
	model.FieldEmployerName,
	model.FieldEmployerAddress + "1",
	model.FieldEmployerAddress + "2",
	model.FieldEmployerAddress + "3",
	model.FieldResidentialAddress + "1",
	model.FieldResidentialAddress + "2",
	model.FieldResidentialAddress + "3",
	model.FieldDesignatedBankName,
	model.FieldDesignatedBankAccountNo,
	model.FieldNRICPassportNo,
	model.FieldAMLRemark,
	model.FieldEstimatedNetWorth,
	model.FieldEstimatedNetWorthOthers,
	model.FieldLiquidNetWorth,
	model.FieldAnnualIncomeLevel,
	model.FieldYearsOfService,
	model.FieldInvestmentEarning,
	model.FieldPreviousJobs,
	model.FieldProvidedByFamilyMember,
	model.FieldRentalIncome,
	model.FieldOtherIncome,
	model.FieldIsNotChinese,
	model.FieldSavingFromSalary,
}

// TabularSchema returns the schema for tab-delimited key/value dumps.
func TabularSchema() Schema {
	fields := make([]FieldSpec, 0, len(TabularKeys))
	for _, k := range TabularKeys {
		fields = append(fields, FieldSpec{Name: k, Label: k})
	}
	return Schema{
		Format:   model.FormatTabular,
		Fields:   fields,
		Counted:  []string{model.FieldSurname, model.FieldClientName, model.FieldNRICPassportNo},
		Counting: CountTokens,
		Markers:  map[string]string{model.MarkerGoodFund: model.GoodFundText},
		Rules: []model.RuleID{
			model.RuleRecurrence,
			model.RuleLiquidNetWorth,
			model.RuleIncome,
			model.RuleIncomeSources,
			model.RuleSalarySavings,
			model.RuleNationalityFlag,
			model.RuleDeclarations,
		},
	}
}

// SchemaFor returns the built-in schema for a format.
func SchemaFor(format model.Format) (Schema, error) {
	switch format {
	case model.FormatLabeled:
		return LabeledSchema(), nil
	case model.FormatTabular:
		return TabularSchema(), nil
	default:
		return Schema{}, fmt.Errorf("%w: %q", common.ErrUnknownFormat, format)
	}
}

// WithExtra returns a copy of the schema with additional labeled fields appended.
// Existing entries are never replaced.
func (s Schema) WithExtra(extra ...FieldSpec) (Schema, error) {
	if len(extra) == 0 {
		return s, nil
	}
	if s.Format != model.FormatLabeled {
		return s, fmt.Errorf("%w: extra fields only apply to the labeled format", common.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		seen[f.Name] = true
	}

	out := s
	out.Fields = append(make([]FieldSpec, 0, len(s.Fields)+len(extra)), s.Fields...)
	for _, f := range extra {
		if f.Name == "" || f.Label == "" {
			return s, fmt.Errorf("%w: extra field needs a name and a label", common.ErrInvalidConfig)
		}
		if seen[f.Name] {
			return s, fmt.Errorf("%w: field %q already defined", common.ErrInvalidConfig, f.Name)
		}
		if f.Pattern != "" {
			if err := common.ValidatePattern(f.Pattern, 1); err != nil {
				return s, fmt.Errorf("%w: field %q: %v", common.ErrInvalidConfig, f.Name, err)
			}
		}
		seen[f.Name] = true
		out.Fields = append(out.Fields, f)
	}
	return out, nil
}

// expression returns the regular expression used to find the field.
func (f FieldSpec) expression() string {
	if f.Pattern != "" {
		return f.Pattern
	}
	return regexp.QuoteMeta(f.Label) + labelValue
}
