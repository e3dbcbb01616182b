package model

import "time"

// AMLRisk is the risk category read from the AML remark.
type AMLRisk string

// AML risk constants.
const (
	AMLRiskNone         AMLRisk = "none"
	AMLRiskMedium       AMLRisk = "medium"
	AMLRiskHighIndustry AMLRisk = "high_industry"
	AMLRiskHighOther    AMLRisk = "high_other"
)

// Display holds the identity, address, employment and banking fields shown to the reviewer.
// Fields missing from the document are empty strings.
type Display struct {
	Name               string `json:"name" yaml:"name"`
	NonEnglishName     string `json:"non_english_name" yaml:"non_english_name"`
	Nationality        string `json:"nationality" yaml:"nationality"`
	DateOfBirth        string `json:"date_of_birth" yaml:"date_of_birth"`
	Occupation         string `json:"occupation" yaml:"occupation"`
	EmploymentType     string `json:"employment_type" yaml:"employment_type"`
	EmploymentIndustry string `json:"employment_industry" yaml:"employment_industry"`
	EmployerName       string `json:"employer_name" yaml:"employer_name"`
	ResidentialAddress string `json:"residential_address" yaml:"residential_address"`
	EmployerAddress    string `json:"employer_address" yaml:"employer_address"`
	IDAddress          string `json:"id_address,omitempty" yaml:"id_address,omitempty"`
	BankName           string `json:"bank_name" yaml:"bank_name"`
	BankAccountNo      string `json:"bank_account_no" yaml:"bank_account_no"`
	IDNumber           string `json:"id_number" yaml:"id_number"`
	AMLRemark          string `json:"aml_remark" yaml:"aml_remark"`
	Email              string `json:"email,omitempty" yaml:"email,omitempty"`
	FundingSource      string `json:"funding_source,omitempty" yaml:"funding_source,omitempty"`
}

// Summary is the composed narrative for a document.
type Summary struct {
	Display         Display  `json:"display" yaml:"display"`
	Tags            []string `json:"tags" yaml:"tags"`
	Note            string   `json:"note" yaml:"note"`
	AMLRisk         AMLRisk  `json:"aml_risk" yaml:"aml_risk"`
	AddressesDiffer bool     `json:"addresses_differ" yaml:"addresses_differ"`
	Outstanding     int      `json:"outstanding" yaml:"outstanding"`
}

// Report is everything produced for one document.
type Report struct {
	CheckedAt time.Time         `json:"checked_at" yaml:"checked_at"`
	Source    string            `json:"source,omitempty" yaml:"source,omitempty"`
	Format    Format            `json:"format" yaml:"format"`
	Fields    map[string]string `json:"fields" yaml:"fields"`
	Counts    map[string]int    `json:"counts,omitempty" yaml:"counts,omitempty"`
	Verdicts  Verdicts          `json:"verdicts" yaml:"verdicts"`
	Summary   Summary           `json:"summary" yaml:"summary"`
	Record    FieldRecord       `json:"-" yaml:"-"`
}
