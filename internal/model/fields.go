package model

// Canonical field names. The tabular form uses these keys verbatim; the
// labeled form maps its Chinese labels onto the same names.
const (
	FieldSurname                 = "Surname"
	FieldClientName              = "ClientName"
	FieldDateOfBirth             = "DateOfBirth"
	FieldNoneEnglishName         = "NoneEnglishName"
	FieldNonEnglishName          = "NonEnglishName"
	FieldNationality             = "Nationality"
	FieldOccupation              = "Occupation"
	FieldEmploymentType          = "EmploymentType"
	FieldEmploymentIndustry      = "EmploymentIndustry"
	FieldEmployerName            = "EmployerName"
	FieldEmployerAddress         = "EmployerAddress"
	FieldResidentialAddress      = "ResidentialAddress"
	FieldIDAddress               = "IDAddress"
	FieldDesignatedBankName      = "DesignatedBankName1"
	FieldDesignatedBankAccountNo = "DesignatedBankAccountNo1"
	FieldNRICPassportNo          = "NRICPassportNo"
	FieldAMLRemark               = "AML Remark"
	FieldEstimatedNetWorth       = "EstimatedNetWorth"
	FieldEstimatedNetWorthOthers = "EstimatedNetWorthOthers"
	FieldLiquidNetWorth          = "LiquidNetWorth"
	FieldAnnualIncomeLevel       = "AnnualIncomeLevel"
	FieldYearsOfService          = "YearsOfService"
	FieldInvestmentEarning       = "InvestmentEarning"
	FieldPreviousJobs            = "PreviousJobs"
	FieldProvidedByFamilyMember  = "ProvidedByFamilyMember"
	FieldRentalIncome            = "RentalIncome"
	FieldOtherIncome             = "OtherIncome"
	FieldIsNotChinese            = "IsNotChinese"
	FieldSavingFromSalary        = "Saving From Salary"
	FieldEmail                   = "Email"
	FieldFundingSource           = "FundingSource"
	FieldIDExpiryDate            = "IDExpiryDate"
)

// Literal values the forms use for flags and categories.
const (
	FlagTrue  = "TRUE"
	FlagFalse = "FALSE"

	NetWorthOther = "OTHER"

	EmploymentEmployed     = "EMPLOYED"
	EmploymentSelfEmployed = "SELF-EMPLOYED"
	EmploymentUnemployed   = "UNEMPLOYED"
	EmploymentHomemaker    = "HOMEMAKER"
	EmploymentRetired      = "RETIRED"
	EmploymentStudent      = "STUDENT"
	EmploymentInvestor     = "INVESTOR"

	NationalityChina = "CHINA"
)

// MarkerGoodFund names the marker set when the document carries the auto-FPS good fund line.
const MarkerGoodFund = "GoodFund"

// GoodFundText is the good fund line as written on documents and in case notes.
const GoodFundText = "Good Fund (Auto FPS)"

// EffectiveNetWorth returns the estimated net worth, substituting the free-text
// "others" field when the primary one holds the OTHER sentinel.
func (r FieldRecord) EffectiveNetWorth() Field {
	f := r.Lookup(FieldEstimatedNetWorth)
	if f.Value == NetWorthOther {
		return r.Lookup(FieldEstimatedNetWorthOthers)
	}
	return f
}
