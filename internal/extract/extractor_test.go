package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/kycheck/internal/model"
)

var labeledDocument = strings.Join([]string{
	"客戶資料",
	"姓名：陳大文",
	"姓名拼音：CHAN TAI MAN",
	"證件住址：香港九龍彌敦道1號\t郵編：000000",
	"住宅地址：香港九龍彌敦道1號\t備註",
	"公司地址：香港中環皇后大道中2號",
	"公司名稱：大文貿易有限公司",
	"工作狀況：受僱\t全職",
	"行業：貿易",
	"職業：經理",
	"稅務編號：12345678",
	"電子郵箱：chan@example.com 備用",
	"资金来源 薪金\t投資",
	"證件有效期：2030-01-01\t長期",
	"流动资产(港币) 500,000-1,000,000",
	"资产净值(港币) 3,000,000-5,000,000",
	"年薪(港币) 600,000",
	"受雇年期：10",
	"覆核 12345678 / 12345678",
}, "\n")

func TestExtract_Labeled(t *testing.T) {
	record, err := Extract(labeledDocument, LabeledSchema())
	require.NoError(t, err)

	want := map[string]string{
		model.FieldNonEnglishName:     "陳大文",
		model.FieldClientName:         "CHAN TAI MAN",
		model.FieldIDAddress:          "香港九龍彌敦道1號",
		model.FieldResidentialAddress: "香港九龍彌敦道1號",
		model.FieldEmployerAddress:    "香港中環皇后大道中2號",
		model.FieldEmployerName:       "大文貿易有限公司",
		model.FieldEmploymentType:     "受僱",
		model.FieldEmploymentIndustry: "貿易",
		model.FieldOccupation:         "經理",
		model.FieldNRICPassportNo:     "12345678",
		model.FieldEmail:              "chan@example.com",
		model.FieldFundingSource:      "薪金",
		model.FieldIDExpiryDate:       "2030-01-01",
		model.FieldLiquidNetWorth:     "500,000-1,000,000",
		model.FieldEstimatedNetWorth:  "3,000,000-5,000,000",
		model.FieldAnnualIncomeLevel:  "600,000",
		model.FieldYearsOfService:     "10",
	}
	if diff := cmp.Diff(want, record.Values()); diff != "" {
		t.Errorf("labeled values mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, model.FormatLabeled, record.Format())
	assert.Equal(t, 3, record.Count(model.FieldNRICPassportNo))
	assert.Equal(t, 2, record.Count(model.FieldResidentialAddress))
	assert.False(t, record.HasMarker(model.MarkerGoodFund))
}

func TestExtract_LabeledMissingFieldIsAbsent(t *testing.T) {
	record, err := Extract("姓名：陳大文\n", LabeledSchema())
	require.NoError(t, err)

	assert.Equal(t, model.FieldPresent, record.Lookup(model.FieldNonEnglishName).State)
	assert.Equal(t, model.FieldAbsent, record.Lookup(model.FieldNRICPassportNo).State)
	assert.Equal(t, 0, record.Count(model.FieldNRICPassportNo))
	assert.Equal(t, 0, record.Count(model.FieldResidentialAddress))
}

func TestExtract_LabeledSubstringOverCount(t *testing.T) {
	doc := "稅務編號：123\n電話 1234 5123\n"
	record, err := Extract(doc, LabeledSchema())
	require.NoError(t, err)

	// "123" is counted inside "1234" and "5123" as well.
	assert.Equal(t, 3, record.Count(model.FieldNRICPassportNo))
}

func TestParseTabular(t *testing.T) {
	tests := []struct {
		want  map[string]string
		name  string
		input string
	}{
		{
			name:  "pairs on one line",
			input: "Surname\tSmith\tClientName\tSmith John",
			want:  map[string]string{"Surname": "Smith", "ClientName": "Smith John"},
		},
		{
			name:  "odd trailing key maps to empty string",
			input: "Nationality\tCHINA\tIsNotChinese",
			want:  map[string]string{"Nationality": "CHINA", "IsNotChinese": ""},
		},
		{
			name:  "empty segments and padding are skipped",
			input: "  Surname \t\t\t Smith  \t",
			want:  map[string]string{"Surname": "Smith"},
		},
		{
			name:  "last write wins",
			input: "Surname\tSmith\r\nSurname\tJones\n",
			want:  map[string]string{"Surname": "Jones"},
		},
		{
			name:  "blank document",
			input: "\n\n",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTabular(tt.input))
		})
	}
}

func TestExtract_TabularCounts(t *testing.T) {
	doc := strings.Join([]string{
		"Surname\tCHAN\tClientName\tTAI MAN",
		"NRICPassportNo\tA1234567",
		"Signed by CHAN (A1234567)",
		"CHAN CHANG A1234567",
		model.GoodFundText,
	}, "\n")

	record, err := Extract(doc, TabularSchema())
	require.NoError(t, err)

	assert.Equal(t, 3, record.Count(model.FieldSurname))
	// Token match only: "(A1234567)" is not the same token.
	assert.Equal(t, 2, record.Count(model.FieldNRICPassportNo))
	// Multi-word values never equal a single token.
	assert.Equal(t, 0, record.Count(model.FieldClientName))
	assert.True(t, record.HasMarker(model.MarkerGoodFund))
}

func TestExtract_TabularBlankKeyIsEmptyNotAbsent(t *testing.T) {
	record, err := Extract("IsNotChinese", TabularSchema())
	require.NoError(t, err)

	assert.Equal(t, model.FieldEmpty, record.Lookup(model.FieldIsNotChinese).State)
	assert.Equal(t, model.FieldAbsent, record.Lookup(model.FieldSurname).State)
}

func TestExtract_Idempotent(t *testing.T) {
	for _, schema := range []Schema{LabeledSchema(), TabularSchema()} {
		e, err := New(schema)
		require.NoError(t, err)

		first := e.Extract(labeledDocument)
		second := e.Extract(labeledDocument)
		if diff := cmp.Diff(first, second, cmp.AllowUnexported(model.FieldRecord{})); diff != "" {
			t.Errorf("%s extraction not idempotent (-first +second):\n%s", schema.Format, diff)
		}
	}
}

func TestSchema_WithExtra(t *testing.T) {
	base := LabeledSchema()

	extended, err := base.WithExtra(FieldSpec{Name: "Mobile", Label: "手提電話："})
	require.NoError(t, err)
	assert.Len(t, extended.Fields, len(base.Fields)+1)
	assert.Len(t, LabeledSchema().Fields, len(base.Fields), "base schema must not change")

	record, err := Extract("手提電話： 91234567\n", extended)
	require.NoError(t, err)
	assert.Equal(t, "91234567", record.Value("Mobile"))

	tests := []struct {
		name   string
		schema Schema
		spec   FieldSpec
	}{
		{name: "duplicate name", schema: base, spec: FieldSpec{Name: model.FieldEmail, Label: "Email:"}},
		{name: "missing label", schema: base, spec: FieldSpec{Name: "Mobile"}},
		{name: "pattern without capture", schema: base, spec: FieldSpec{Name: "Mobile", Label: "x", Pattern: `手提\d+`}},
		{name: "tabular schema", schema: TabularSchema(), spec: FieldSpec{Name: "Mobile", Label: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.schema.WithExtra(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, model.FormatLabeled, Detect(labeledDocument))
	assert.Equal(t, model.FormatTabular, Detect("Surname\tCHAN\n"))
	assert.Equal(t, model.FormatTabular, Detect("姓名：陳大文 only one label"))

	f, ok := ParseFormat("AUTO", labeledDocument)
	assert.True(t, ok)
	assert.Equal(t, model.FormatLabeled, f)

	f, ok = ParseFormat("tabular", labeledDocument)
	assert.True(t, ok)
	assert.Equal(t, model.FormatTabular, f)

	_, ok = ParseFormat("csv", "")
	assert.False(t, ok)
}

func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor(model.FormatTabular)
	require.NoError(t, err)
	assert.Equal(t, CountTokens, s.Counting)

	_, err = SchemaFor("xml")
	assert.Error(t, err)
}
