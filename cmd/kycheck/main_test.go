package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/config"
	"github.com/Veraticus/kycheck/internal/export"
)

const tabularCase = "Surname\tCHAN\tClientName\tTAI MAN\n" +
	"NRICPassportNo\tA1234567\tNationality\tCHINA\n" +
	"EmploymentType\tRETIRED\tAnnualIncomeLevel\t0\n" +
	"EstimatedNetWorth\t1,000,000–5,000,000\tLiquidNetWorth\t<500,000\n" +
	"IsNotChinese\tFALSE\n"

type fakeClipboard struct {
	text    string
	written string
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, nil }

func (f *fakeClipboard) WriteAll(text string) error {
	f.written = text
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCheckCmd_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "case.txt", tabularCase)

	out, _, err := execute(t, checkCmd(), path, "--output", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "tabular", got["format"])
	assert.Equal(t, path, got["source"])

	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(summary["note"].(string), "retired, mainland, non-F2F, martin, "))
	assert.NotContains(t, out, "Record")
}

func TestCheckCmd_StdinText(t *testing.T) {
	cmd := checkCmd()
	cmd.SetIn(strings.NewReader(tabularCase))

	out, _, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "KYC check: stdin (tabular)")
	assert.Contains(t, out, "Name: CHAN TAI MAN")
}

func TestCheckCmd_YAMLFromConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "case.txt", tabularCase)

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("report.reviewer", "alice")

	var out bytes.Buffer
	cmd := checkCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "-o", "yaml"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var got struct {
		Summary struct {
			Tags []string `yaml:"tags"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got.Summary.Tags, "alice")
}

func TestCheckCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "empty document", args: []string{empty}},
		{name: "unknown format", args: []string{empty, "--format", "pdf"}},
		{name: "unknown output", args: []string{empty, "--output", "xml"}},
		{name: "file and clipboard", args: []string{empty, "--clipboard"}},
		{name: "missing file", args: []string{filepath.Join(dir, "nope.txt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, checkCmd(), tt.args...)
			assert.Error(t, err)
		})
	}

	_, _, err := execute(t, checkCmd(), empty)
	msg, ok := common.IsUserError(err)
	require.True(t, ok)
	assert.Contains(t, msg, "is empty")
}

func TestRunCheck_ClipboardAndCopyID(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	clip := &fakeClipboard{text: tabularCase}
	cmd := checkCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())

	opts := &checkOptions{format: "auto", output: outputText, copyID: true, fromClipboard: true}
	require.NoError(t, runCheck(cmd, nil, opts, clip))

	assert.Equal(t, "A1234567", clip.written)
	assert.Contains(t, out.String(), "KYC check: clipboard")
	assert.Contains(t, errOut.String(), "Copied ID number A1234567")
}

func TestCopyID_NoID(t *testing.T) {
	clip := &fakeClipboard{}
	cmd := &cobra.Command{}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)

	require.NoError(t, copyID(cmd, clip, " "))
	assert.Empty(t, clip.written)
	assert.Contains(t, errOut.String(), "No ID number found")
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", tabularCase)
	b := writeFile(t, dir, "b.txt", " ")
	missing := filepath.Join(dir, "missing.txt")
	xlsx := filepath.Join(dir, "results.xlsx")

	out, _, err := execute(t, batchCmd(), a, missing, b, "--xlsx", xlsx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 documents")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], a)
	assert.Contains(t, lines[3], missing)
	assert.Contains(t, lines[4], b)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, a, rows[1][0])
	assert.Equal(t, "tabular", rows[1][1])
}

func TestBatchCmd_JSON(t *testing.T) {
	a := writeFile(t, t.TempDir(), "a.txt", tabularCase)

	out, _, err := execute(t, batchCmd(), a, "-o", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, a, got[0]["source"])
	assert.NotNil(t, got[0]["report"])
	assert.Nil(t, got[0]["error"])
}

func TestMergeResults(t *testing.T) {
	readErr := errors.New("unreadable")
	checked := []check.Result{{Source: "a"}, {Source: "c"}}

	got := mergeResults([]string{"a", "b", "c"}, map[int]error{1: readErr}, checked)

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Source)
	assert.Equal(t, "b", got[1].Source)
	assert.ErrorIs(t, got[1].Err, readErr)
	assert.Equal(t, "c", got[2].Source)
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := execute(t, schemaCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "labeled format")
	assert.Contains(t, out, "tabular format")
	assert.Contains(t, out, "姓名拼音：")
	assert.Contains(t, out, "Rules: recurrence")

	out, _, err = execute(t, schemaCmd(), "tabular")
	require.NoError(t, err)
	assert.NotContains(t, out, "labeled format")
	assert.Contains(t, out, "Counted (tokens): Surname, ClientName, NRICPassportNo")

	out, _, err = execute(t, schemaCmd(), "labeled")
	require.NoError(t, err)
	assert.NotContains(t, out, "tabular format")
	assert.Contains(t, out, "Rules: recurrence, liquid_vs_net_worth, income_plausibility, id_expiry\n")

	_, _, err = execute(t, schemaCmd(), "pdf")
	assert.ErrorIs(t, err, common.ErrUnknownFormat)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestConfigCmd(t *testing.T) {
	out, _, err := execute(t, configCmd())
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, config.Default(), got)
}

func TestWriteStructured_UnknownOutput(t *testing.T) {
	err := writeStructured(&bytes.Buffer{}, struct{}{}, "xml")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "kycheck dev\n", out)
}

func TestInitConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	err := initConfig(nil, nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	path := writeFile(t, t.TempDir(), "config.yaml", "report:\n  channel: F2F\nlogging:\n  level: warn\n")
	cfgFile = path
	require.NoError(t, initConfig(nil, nil))
	assert.Equal(t, path, viper.ConfigFileUsed())

	s, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "F2F", s.Report.Channel)
	assert.Equal(t, "warn", s.Logging.Level)
}
