package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/cli"
	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/config"
	"github.com/Veraticus/kycheck/internal/export"
	"github.com/Veraticus/kycheck/internal/model"
	"github.com/Veraticus/kycheck/internal/source"
)

type batchOptions struct {
	format string
	output string
	xlsx   string
}

func batchCmd() *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Check several documents and summarize the results",
		Long: `Check each named document in turn and print one line per document with
the number of passing checks, the outstanding count and the case note.

Documents that cannot be read or checked are reported in the table and do not
stop the batch. The command exits non-zero if any document failed.`,
		Example: `  kycheck batch cases/*.txt
  kycheck batch cases/*.xlsx --xlsx results.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "auto", "document format (auto, labeled, tabular)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format (text, json, yaml)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "also write the results to this spreadsheet")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, opts *batchOptions) error {
	if err := validateOutput(opts.output, outputText, outputJSON, outputYAML); err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	checker, err := newChecker(settings)
	if err != nil {
		return err
	}

	reader := source.NewReader(cmd.InOrStdin(), nil)

	docs := make([]check.Document, 0, len(args))
	readErrs := make(map[int]error)
	for i, name := range args {
		text, err := reader.Read(cmd.Context(), name)
		if err != nil {
			readErrs[i] = err
			continue
		}
		docs = append(docs, check.Document{Source: name, Text: text, Format: opts.format})
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(args))
	advance := func() {
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	for range readErrs {
		advance()
	}

	checked, err := checker.CheckAll(cmd.Context(), docs, func(check.Result) { advance() })
	if err != nil {
		return err
	}

	results := mergeResults(args, readErrs, checked)

	if opts.xlsx != "" {
		path := config.ExpandPath(opts.xlsx)
		if err := export.Save(path, results); err != nil {
			return err
		}
		common.LogInfo("Wrote batch results", common.Fields{"path": path, "documents": len(results)})
	}

	out := cmd.OutOrStdout()
	if opts.output == outputText {
		err = cli.RenderBatchTable(out, results, cli.NewPalette(settings.Report.Colors))
		if err == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderBatchSummary(results))
		}
	} else {
		err = writeStructured(out, batchRecords(results), opts.output)
	}
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be checked", failed, len(results))
	}
	return nil
}

// mergeResults restores argument order, slotting read failures between the
// checked documents.
func mergeResults(args []string, readErrs map[int]error, checked []check.Result) []check.Result {
	results := make([]check.Result, 0, len(args))
	next := 0
	for i, name := range args {
		if err, ok := readErrs[i]; ok {
			results = append(results, check.Result{Source: name, Err: err})
			continue
		}
		if next < len(checked) {
			results = append(results, checked[next])
			next++
		}
	}
	return results
}

// batchRecord is the structured form of one batch result.
type batchRecord struct {
	Report *model.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Source string        `json:"source" yaml:"source"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func batchRecords(results []check.Result) []batchRecord {
	out := make([]batchRecord, 0, len(results))
	for _, r := range results {
		rec := batchRecord{Source: r.Source}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		} else {
			report := r.Report
			rec.Report = &report
		}
		out = append(out, rec)
	}
	return out
}
