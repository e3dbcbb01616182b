package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/model"
)

// NewProgressBar returns the bar shown while a batch is checked.
func NewProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Checking documents...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// RenderBatchTable writes one row per batch result.
func RenderBatchTable(w io.Writer, results []check.Result, p Palette) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := BoldStyle
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		header.Render("Source"),
		header.Render("Format"),
		header.Render("Name"),
		header.Render("Pass"),
		header.Render("Outstanding"),
		header.Render("Note")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 12),
		strings.Repeat("─", 7),
		strings.Repeat("─", 16),
		strings.Repeat("─", 5),
		strings.Repeat("─", 11),
		strings.Repeat("─", 20)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, res := range results {
		if err := writeBatchRow(tw, res, p); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func writeBatchRow(w io.Writer, res check.Result, p Palette) error {
	if res.Err != nil {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			res.Source, "-", "-", "-", "-", p.Fail.Render(res.Err.Error()))
		if err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	}

	r := res.Report
	outstanding := p.Pass
	if r.Summary.Outstanding > 0 {
		outstanding = p.Fail
	}
	pass := r.Verdicts.Tally()[model.OutcomePass]

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		res.Source,
		r.Format,
		r.Summary.Display.Name,
		fmt.Sprintf("%d/%d", pass, len(r.Verdicts)),
		outstanding.Render(fmt.Sprintf("%d", r.Summary.Outstanding)),
		r.Summary.Note); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// RenderBatchSummary returns a boxed count of clean, outstanding and failed
// documents.
func RenderBatchSummary(results []check.Result) string {
	clean, outstanding, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Report.Summary.Outstanding > 0:
			outstanding++
		default:
			clean++
		}
	}

	content := fmt.Sprintf("Documents: %d\n", len(results)) +
		SuccessStyle.Render(fmt.Sprintf("%s Clean: %d", PassIcon, clean)) + "\n" +
		WarningStyle.Render(fmt.Sprintf("%s Outstanding items: %d", MissingIcon, outstanding)) + "\n" +
		ErrorStyle.Render(fmt.Sprintf("%s Not checked: %d", FailIcon, failed))

	return RenderBox("Batch Complete", content)
}
