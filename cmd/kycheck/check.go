package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/cli"
	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/source"
)

type checkOptions struct {
	format        string
	output        string
	copyID        bool
	fromClipboard bool
}

func checkCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check a single onboarding document",
		Long: `Run the onboarding checklist against one document.

The document is read from the named file, from stdin when the file is "-" or
omitted, or from the system clipboard with --clipboard. Spreadsheets (.xlsx)
are read from their first sheet as a tab-delimited dump.

The format is detected from the text unless --format is given.`,
		Example: `  kycheck check client.txt
  kycheck check --clipboard --copy-id
  pbpaste | kycheck check --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts, source.SystemClipboard{})
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "auto", "document format (auto, labeled, tabular)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&opts.copyID, "copy-id", false, "copy the client's ID number to the clipboard")
	cmd.Flags().BoolVar(&opts.fromClipboard, "clipboard", false, "read the document from the clipboard")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions, clip source.Clipboard) error {
	if err := validateOutput(opts.output, outputText, outputJSON, outputYAML); err != nil {
		return err
	}
	if opts.fromClipboard && len(args) > 0 {
		return common.NewUserError("Use either a file or --clipboard, not both", common.ErrUnsupportedInput)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	checker, err := newChecker(settings)
	if err != nil {
		return err
	}

	reader := source.NewReader(cmd.InOrStdin(), clip)
	doc := check.Document{Format: opts.format}

	switch {
	case opts.fromClipboard:
		doc.Source = source.ClipboardName
		doc.Text, err = reader.ReadClipboard()
	case len(args) == 1 && args[0] != source.Stdin:
		doc.Source = args[0]
		doc.Text, err = reader.Read(cmd.Context(), args[0])
	default:
		doc.Source = "stdin"
		doc.Text, err = reader.Read(cmd.Context(), source.Stdin)
	}
	if err != nil {
		return err
	}

	report, err := checker.Check(cmd.Context(), doc)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyDocument):
			return common.NewUserError(fmt.Sprintf("%s is empty, nothing to check", doc.Source), err)
		case errors.Is(err, common.ErrUnknownFormat):
			return common.NewUserError(fmt.Sprintf("Unknown format %q, expected auto, labeled or tabular", opts.format), err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == outputText {
		err = cli.RenderReport(out, report, cli.NewPalette(settings.Report.Colors))
	} else {
		err = writeStructured(out, report, opts.output)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.copyID {
		return copyID(cmd, clip, report.Summary.Display.IDNumber)
	}
	return nil
}

// copyID puts the ID number on the clipboard. Status goes to stderr so that
// structured output on stdout stays parseable.
func copyID(cmd *cobra.Command, clip source.Clipboard, id string) error {
	if strings.TrimSpace(id) == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("No ID number found, clipboard left unchanged"))
		return nil
	}
	if err := clip.WriteAll(id); err != nil {
		return fmt.Errorf("failed to copy ID number: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Copied ID number "+id+" to clipboard"))
	return nil
}
