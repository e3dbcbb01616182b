package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/kycheck/internal/cli"
	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/extract"
	"github.com/Veraticus/kycheck/internal/model"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [labeled|tabular]",
		Short:     "List the fields read from each document format",
		Long:      `Show the fields, recurrence-counted fields and rules for each document format, including any labeled fields added in the config file.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.FormatLabeled), string(model.FormatTabular)},
		RunE:      runSchema,
	}
}

func runSchema(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	formats := []model.Format{model.FormatLabeled, model.FormatTabular}
	if len(args) == 1 {
		formats = []model.Format{model.Format(args[0])}
	}

	schemas := make([]extract.Schema, 0, len(formats))
	for _, format := range formats {
		s, err := extract.SchemaFor(format)
		if err != nil {
			return common.NewUserError(
				fmt.Sprintf("Unknown format %q, expected labeled or tabular", format),
				err,
			)
		}
		if format == model.FormatLabeled {
			if s, err = s.WithExtra(settings.Extract.LabeledExtra...); err != nil {
				return err
			}
		}
		schemas = append(schemas, s)
	}

	out := cmd.OutOrStdout()
	for i, s := range schemas {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := writeSchema(out, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSchema(out io.Writer, s extract.Schema) error {
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s format", s.Format)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.BoldStyle.Render("Field"),
		cli.BoldStyle.Render("Label"),
		cli.BoldStyle.Render("Notes")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, f := range s.Fields {
		var notes []string
		if f.Truncate {
			notes = append(notes, "cut at tab")
		}
		if f.Pattern != "" {
			notes = append(notes, "pattern "+f.Pattern)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Label, strings.Join(notes, ", ")); err != nil {
			return fmt.Errorf("failed to write field row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	rules := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, string(r))
	}
	fmt.Fprintf(out, "\nCounted (%s): %s\n", s.Counting, strings.Join(s.Counted, ", "))
	fmt.Fprintf(out, "Rules: %s\n", strings.Join(rules, ", "))
	return nil
}
