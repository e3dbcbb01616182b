// Package check runs a document through extraction, the rule checklist and
// summary composition.
package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/config"
	"github.com/Veraticus/kycheck/internal/extract"
	"github.com/Veraticus/kycheck/internal/model"
	"github.com/Veraticus/kycheck/internal/rules"
	"github.com/Veraticus/kycheck/internal/summary"
)

// Options configures a Checker.
type Options struct {
	Now          func() time.Time
	Summary      summary.Options
	LabeledExtra []extract.FieldSpec
	Rules        rules.Options
}

// OptionsFrom maps loaded settings onto checker options.
func OptionsFrom(s config.Settings) Options {
	return Options{
		Rules: rules.Options{
			RecurrenceMin:     s.Rules.RecurrenceMin,
			DeclarationMarker: s.Rules.DeclarationMarker,
			DeclarationCount:  s.Rules.DeclarationCount,
		},
		Summary: summary.Options{
			Channel:  s.Report.Channel,
			Reviewer: s.Report.Reviewer,
		},
		LabeledExtra: s.Extract.LabeledExtra,
	}
}

// Document is one piece of input text.
type Document struct {
	// Source names where the text came from, for reporting only.
	Source string
	Text   string
	// Format is "auto", "labeled" or "tabular".
	Format string
}

// Checker holds one compiled extractor per format and is safe to reuse across
// documents.
type Checker struct {
	extractors map[model.Format]*extract.Extractor
	evaluator  *rules.Evaluator
	now        func() time.Time
	summary    summary.Options
}

// New compiles the schemas and prepares the evaluator.
func New(opts Options) (*Checker, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Rules.Now = opts.Now
	opts.Summary.Now = opts.Now

	labeled, err := extract.LabeledSchema().WithExtra(opts.LabeledExtra...)
	if err != nil {
		return nil, err
	}

	c := &Checker{
		extractors: make(map[model.Format]*extract.Extractor, 2),
		evaluator:  rules.NewEvaluator(opts.Rules),
		now:        opts.Now,
		summary:    opts.Summary,
	}
	for _, schema := range []extract.Schema{labeled, extract.TabularSchema()} {
		e, err := extract.New(schema)
		if err != nil {
			return nil, fmt.Errorf("prepare %s extractor: %w", schema.Format, err)
		}
		c.extractors[schema.Format] = e
	}

	return c, nil
}

// Check produces the report for a single document. Missing fields never fail
// a check; only blank input or an unknown format name is an error.
func (c *Checker) Check(ctx context.Context, doc Document) (model.Report, error) {
	if err := ctx.Err(); err != nil {
		return model.Report{}, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return model.Report{}, common.ErrEmptyDocument
	}

	format, ok := extract.ParseFormat(doc.Format, doc.Text)
	if !ok {
		return model.Report{}, fmt.Errorf("%w: %q", common.ErrUnknownFormat, doc.Format)
	}
	extractor := c.extractors[format]
	schema := extractor.Schema()

	record := extractor.Extract(doc.Text)
	verdicts := c.evaluator.Evaluate(doc.Text, record, rules.Plan{
		Recurrence: schema.Counted,
		Rules:      schema.Rules,
	})
	sum := summary.Compose(record, verdicts, c.summary)

	tally := verdicts.Tally()
	common.LogDebug("Checked document", common.Fields{
		"source":       doc.Source,
		"format":       string(format),
		"fields":       record.Len(),
		"pass":         tally[model.OutcomePass],
		"fail":         tally[model.OutcomeFail],
		"missing_data": tally[model.OutcomeMissingData],
	})

	return model.Report{
		CheckedAt: c.now(),
		Source:    doc.Source,
		Format:    format,
		Fields:    record.Values(),
		Counts:    record.Counts(),
		Verdicts:  verdicts,
		Summary:   sum,
		Record:    record,
	}, nil
}

// Result pairs a batch input with its report or error.
type Result struct {
	Err    error
	Source string
	Report model.Report
}

// CheckAll checks documents in order, calling progress after each one. A
// failing document is recorded in its Result and does not stop the batch;
// cancellation of ctx does.
func (c *Checker) CheckAll(ctx context.Context, docs []Document, progress func(Result)) ([]Result, error) {
	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		report, err := c.Check(ctx, doc)
		res := Result{Source: doc.Source, Report: report, Err: err}
		if err != nil {
			common.LogError(err, "Document check failed", common.Fields{"source": doc.Source})
		}
		results = append(results, res)
		if progress != nil {
			progress(res)
		}
	}
	return results, nil
}
