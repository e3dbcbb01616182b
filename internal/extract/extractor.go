package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/kycheck/internal/model"
)

// Extractor extracts field records for one schema.
type Extractor struct {
	compiled map[string]*regexp.Regexp
	schema   Schema
}

// New creates an extractor, compiling the schema's patterns up front.
func New(schema Schema) (*Extractor, error) {
	e := &Extractor{
		schema:   schema,
		compiled: make(map[string]*regexp.Regexp),
	}

	if schema.Format == model.FormatLabeled {
		for _, f := range schema.Fields {
			re, err := regexp.Compile(f.expression())
			if err != nil {
				return nil, fmt.Errorf("compile pattern for %s: %w", f.Name, err)
			}
			e.compiled[f.Name] = re
		}
	}

	return e, nil
}

// Extract is a convenience wrapper that builds an extractor and runs it once.
func Extract(document string, schema Schema) (model.FieldRecord, error) {
	e, err := New(schema)
	if err != nil {
		return model.FieldRecord{}, err
	}
	return e.Extract(document), nil
}

// Schema returns the schema the extractor was built with.
func (e *Extractor) Schema() Schema {
	return e.schema
}

// Extract builds the field record for a document. Missing fields never cause an
// error; they are simply absent from the record.
func (e *Extractor) Extract(document string) model.FieldRecord {
	var values map[string]string
	switch e.schema.Format {
	case model.FormatLabeled:
		values = e.labeled(document)
	default:
		values = ParseTabular(document)
	}

	counts := make(map[string]int, len(e.schema.Counted))
	for _, name := range e.schema.Counted {
		counts[name] = countOccurrences(document, values[name], e.schema.Counting)
	}

	markers := make(map[string]bool, len(e.schema.Markers))
	for name, literal := range e.schema.Markers {
		markers[name] = strings.Contains(document, literal)
	}

	return model.NewFieldRecord(e.schema.Format, values, counts, markers)
}

// labeled finds each schema field by its label and captures the value after it.
func (e *Extractor) labeled(document string) map[string]string {
	values := make(map[string]string, len(e.schema.Fields))
	for _, f := range e.schema.Fields {
		m := e.compiled[f.Name].FindStringSubmatch(document)
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if f.Truncate {
			v, _, _ = strings.Cut(v, "\t")
			v = strings.TrimSpace(v)
		}
		values[f.Name] = v
	}
	return values
}

// ParseTabular splits a tab-delimited dump into key/value pairs. Each line is
// split on tabs into non-empty trimmed segments that pair up as key, value,
// key, value. A trailing key without a value maps to the empty string, and a
// key seen again on a later line overwrites the earlier value.
func ParseTabular(document string) map[string]string {
	values := make(map[string]string)
	for _, line := range splitLines(document) {
		parts := make([]string, 0, 8)
		for _, p := range strings.Split(line, "\t") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		for i := 0; i < len(parts); i += 2 {
			value := ""
			if i+1 < len(parts) {
				value = parts[i+1]
			}
			values[parts[i]] = value
		}
	}
	return values
}

func splitLines(document string) []string {
	return strings.FieldsFunc(document, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

func countOccurrences(document, value string, counting Counting) int {
	if value == "" {
		return 0
	}
	if counting == CountTokens {
		n := 0
		for _, tok := range strings.Fields(document) {
			if tok == value {
				n++
			}
		}
		return n
	}
	return strings.Count(document, value)
}
