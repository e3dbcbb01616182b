package extract

import (
	"strings"

	"github.com/Veraticus/kycheck/internal/model"
)

// labeledThreshold is how many labeled-form labels must appear before a
// document is treated as labeled text.
const labeledThreshold = 2

// Detect guesses the format of a document. Documents carrying at least two of
// the labeled form's labels are labeled; everything else is read as a
// tab-delimited dump.
func Detect(document string) model.Format {
	hits := 0
	for _, f := range LabeledSchema().Fields {
		if strings.Contains(document, f.Label) {
			hits++
			if hits >= labeledThreshold {
				return model.FormatLabeled
			}
		}
	}
	return model.FormatTabular
}

// ParseFormat maps a user-supplied format name to a format. "auto" and the
// empty string detect the format from the document.
func ParseFormat(name, document string) (model.Format, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Detect(document), true
	case string(model.FormatLabeled):
		return model.FormatLabeled, true
	case string(model.FormatTabular):
		return model.FormatTabular, true
	default:
		return "", false
	}
}
