// Package model defines the core domain models used throughout the application.
package model

import "sort"

// Format identifies the layout of an onboarding document.
type Format string

// Document format constants.
const (
	FormatLabeled Format = "labeled"
	FormatTabular Format = "tabular"
)

// FieldState distinguishes a field that was never seen from one seen with a blank value.
type FieldState int

// Field state constants.
const (
	FieldAbsent FieldState = iota
	FieldEmpty
	FieldPresent
)

func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldEmpty:
		return "empty"
	default:
		return "absent"
	}
}

// Field is the result of looking up a canonical name in a FieldRecord.
type Field struct {
	Name  string
	Value string
	State FieldState
}

// Found reports whether the field has a non-empty value.
func (f Field) Found() bool {
	return f.State == FieldPresent
}

// FieldRecord is the normalized view of one document. It is built once by the
// extractor and is read-only afterwards.
type FieldRecord struct {
	values  map[string]string
	counts  map[string]int
	markers map[string]bool
	format  Format
}

// NewFieldRecord builds a record from extracted values, occurrence counts and marker flags.
// The maps are copied so later changes by the caller do not leak into the record.
func NewFieldRecord(format Format, values map[string]string, counts map[string]int, markers map[string]bool) FieldRecord {
	r := FieldRecord{
		format:  format,
		values:  make(map[string]string, len(values)),
		counts:  make(map[string]int, len(counts)),
		markers: make(map[string]bool, len(markers)),
	}
	for k, v := range values {
		r.values[k] = v
	}
	for k, v := range counts {
		r.counts[k] = v
	}
	for k, v := range markers {
		r.markers[k] = v
	}
	return r
}

// Format returns the layout the record was extracted from.
func (r FieldRecord) Format() Format {
	return r.format
}

// Lookup returns the field with its three-way state.
func (r FieldRecord) Lookup(name string) Field {
	v, ok := r.values[name]
	switch {
	case !ok:
		return Field{Name: name, State: FieldAbsent}
	case v == "":
		return Field{Name: name, State: FieldEmpty}
	default:
		return Field{Name: name, Value: v, State: FieldPresent}
	}
}

// Value returns the field value, or an empty string when it is absent or blank.
func (r FieldRecord) Value(name string) string {
	return r.values[name]
}

// FirstOf returns the first of the given names that has a value.
func (r FieldRecord) FirstOf(names ...string) Field {
	for _, name := range names {
		if f := r.Lookup(name); f.Found() {
			return f
		}
	}
	if len(names) == 0 {
		return Field{State: FieldAbsent}
	}
	return r.Lookup(names[0])
}

// Count returns how many times the value of a designated field recurs in the document.
// Fields that were not designated for counting report zero.
func (r FieldRecord) Count(name string) int {
	return r.counts[name]
}

// HasMarker reports whether the named marker literal was found in the document.
func (r FieldRecord) HasMarker(name string) bool {
	return r.markers[name]
}

// Names returns the extracted field names in sorted order.
func (r FieldRecord) Names() []string {
	names := make([]string, 0, len(r.values))
	for k := range r.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fields the extractor recorded, blank ones included.
func (r FieldRecord) Len() int {
	return len(r.values)
}

// Values returns a copy of the raw name to value mapping.
func (r FieldRecord) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Counts returns a copy of the occurrence counts.
func (r FieldRecord) Counts() map[string]int {
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}
