package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/kycheck/internal/model"
)

// displayRow is one labelled line of the client section.
type displayRow struct {
	label string
	value string
}

// RenderReport writes the terminal rendering of a report: verdicts, the client
// details, the address comparison and the case note.
func RenderReport(w io.Writer, r model.Report, p Palette) error {
	var b strings.Builder

	title := "KYC check"
	if r.Source != "" {
		title += ": " + r.Source
	}
	b.WriteString(p.Title.Render(fmt.Sprintf("%s %s (%s)", ClientIcon, title, r.Format)))
	b.WriteString("\n\n")

	for _, v := range r.Verdicts {
		b.WriteString(VerdictLine(v, r.Verdicts, p))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	d := r.Summary.Display
	for _, row := range []displayRow{
		{"Name", d.Name},
		{"Non-English Name", d.NonEnglishName},
		{"Nationality", d.Nationality},
		{"Date of Birth", d.DateOfBirth},
		{"Occupation", d.Occupation},
		{"Employment Type", d.EmploymentType},
		{"Employment Industry", d.EmploymentIndustry},
		{"Employer Name", d.EmployerName},
	} {
		fmt.Fprintf(&b, "%s\n", p.Highlight.Render(row.label+": "+row.value))
	}
	b.WriteByte('\n')

	if d.IDAddress != "" {
		fmt.Fprintf(&b, "ID Address: %s\n", d.IDAddress)
	}
	fmt.Fprintf(&b, "Residential Address: %s\n", d.ResidentialAddress)
	differ := p.Fail
	if r.Summary.AddressesDiffer {
		differ = p.Pass
	}
	fmt.Fprintf(&b, "Employer Address: %s, addresses differ: %s\n",
		d.EmployerAddress, differ.Render(fmt.Sprintf("%t", r.Summary.AddressesDiffer)))

	fmt.Fprintf(&b, "Designated Bank Name: %s\n", d.BankName)
	fmt.Fprintf(&b, "Designated Bank Number: %s\n", d.BankAccountNo)
	// Email and funding source only exist on labeled forms.
	if d.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", d.Email)
	}
	if d.FundingSource != "" {
		fmt.Fprintf(&b, "Funding Source: %s\n", d.FundingSource)
	}
	fmt.Fprintf(&b, "ID Number: %s\n", d.IDNumber)
	b.WriteByte('\n')

	b.WriteString(NoteLine(r.Summary, p))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// VerdictLine renders one verdict. A verdict backing another rule that passed
// is shown as informational.
func VerdictLine(v model.Verdict, all model.Verdicts, p Palette) string {
	style := p.ForOutcome(v.Outcome)
	result := string(v.Outcome)
	if v.Detail != "" {
		result += " (" + v.Detail + ")"
	}

	suffix := ""
	if v.Backs != "" && !v.Passed() {
		if backed, ok := all.Find(v.Backs); ok && backed.Passed() {
			style = p.Neutral
			suffix = " " + p.Missing.Render("[informational]")
		}
	}

	return fmt.Sprintf("%s %s: %s%s", style.Render(Icon(v.Outcome)), v.Label, style.Render(result), suffix)
}

// NoteLine renders the case note. A leading Good Fund tag is neutral; the rest
// is in the pass colour for medium AML risk and the fail colour otherwise.
func NoteLine(s model.Summary, p Palette) string {
	tags := s.Tags
	var b strings.Builder
	b.WriteString(NoteIcon + " ")

	if len(tags) > 0 && tags[0] == model.GoodFundText {
		b.WriteString(p.Neutral.Render(tags[0]))
		tags = tags[1:]
		if len(tags) > 0 {
			b.WriteString(", ")
		}
	}

	rest := p.Fail
	if s.AMLRisk == model.AMLRiskMedium {
		rest = p.Pass
	}
	b.WriteString(rest.Render(strings.Join(tags, ", ")))
	return b.String()
}
