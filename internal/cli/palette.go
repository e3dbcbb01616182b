package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/kycheck/internal/config"
	"github.com/Veraticus/kycheck/internal/model"
)

// Palette holds the styles used to render a report. It is built per run from
// settings so nothing about colouring lives in package state.
type Palette struct {
	Pass      lipgloss.Style
	Fail      lipgloss.Style
	Neutral   lipgloss.Style
	Missing   lipgloss.Style
	Highlight lipgloss.Style
	Title     lipgloss.Style
}

// NewPalette builds a palette from configured colours. Empty colours leave the
// text unstyled.
func NewPalette(c config.ColorSettings) Palette {
	fg := func(color string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if color != "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		return s
	}

	return Palette{
		Pass:      fg(c.Pass),
		Fail:      fg(c.Fail),
		Neutral:   fg(c.Neutral),
		Missing:   fg(c.Missing),
		Highlight: fg(c.Highlight),
		Title:     TitleStyle.UnsetMargins(),
	}
}

// PlainPalette renders everything without colour.
func PlainPalette() Palette {
	return NewPalette(config.ColorSettings{})
}

// ForOutcome returns the style for a verdict outcome.
func (p Palette) ForOutcome(o model.Outcome) lipgloss.Style {
	switch o {
	case model.OutcomePass:
		return p.Pass
	case model.OutcomeFail:
		return p.Fail
	case model.OutcomeNotApplicable:
		return p.Neutral
	default:
		return p.Missing
	}
}

// Icon returns the marker printed before a verdict.
func Icon(o model.Outcome) string {
	switch o {
	case model.OutcomePass:
		return PassIcon
	case model.OutcomeFail:
		return FailIcon
	case model.OutcomeNotApplicable:
		return NAIcon
	default:
		return MissingIcon
	}
}
