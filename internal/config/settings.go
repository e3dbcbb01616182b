package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/extract"
)

// Settings is the typed application configuration.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
	Report  ReportSettings  `mapstructure:"report" yaml:"report"`
	Rules   RuleSettings    `mapstructure:"rules" yaml:"rules"`
	Extract ExtractSettings `mapstructure:"extract" yaml:"extract"`
}

// LoggingSettings controls the slog handler.
type LoggingSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ReportSettings controls the case note and terminal colours.
type ReportSettings struct {
	Colors   ColorSettings `mapstructure:"colors" yaml:"colors"`
	Reviewer string        `mapstructure:"reviewer" yaml:"reviewer"`
	Channel  string        `mapstructure:"channel" yaml:"channel"`
}

// ColorSettings holds lipgloss colour strings (hex or ANSI numbers).
type ColorSettings struct {
	Pass      string `mapstructure:"pass" yaml:"pass"`
	Fail      string `mapstructure:"fail" yaml:"fail"`
	Neutral   string `mapstructure:"neutral" yaml:"neutral"`
	Missing   string `mapstructure:"missing" yaml:"missing"`
	Highlight string `mapstructure:"highlight" yaml:"highlight"`
}

// RuleSettings tunes the checklist thresholds.
type RuleSettings struct {
	DeclarationMarker string `mapstructure:"declaration_marker" yaml:"declaration_marker"`
	RecurrenceMin     int    `mapstructure:"recurrence_min" yaml:"recurrence_min"`
	DeclarationCount  int    `mapstructure:"declaration_count" yaml:"declaration_count"`
}

// ExtractSettings extends the built-in schemas.
type ExtractSettings struct {
	LabeledExtra []extract.FieldSpec `mapstructure:"labeled_extra" yaml:"labeled_extra,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
		Report: ReportSettings{
			Reviewer: "martin",
			Channel:  "non-F2F",
			Colors: ColorSettings{
				Pass:      "#4ECDC4",
				Fail:      "#FF6B6B",
				Neutral:   "#FFE66D",
				Missing:   "#666666",
				Highlight: "#FFE66D",
			},
		},
		Rules: RuleSettings{
			RecurrenceMin:     3,
			DeclarationMarker: "FALSE -",
			DeclarationCount:  4,
		},
	}
}

// SetDefaults registers the built-in settings with viper so that config files
// and KYCHECK_* environment variables only need to name what they change.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("report.reviewer", d.Report.Reviewer)
	v.SetDefault("report.channel", d.Report.Channel)
	v.SetDefault("report.colors.pass", d.Report.Colors.Pass)
	v.SetDefault("report.colors.fail", d.Report.Colors.Fail)
	v.SetDefault("report.colors.neutral", d.Report.Colors.Neutral)
	v.SetDefault("report.colors.missing", d.Report.Colors.Missing)
	v.SetDefault("report.colors.highlight", d.Report.Colors.Highlight)
	v.SetDefault("rules.recurrence_min", d.Rules.RecurrenceMin)
	v.SetDefault("rules.declaration_marker", d.Rules.DeclarationMarker)
	v.SetDefault("rules.declaration_count", d.Rules.DeclarationCount)
}

// Load reads settings from viper on top of the defaults and validates them.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	s := Default()
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values the checker cannot work with.
func (s Settings) Validate() error {
	if _, err := common.ParseLevel(s.Logging.Level); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.Logging.Format)
	}

	if s.Rules.RecurrenceMin < 1 {
		return fmt.Errorf("%w: rules.recurrence_min must be at least 1", common.ErrInvalidConfig)
	}
	if s.Rules.DeclarationCount < 0 {
		return fmt.Errorf("%w: rules.declaration_count must not be negative", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(s.Rules.DeclarationMarker) == "" {
		return fmt.Errorf("%w: rules.declaration_marker is empty", common.ErrInvalidConfig)
	}

	if _, err := extract.LabeledSchema().WithExtra(s.Extract.LabeledExtra...); err != nil {
		return err
	}
	return nil
}
