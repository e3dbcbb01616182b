package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/kycheck/internal/check"
	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/config"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// loadSettings reads the effective settings from the global viper instance.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, common.NewUserError("Invalid configuration: "+err.Error(), err)
	}
	return s, nil
}

// newChecker builds a checker from settings.
func newChecker(s config.Settings) (*check.Checker, error) {
	c, err := check.New(check.OptionsFrom(s))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare checker: %w", err)
	}
	return c, nil
}

// validateOutput rejects unknown --output values before any work is done.
func validateOutput(output string, allowed ...string) error {
	for _, a := range allowed {
		if output == a {
			return nil
		}
	}
	return common.NewUserError(
		fmt.Sprintf("Unknown output %q, expected one of %v", output, allowed),
		fmt.Errorf("%w: output %q", common.ErrInvalidConfig, output),
	)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, v any, output string) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: output %q", common.ErrInvalidConfig, output)
	}
}
