package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/kycheck/internal/cli"
)

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the settings kycheck will use, after merging the built-in defaults,
the config file and KYCHECK_* environment variables. The output is valid
config.yaml content.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		cmd.PrintErrln(cli.SubtleStyle.Render("# from " + used))
	}

	return writeStructured(out, settings, outputYAML)
}
