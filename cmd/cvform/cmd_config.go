package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cvform/internal/config"
)

var (
	configFormat string
	configOutput string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or scaffold the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a config file holding the defaults",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after flags and --config",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().StringVar(&configFormat, "format", string(config.FormatYAML), "yaml or toml")
	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "output file (stdout if empty)")
	configShowCmd.Flags().StringVar(&configFormat, "format", string(config.FormatYAML), "yaml or toml")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	data, err := config.Encode(config.Default(), config.Format(configFormat))
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), configOutput, data)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := config.Encode(cfg, config.Format(configFormat))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
