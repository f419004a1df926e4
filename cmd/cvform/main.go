package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-cvform/internal/config"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	schemasDir  string
	openapiPath string
	allowRemote bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cvform",
	Short: "Fill in and preview a CV built from form sections",
	Long: `cvform drives a CV builder: general information, educational experience
and practical experience sections, each with a draft that is submitted into
the CV.

Sections come from the built-in schema, a directory of schema files
(--schemas) or the component schemas of an OpenAPI document (--openapi).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		zc := zap.NewProductionConfig()
		if cfg.Verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&schemasDir, "schemas", "", "directory of section schema files")
	flags.StringVar(&openapiPath, "openapi", "", "OpenAPI document path or URL to derive sections from")
	flags.BoolVar(&allowRemote, "allow-remote", false, "allow loading --openapi over http(s)")

	rootCmd.AddCommand(sectionsCmd, fillCmd, renderCmd, serveCmd, configCmd)
}

// resolveConfig loads --config over the defaults, then applies explicitly
// set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	loaded := config.Default()
	if configPath != "" {
		var err error
		if loaded, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		loaded.Verbose = verbose
	}
	if flags.Changed("schemas") {
		loaded.Schemas = schemasDir
	}
	if flags.Changed("openapi") {
		loaded.OpenAPI = openapiPath
	}
	if flags.Changed("allow-remote") {
		loaded.AllowRemote = allowRemote
	}
	return loaded, loaded.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
