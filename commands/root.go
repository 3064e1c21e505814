package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cratesift/cratesift/classify"
	"github.com/cratesift/cratesift/scan"
)

var (
	verbose  bool
	format   string
	workers  int
	excludes []string
)

// RootCmd is the root command for cratesift
var RootCmd = &cobra.Command{
	Use:   "cratesift [paths...]",
	Short: "cratesift - triviality filter for extracted crates",
	Long: `cratesift scans paths containing extracted crate files and reports
which crates implement only trivial code (hello-world binaries, libraries
with no public surface), so large registry corpora can be filtered before
deeper analysis.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also display non-trivial crates")
	RootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	RootCmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of concurrent package classifications")
	RootCmd.Flags().StringSliceVarP(&excludes, "exclude", "x", nil, "Path patterns to skip while searching for packages")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Format != "text" && cfg.Format != "json" {
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}

	dialect := classify.Rust()
	dialect.Greeting = cfg.Greeting

	scanner, err := scan.New(scan.Options{
		Dialect:       dialect,
		ManifestNames: cfg.Manifests,
		Exclude:       cfg.Exclude,
		Workers:       cfg.Workers,
	})
	if err != nil {
		return err
	}

	report, err := scanner.Run(args)
	if err != nil {
		return err
	}

	if cfg.Format == "json" {
		return report.WriteJSON(os.Stdout)
	}
	report.WriteText(os.Stdout, cfg.Verbose)
	return nil
}

// Config holds the effective scan settings after merging the optional
// cratesift.yml with command-line flags.
type Config struct {
	Verbose   bool
	Format    string
	Workers   int
	Exclude   []string
	Manifests []string
	Greeting  string
}

// loadConfig reads cratesift.yml from the working directory when
// present. Flags override file values.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetConfigName("cratesift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("greeting", classify.DefaultGreeting)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading cratesift.yml: %w", err)
		}
	}

	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("workers", cmd.Flags().Lookup("workers")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("exclude", cmd.Flags().Lookup("exclude")); err != nil {
		return nil, err
	}

	return &Config{
		Verbose:   v.GetBool("verbose"),
		Format:    v.GetString("format"),
		Workers:   v.GetInt("workers"),
		Exclude:   v.GetStringSlice("exclude"),
		Manifests: v.GetStringSlice("manifests"),
		Greeting:  v.GetString("greeting"),
	}, nil
}
