// pipette runs the demonstration pipelines and prints their results.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/KasperOmsK/pipette/internal/config"
	"github.com/KasperOmsK/pipette/internal/dataset"
	"github.com/KasperOmsK/pipette/internal/logging"
	"github.com/KasperOmsK/pipette/internal/scenario"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("pipette", pflag.ContinueOnError)
	configFile := fs.String("config", "", "YAML or JSON config file")
	envFile := fs.String("env-file", "", ".env file with PIPETTE_ variables")
	fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, disabled)")
	fs.String("dataset", "", "YAML or JSON dataset file (default: built-in records)")
	fs.Int("limit", 10, "Number of top values to keep")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(
		config.WithConfigFile(*configFile),
		config.WithEnvFile(*envFile),
		config.WithFlags(fs),
	)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Logging, "pipette")

	items := dataset.Default()
	if cfg.Dataset.Path != "" {
		if items, err = dataset.Load(cfg.Dataset.Path); err != nil {
			return err
		}
	}
	log.Info().Int("items", len(items)).Str("source", source(cfg.Dataset.Path)).Msg("dataset ready")

	report, err := scenario.Run(log, items, cfg.Dataset.Limit)
	if err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}

	fmt.Fprintln(stdout, report.Even)
	if top, ok := report.Top.Get(); ok {
		fmt.Fprintln(stdout, top)
	} else {
		fmt.Fprintln(stdout, report.Top)
	}
	fmt.Fprintln(stdout, report.Flat)

	log.Info().Msg("done")
	return nil
}

func source(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
