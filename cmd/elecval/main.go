// Package main implements the elecval CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/engine"
	"github.com/dshills/elecval/pkg/export"
)

const version = "0.1.0"

var (
	verbose    bool
	jsonLogs   bool
	configPath string
	outputDir  string
	outFormat  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("elecval failed")
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "elecval",
	Short:         "Validate and size low-voltage DC/AC electrical designs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		if jsonLogs {
			log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		} else {
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				With().Timestamp().Logger()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON instead of console format")

	validateCmd.Flags().StringVar(&configPath, "config", "", "path to an engine config YAML file (optional)")
	validateCmd.Flags().StringVar(&outputDir, "output", ".", "directory for exported reports")
	validateCmd.Flags().StringVar(&outFormat, "format", "summary", "output format: summary, json, svg, or all")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <design.yaml>",
	Short: "Run the rule engine over a design and report its score and issues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func runValidate(designPath string) error {
	log.Debug().Str("path", designPath).Msg("loading design")

	d, err := design.LoadDesign(designPath)
	if err != nil {
		return fmt.Errorf("loading design: %w", err)
	}

	cfg := design.EngineConfig{}
	if configPath != "" {
		loaded, err := design.LoadEngineConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading engine config: %w", err)
		}
		cfg = *loaded
	}

	start := time.Now()
	result, err := engine.Validate(d, cfg)
	if err != nil {
		return fmt.Errorf("validating design: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("validation complete")

	switch outFormat {
	case "summary":
		printSummary(result)
	case "json", "svg", "all":
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		report := &export.Report{Design: d, Result: result}
		if outFormat == "json" || outFormat == "all" {
			if err := exportJSON(report); err != nil {
				return err
			}
		}
		if outFormat == "svg" || outFormat == "all" {
			if err := exportSVG(report); err != nil {
				return err
			}
		}
		printSummary(result)
	default:
		return fmt.Errorf("unknown format %q, must be one of: summary, json, svg, all", outFormat)
	}

	if !result.Valid {
		os.Exit(2)
	}
	return nil
}

func exportJSON(r *export.Report) error {
	path := outputDir + "/elecval-report.json"
	log.Debug().Str("path", path).Msg("exporting JSON")
	if err := export.SaveJSONToFile(r, path); err != nil {
		return fmt.Errorf("exporting JSON: %w", err)
	}
	return nil
}

func exportSVG(r *export.Report) error {
	path := outputDir + "/elecval-diagram.svg"
	log.Debug().Str("path", path).Msg("exporting SVG")
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Electrical design (score %.1f)", r.Result.Score)
	if err := export.SaveSVGToFile(r, path, opts); err != nil {
		return fmt.Errorf("exporting SVG: %w", err)
	}
	return nil
}

func printSummary(result *engine.ValidationResult) {
	status := "PASS"
	if !result.Valid {
		status = "FAIL"
	}
	fmt.Printf("%s  score=%.1f  errors=%d  warnings=%d  infos=%d\n",
		status, result.Score, result.Metrics.Errors, result.Metrics.Warnings, result.Metrics.Infos)

	for _, iss := range result.Issues {
		fmt.Printf("  [%s/%s] %s: %s\n", iss.Severity, iss.Category, iss.Rule, iss.Message)
	}
}
