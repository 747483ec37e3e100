/*
main.go - Command-line report generator

PURPOSE:
  Reads the permit YAML and travel CSV, assesses them and writes the
  markdown report to <out>/<YYYY-MM-DD>_reckonable_residence_output.md.

CONFIGURATION:
  Defaults, then the YAML file named by RECKONER_CONFIG, then RECKONER_*
  env vars, then these flags:

  -permits   Permit YAML file
  -travels   Travel CSV file
  -out       Output directory
  -today     Pretend today is this YYYY-MM-DD date
  -goal      Residence days required
  -excuse    Absence days allowed per year
  -stdout    Print the report instead of writing a file
  -report-id Stamp the report with a random ID (off, so that equal inputs
             give byte-identical reports)

EXIT CODES:
  0  report written
  1  unexpected failure
  2  bad input or configuration

SEE ALSO:
  - config/loader.go: Layering of defaults, file and env
  - loader/: Input validation rules
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/warp/residence-engine/config"
	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/loader"
	"github.com/warp/residence-engine/logger"
	"github.com/warp/residence-engine/report"
	"github.com/warp/residence-engine/residence"
)

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stdout, time.Now())))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, loader.ErrInvalidInput),
		errors.Is(err, loader.ErrNotFound),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrLoadConfig),
		errors.Is(err, generic.ErrInvalidDate),
		errors.Is(err, flag.ErrHelp):
		logger.Get().Error().Err(err).Msg("cannot generate report")
		return 2
	default:
		logger.Get().Error().Err(err).Msg("report generation failed")
		return 1
	}
}

func run(args []string, stdout io.Writer, now time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("reckoner", flag.ContinueOnError)
	fs.StringVar(&cfg.PermitsPath, "permits", cfg.PermitsPath, "permit YAML file")
	fs.StringVar(&cfg.TravelsPath, "travels", cfg.TravelsPath, "travel CSV file")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	fs.IntVar(&cfg.GoalDays, "goal", cfg.GoalDays, "residence days required")
	fs.IntVar(&cfg.ExcuseDays, "excuse", cfg.ExcuseDays, "absence days allowed per year")
	todayFlag := fs.String("today", "", "evaluate as of this YYYY-MM-DD date")
	toStdout := fs.Bool("stdout", false, "print the report instead of writing a file")
	withID := fs.Bool("report-id", false, "stamp the report with a random ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "reckoner"})
	log := logger.Get()

	today := cfg.Today(now)
	if *todayFlag != "" {
		if today, err = generic.ParseDate(*todayFlag); err != nil {
			return fmt.Errorf("-today: %w", err)
		}
	}

	record, err := loader.LoadRecord(cfg.PermitsPath, cfg.TravelsPath, today)
	if err != nil {
		return err
	}
	assessment := residence.Assess(record, cfg.Policy())
	doc := report.Document{Assessment: assessment, GeneratedOn: today}
	if *withID {
		doc.ReportID = uuid.NewString()
	}
	md := report.Render(doc)

	if *toStdout {
		_, err := io.WriteString(stdout, md)
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutDir, report.FileName(today))
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("days_left", assessment.Raw.DaysLeft.Raw).
		Str("earliest_application", assessment.Raw.EarliestApplication.String()).
		Msg("report written")
	return nil
}
