package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/pkg/harness"
)

func newRunCmd(a *app) *cobra.Command {
	var suitePath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenario suite against the application",
		Long: `Run launches Chrome, drives every scenario against APP_URL (default
http://localhost:3000) and prints one line per scenario.

Exit status is 0 when every scenario passed, 1 when the application failed
an assertion and 2 when the harness could not exercise the application.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), suitePath)
		},
	}

	f := cmd.Flags()
	f.StringVar(&suitePath, "suite", "", "YAML scenario suite (default: the built-in suite)")
	f.String("url", "", "base URL of the application (overrides APP_URL)")
	f.Bool("headless", true, "run Chrome without a window")
	f.Duration("wait-timeout", 0, "how long to wait for a result to render")
	f.Duration("pacing", 0, "pause after each input and click, for watching a headed run")
	f.String("screenshot-dir", "", "directory for evidence screenshots")
	bindFlags(a.v, f, map[string]string{
		"app_url":          "url",
		"browser.headless": "headless",
		"wait_timeout":     "wait-timeout",
		"pacing":           "pacing",
		"screenshot_dir":   "screenshot-dir",
	})
	return cmd
}

func (a *app) run(ctx context.Context, out io.Writer, suitePath string) error {
	cfg, err := harness.NewConfigFromViper(a.v)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	scenarios := harness.CanonicalSuite()
	if suitePath != "" {
		if scenarios, err = harness.LoadSuiteFile(suitePath); err != nil {
			return &exitError{code: 2, err: err}
		}
	}

	a.logger.Info("Starting run.",
		zap.String("url", cfg.AppURL),
		zap.Int("scenarios", len(scenarios)),
		zap.Bool("headless", cfg.Browser.Headless))

	var report harness.Report
	err = a.openPage(cfg.Browser, a.logger.Named("session"), func(page harness.Page) error {
		opts := append(cfg.RunnerOptions(), harness.WithLogger(a.logger.Named("runner")))
		runner, err := harness.NewRunner(page, cfg.AppURL, opts...)
		if err != nil {
			return err
		}
		report = runner.RunAll(ctx, scenarios)
		return nil
	})
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	printReport(out, report)
	if code := report.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func printReport(w io.Writer, report harness.Report) {
	fmt.Fprintf(w, "\nRun %s\n", report.RunID)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 4+len(report.RunID)))
	for _, res := range report.Results {
		fmt.Fprintf(w, "%-6s %s (%v)\n", res.Verdict, res.Scenario, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			if res.Verdict == harness.Error {
				fmt.Fprintf(w, "       at %s: %v\n", res.State, res.Err)
			} else {
				fmt.Fprintf(w, "       %v\n", res.Err)
			}
		}
	}
	fmt.Fprintf(w, "\nPassed: %d  Failed: %d  Errors: %d\n",
		report.Count(harness.Pass), report.Count(harness.Fail), report.Count(harness.Error))
}
