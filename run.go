package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/qa-harness/e2e-harness/apitests"
	"github.com/qa-harness/e2e-harness/await"
	"github.com/qa-harness/e2e-harness/browser"
	"github.com/qa-harness/e2e-harness/config"
	"github.com/qa-harness/e2e-harness/framework"
	"github.com/qa-harness/e2e-harness/logging"
	"github.com/qa-harness/e2e-harness/petstore"
	"github.com/qa-harness/e2e-harness/uitests"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type suite struct {
	name  string
	short string
	run   func(r *harnessRun, testLogger framework.TestLogger) framework.Results
}

var suites = []suite{
	{name: "api", short: "Run the pet store API suite", run: runAPISuite},
	{name: "ui", short: "Run the careers website browser suite", run: runUISuite},
}

func init() {
	for _, s := range suites {
		selected := []suite{s}
		rootCmd.AddCommand(&cobra.Command{
			Use:   s.name,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return execute(cmd, selected)
			},
		})
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run every suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, suites)
		},
	})
}

// harnessRun is one invocation of the harness.
type harnessRun struct {
	id      string
	started time.Time
	config  config.Config
	logger  *slog.Logger
	out     io.Writer
}

func execute(cmd *cobra.Command, selected []suite) error {
	if params.noColor {
		color.NoColor = true
	}
	cfg, err := config.Load(params.configFile)
	if err != nil {
		return err
	}

	r := &harnessRun{
		id:      uuid.NewString(),
		started: time.Now(),
		config:  cfg,
		out:     cmd.OutOrStdout(),
	}
	r.logger = logging.New(logging.Options{
		ConsoleLevel: cfg.Log.Level,
		File:         cfg.Log.File,
		NoColor:      params.noColor,
		RunID:        r.id,
		Console:      cmd.ErrOrStderr(),
	})
	defer func() { _ = logging.Close(r.logger) }()

	fmt.Fprintln(r.out)
	framework.PrintFilterDescription(r.out, params.filters)

	rep := newReport(r)
	failed := 0
	for _, s := range selected {
		r.logger.Info("Running test suite", "suite", s.name)
		fmt.Fprintf(r.out, "Running %s test suite\n", s.name)
		testLogger := framework.ConsoleTestLogger{
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
			RerunCommand:         params.rerunCommand(s.name),
			Out:                  r.out,
		}
		results := s.run(r, testLogger)

		fmt.Fprintln(r.out)
		framework.PrintResults(r.out, results)
		rep.add(s.name, results)
		failed += len(results.Failures)
	}

	if params.reportFile != "" {
		if err := rep.write(params.reportFile); err != nil {
			return err
		}
		r.logger.Info("Report written", "file", params.reportFile)
	}
	r.logger.Info("Test run finished", "failed", failed, "duration", time.Since(r.started).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d tests failed", failed)
	}
	return nil
}

func runAPISuite(r *harnessRun, testLogger framework.TestLogger) framework.Results {
	seed := params.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r.logger.Info("Pet store API", "base_url", r.config.API.BaseURL, "api_key", r.config.API.Key, "seed", seed)

	client := petstore.NewClient(petstore.ClientOptions{
		BaseURL:        r.config.API.BaseURL,
		APIKey:         r.config.API.Key,
		RequestTimeout: r.config.API.RequestTimeout,
		Retries:        r.config.API.Retries,
		Logger:         logging.PrintfAdapter{Logger: r.logger, Level: slog.LevelDebug},
	})
	options := apitests.Options{
		Client:    client,
		Generator: petstore.NewGenerator(seed),
		Await: await.Config{
			Timeout:      r.config.Poll.Timeout,
			Interval:     r.config.Poll.Interval,
			IgnoreErrors: true,
		},
	}
	return apitests.RunTestSuite(options, params.filters.AsFilter, testLogger)
}

func runUISuite(r *harnessRun, testLogger framework.TestLogger) framework.Results {
	r.logger.Info("Careers website", "base_url", r.config.BaseURL, "browser", r.config.Browser,
		"headless", r.config.Headless, "webdriver", r.config.WebDriverURL)

	options := uitests.Options{
		Factory: browser.NewFactory(r.config, r.logger),
		Config:  r.config,
		Screenshots: &browser.Screenshots{
			Dir:    r.config.ScreenshotPath,
			Logger: r.logger,
		},
		Logger: r.logger,
	}
	return uitests.RunTestSuite(options, params.filters.AsFilter, testLogger)
}
