package main

import (
	"fmt"
	"os"
	"time"

	"github.com/qa-harness/e2e-harness/framework"

	"gopkg.in/yaml.v3"
)

type report struct {
	RunID    string        `yaml:"run_id"`
	Version  string        `yaml:"version"`
	Started  time.Time     `yaml:"started"`
	Duration string        `yaml:"duration"`
	Suites   []suiteReport `yaml:"suites"`
}

type suiteReport struct {
	Name     string          `yaml:"name"`
	Passed   int             `yaml:"passed"`
	Failed   int             `yaml:"failed"`
	Skipped  int             `yaml:"skipped"`
	Failures []failureReport `yaml:"failures,omitempty"`
}

type failureReport struct {
	Test     string   `yaml:"test"`
	Duration string   `yaml:"duration"`
	Errors   []string `yaml:"errors"`
}

func newReport(r *harnessRun) *report {
	return &report{RunID: r.id, Version: version, Started: r.started}
}

func (rep *report) add(suite string, results framework.Results) {
	passed, failed, skipped := results.Counts()
	s := suiteReport{Name: suite, Passed: passed, Failed: failed, Skipped: skipped}
	for _, f := range results.Failures {
		fr := failureReport{Test: f.TestID.String(), Duration: f.Duration.Round(time.Millisecond).String()}
		for _, err := range f.Errors {
			fr.Errors = append(fr.Errors, err.Error())
		}
		s.Failures = append(s.Failures, fr)
	}
	rep.Suites = append(rep.Suites, s)
}

func (rep *report) write(path string) error {
	rep.Duration = time.Since(rep.Started).Round(time.Millisecond).String()
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
