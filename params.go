package main

import (
	"strconv"

	"github.com/qa-harness/e2e-harness/framework"

	"github.com/spf13/cobra"
)

type commandParams struct {
	configFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	reportFile string
	seed       int64
	noColor    bool
}

func (c *commandParams) addFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&c.configFile, "config", "c", "", "configuration file (.properties, .env, .yaml)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "show debug output of failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output of all tests")
	fs.StringVar(&c.reportFile, "report", "", "write a YAML report of the run to this file")
	fs.Int64Var(&c.seed, "seed", 0, "seed for generated test data (random if 0)")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
}

// rerunCommand is the command line printed after a failure, to run that test alone.
func (c *commandParams) rerunCommand(suite string) []string {
	command := []string{rootCmd.Name(), suite}
	if c.configFile != "" {
		command = append(command, "--config", c.configFile)
	}
	if c.seed != 0 {
		command = append(command, "--seed", strconv.FormatInt(c.seed, 10))
	}
	return command
}
