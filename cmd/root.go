// Package cmd implements the CLI commands for navpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "navpipe",
	Short: "navpipe — recover the navigation structure of web pages",
	Long: `navpipe finds the navigation of a web page (table of contents, sidebar,
menu) and outputs it as a nested outline in JSON, Markdown, HTML, PDF, or
plain text.

Usage:
  navpipe detect <url> [flags]
  navpipe serve [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log detection decisions")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns the logger shared by all commands. Logs go to stderr so
// stdout stays clean for rendered output.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
