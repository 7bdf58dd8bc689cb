package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"recurrence/internal/model"
)

var (
	version = "dev"     // override with -X main.version=...
	commit  = "unknown" // override with -X main.commit=...
	date    = ""        // override with -X main.date=...
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printErr("%v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the CLI contract's process exit status:
// 0 success, 2 usage/input error, 3 a limit or unbounded-safety violation.
func exitCode(err error) int {
	var ee *model.EngineError
	if errors.As(err, &ee) {
		switch ee.Kind {
		case model.KindLimitExceeded, model.KindUnsafeUnboundedRule:
			return 3
		default:
			return 2
		}
	}
	return 2
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "recurrence",
		Short:        "An RFC 5545 recurrence engine: expand, lint, and explain RRULEs",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path")
	cmd.PersistentFlags().StringP("format", "f", "", "Output format: json or text (overrides config)")

	cmd.AddCommand(
		newExpandCmd(),
		newLintCmd(),
		newExplainCmd(),
		newConfigCmd(),
		newTimezoneCmd(),
		newVersionCmd(),
	)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			if strings.TrimSpace(date) == "" {
				fmt.Printf("recurrence %s\n", version)
			} else {
				fmt.Printf("recurrence %s (%s) built %s\n", version, commit, date)
			}
		},
	}
}

func printOK(format string, a ...interface{}) {
	fmt.Printf("✅ %s", fmt.Sprintf(format, a...))
}

func printErr(format string, a ...interface{}) {
	fmt.Printf("❌ %s", fmt.Sprintf(format, a...))
}
