// Command mvgrnctl is the command-line entry point for quantitative CTL
// model checking over multi-valued gene-regulatory networks: spec.md
// names the CLI and pretty-printer as external collaborators, so this
// package only wires internal/orchestrator to a terminal. The command
// tree, logger setup, and --verbose flag are grounded on
// _examples/theRebelliousNerd-codenerd/cmd/nerd/main.go's rootCmd/
// PersistentPreRunE pattern; the per-run correlation ID follows the same
// repo's use of github.com/google/uuid for request/session identifiers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/orchestrator"
)

var (
	verbose   bool
	format    string
	inputPath string
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mvgrnctl",
	Short: "Quantitative CTL model checking over multi-valued gene-regulatory networks",
	Long: `mvgrnctl computes, for every reachable state of a multi-valued gene-regulatory
network, a real-valued satisfaction degree in [-1, +1] for a CTL formula with
numeric atomic propositions, and reports the worst, best, and mean degree
over the network's initial states.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "" // the run's log lines are ordered, a timestamp column adds noise
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return logger.Sync()
		}
		return nil
	},
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug-level) logging")
	rootCmd.Flags().StringVar(&format, "format", "text", `Output format: "text" or "markdown"`)
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the input JSON document (default: stdin)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	runID := uuid.New()
	log := logger.With(zap.String("run_id", runID.String()))

	var r *os.File
	if inputPath == "" || inputPath == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		defer f.Close()
		r = f
	}

	result, err := orchestrator.Run(context.Background(), r, log)
	if err != nil {
		return err
	}

	switch format {
	case "markdown":
		fmt.Println(result.Summary.Markdown())
	default:
		fmt.Println(result.Summary.Text())
	}
	return nil
}

// exitCodeFor maps the error taxonomy of spec.md §7 to a process exit
// code: success is 0, every fatal error kind is a distinct non-zero code
// so callers can distinguish input problems from internal bugs.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrMalformedInput):
		return 1
	case errors.Is(err, errs.ErrMalformedNetwork):
		return 2
	case errors.Is(err, errs.ErrMalformedFormula):
		return 3
	case errors.Is(err, errs.ErrInvalidOperator):
		return 4
	case errors.Is(err, errs.ErrInternalInvariant):
		return 5
	default:
		return 1
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}
