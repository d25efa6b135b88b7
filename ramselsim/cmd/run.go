package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/digisim/datarecording"
	"github.com/sarchlab/digisim/scenario"
	"github.com/sarchlab/digisim/tracing"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	*RootOptions

	Record        string
	DumpState     bool
	MaxIterations int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print the data bus after every step.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Record, "record", "",
		"record committed words into this SQLite database")
	cmd.Flags().BoolVar(&opts.DumpState, "dump-state", false,
		"print the final state of the RAM as JSON")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0,
		"settling iterations allowed per step (0 for the default)")

	return cmd
}

func runScenario(out io.Writer, path string, opts *RunOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := scenario.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	runner, err := scenario.NewRunner(s, opts.MaxIterations)
	if err != nil {
		return err
	}

	runner.AcceptHook(tracing.NewLogHook(
		logrus.WithField("scenario", path)))

	var commits *tracing.CommitRecorder
	if opts.Record != "" {
		w := datarecording.NewSQLiteWriter(
			strings.TrimSuffix(opts.Record, ".sqlite3"))
		if _, err := os.Stat(w.FileName()); err == nil {
			return fmt.Errorf("recording database %s already exists",
				w.FileName())
		}

		w.Init()
		defer w.Close()

		commits = tracing.NewCommitRecorder(w)
		runner.AcceptHook(commits)
	}

	results, runErr := runner.Run()
	for _, res := range results {
		printResult(out, res)
	}

	if runErr != nil && !errors.Is(runErr, scenario.ErrExpectationFailed) {
		return runErr
	}

	fmt.Fprintf(out, "%d steps, %d failed, %d words in use",
		len(results), numFailed(results),
		runner.RAM().Snapshot().TrimmedLen())
	if commits != nil {
		fmt.Fprintf(out, ", %d commits recorded", commits.NumRecorded())
	}
	fmt.Fprintln(out)

	if opts.DumpState {
		if err := dumpState(out, runner); err != nil {
			return err
		}
	}

	return runErr
}

func printResult(out io.Writer, res scenario.StepResult) {
	fmt.Fprintf(out, "step %d: bus=%s", res.Index, res.Bus)

	if res.Checked {
		status := "ok"
		if !res.Passed() {
			status = fmt.Sprintf("FAIL (expected %s)", res.Expected)
		}

		fmt.Fprintf(out, " %s", status)
	}

	fmt.Fprintln(out)
}

func numFailed(results []scenario.StepResult) int {
	n := 0
	for _, res := range results {
		if !res.Passed() {
			n++
		}
	}

	return n
}

func dumpState(out io.Writer, runner *scenario.Runner) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(runner.RAM())
	serializer.SetMaxDepth(1)

	if err := serializer.Serialize(out); err != nil {
		return err
	}

	fmt.Fprintln(out)

	return nil
}
