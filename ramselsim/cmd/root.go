// Package cmd provides the command-line interface of ramselsim.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// LogLevelEnv names the environment variable that sets the log level when
// --log-level is not given. It can also be set in a .env file.
const LogLevelEnv = "DIGISIM_LOG_LEVEL"

// RootOptions holds the flags shared by all commands.
type RootOptions struct {
	LogLevel string
	EnvFile  string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ramselsim",
		Short: "Run scenarios against a RAM with chip-select.",
		Long: `ramselsim drives a simulated RAM with chip-select through ` +
			`the input levels listed in a scenario file and reports the ` +
			`data bus after every step.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configure(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warning",
		"log level (trace|debug|info|warning|error)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env",
		"file to load environment variables from")

	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

func (o *RootOptions) configure(cmd *cobra.Command) error {
	err := godotenv.Load(o.EnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", o.EnvFile, err)
	}

	level := o.LogLevel
	if env := os.Getenv(LogLevelEnv); env != "" &&
		!cmd.Flags().Changed("log-level") {
		level = env
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	logrus.SetLevel(parsed)
	logrus.SetOutput(cmd.ErrOrStderr())

	return nil
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
