package main

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cliState is shared by all commands of one invocation
type cliState struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose     bool
	envFile     string
	storeDir    string
	postgresDSN string

	logger *zap.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	state := &cliState{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			state.logger = newLogger(state.stderr, state.verbose)
			return state.loadEnv(cmd.Flags().Changed(FlagEnvFile))
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&state.verbose, FlagVerbose, FlagVerboseShort, false, "log debug output to stderr")
	flags.StringVar(&state.envFile, FlagEnvFile, FlagDefaultEnvFile, "env file with OPENAI_* settings")
	flags.StringVar(&state.storeDir, FlagStoreDir, "", "directory of .prompt documents")
	flags.StringVar(&state.postgresDSN, FlagPostgresDSN, "", "PostgreSQL connection string for the template store")

	root.AddCommand(
		newFillCmd(state),
		newValidateCmd(state),
		newListCmd(state),
		newVersionCmd(state),
	)
	return root
}

// newLogger writes console-encoded logs to w. Warnings and above are shown
// by default, everything with verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// loadEnv loads the env file into the process environment without
// overriding variables that are already set. A missing default file is
// ignored; a missing explicit file is an error.
func (s *cliState) loadEnv(explicit bool) error {
	if s.envFile == "" {
		return nil
	}
	if _, err := os.Stat(s.envFile); errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err := godotenv.Load(s.envFile); err != nil {
		return newExitError(ExitCodeInputError, ErrMsgEnvFileFailed, err)
	}
	s.logger.Debug(LogMsgEnvFileLoaded, zap.String(LogFieldPath, s.envFile))
	return nil
}
