package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stitts-dev/xi-generator/pkg/config"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

const name = "xigen"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

// NewRootCommand wires every subcommand onto a fresh viper instance seeded
// with the server defaults, so env vars such as MAX_ATTEMPTS apply to the CLI
// as well.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	var logLevel string

	root := &cobra.Command{
		Use:   name,
		Short: "xigen - fantasy cricket lineup generator",
		Long: fmt.Sprintf(`xigen - fantasy cricket lineup generator

Version: %s
Commit:  %s

Draws batches of 11-player lineups from a two-team roster under role coverage
and per-team caps, with captain and vice chosen by weighted sampling.`, version, commit),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.InitLogger(logLevel, false)
			logger.SetOutput(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("roster", "", "roster CSV with team,role,player[,active] columns (default $ROSTER_PATH)")
	_ = v.BindPFlag("ROSTER_PATH", root.PersistentFlags().Lookup("roster"))

	root.AddCommand(newGenerateCommand(v))
	root.AddCommand(newTeamsCommand(v))
	return root
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openOutput returns stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
