// Package cli wires the domainRadar commands
package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uberswe/domainRadar/pkg/config"
)

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "domainRadar",
		Short:        "Rank domains from public release lists by how easy they are to read and type",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), g.debug)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configFile, "config", config.DefaultConfigFileName, "Path to configuration file (.json, .yaml or .yml)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(availableCmd(g))
	cmd.AddCommand(checkCmd(g))
	cmd.AddCommand(serveCmd(g))
	return cmd
}

// setupLogging configures zerolog with console output and microsecond precision
func setupLogging(out io.Writer, debug bool) {
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000000"

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.StampMicro,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
