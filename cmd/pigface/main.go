// Command pigface shows a pig whose eyes follow the mouse, a finger or your
// face, and whose snout oinks.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phanxgames/pigface/config"
	"github.com/phanxgames/pigface/internal/logging"
)

var version = "dev"

// app is the state shared by every subcommand after flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	settings *config.Settings
	viper    *viper.Viper
	log      zerolog.Logger
	logClose io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pigface",
		Short: "A pig that watches you",
		Long: `pigface draws a pig whose eyes follow the mouse, a touch or, with a face
source, your face. Click the snout (or press space) to make it oink; hold a
blink for a second while face tracking to do the same.

Keys: C toggles face tracking, Space oinks, D toggles the debug overlay.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.logClose.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.settings.Host.Kind == "term" {
				return a.runTerm(cmd.Context())
			}
			return a.runWindow(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./pigface.yaml or ~/.pigface/pigface.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also append logs to this file")

	root.AddCommand(
		&cobra.Command{
			Use:   "window",
			Short: "Run in an Ebitengine window",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runWindow(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "term",
			Short: "Run in the terminal",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTerm(cmd.Context())
			},
		},
		newReplayCmd(a),
	)
	return root
}

// setup loads settings, applies flag overrides and builds the logger.
func (a *app) setup() error {
	s, v, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		s.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		s.Log.File = a.logFile
	}
	log, closer, err := logging.New(logging.Config{
		Level:   s.Log.Level,
		Console: s.Log.Console,
		File:    s.Log.File,
	})
	if err != nil {
		return err
	}
	a.settings, a.viper, a.log, a.logClose = s, v, log, closer

	if used := v.ConfigFileUsed(); used != "" {
		a.log.Info().Str("file", used).Msg("config loaded")
	}
	return nil
}
