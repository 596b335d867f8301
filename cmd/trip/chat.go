package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/tripsmith/pkg/log"
	"github.com/sandevgo/tripsmith/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive trip planning session",
	Long:  `Opens the TripSmith REPL. Type /help for commands and exit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Debug().Msg("starting tripsmith")

		repl, background, err := NewChat(ctx)
		if err != nil {
			return err
		}

		if err := srv.Run(ctx, repl, background); err != nil {
			return err
		}
		logger.Debug().Msg("tripsmith has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
