package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/service/installer"
	"github.com/sandevgo/tripsmith/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure TripSmith interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		appCfg := config.NewAppConfig(ctx)
		envPath := appCfg.GetEnvFilePath()

		// run wizard (includes save step)
		if _, err := installer.RunWizard(envPath); err != nil {
			return err
		}

		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", appCfg.GetRuntimePath())
		logger.Info().Msg("Installation complete! You can now run 'trip chat'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
