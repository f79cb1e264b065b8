package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	gatewayCmd "github.com/0nyxlabs/merchanding/gateway/cmd"
	"github.com/0nyxlabs/merchanding/internal/constants"
	"github.com/0nyxlabs/merchanding/internal/log"
)

func Start() {
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str(log.KeyAppName, constants.AppMainMerchanding).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{}
	commands := []*cobra.Command{
		{
			Use:   "gateway",
			Short: "Run storefront gateway",
			Run: func(cmd *cobra.Command, args []string) {
				gatewayCmd.RunGatewayService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
