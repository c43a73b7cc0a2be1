package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the suggestion and summary API",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := bootstrap(ctx)

		srv := server.New(server.Config{
			Address:         env.config.Server.Address,
			ShutdownTimeout: env.config.Server.ShutdownTimeout,
			CORSOrigin:      env.config.Server.CORSOrigin,
		}, env.advisor, env.logger)

		if err := srv.Run(ctx); err != nil {
			env.logger.Fatal("serving", zap.Error(err))
		}

		env.logger.Info("server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default :8080, env CAR_ADVISOR_ADDRESS)")
	serveCmd.Flags().String("cors-origin", "", "allowed CORS origin; empty disables CORS headers")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("server.cors-origin", serveCmd.Flags().Lookup("cors-origin"))
}
