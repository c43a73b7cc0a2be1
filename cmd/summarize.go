package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the pros and cons of a car from the catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		env := bootstrap(ctx)

		manufacturer, _ := cmd.Flags().GetString("make")
		model, _ := cmd.Flags().GetString("model")

		summary, err := env.advisor.Summarize(ctx, manufacturer, model)
		if err != nil {
			env.logger.Fatal("summarizing", zap.Error(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary.Text)
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().String("make", "", "car make, e.g. Toyota")
	summarizeCmd.Flags().String("model", "", "car model, e.g. RAV4")
	_ = summarizeCmd.MarkFlagRequired("make")
	_ = summarizeCmd.MarkFlagRequired("model")
}
