package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/delivery"
)

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Send a sample briefing to verify email delivery",
	Long: `Send a briefing built from canned sample content to the configured
recipient. Use this to verify the Resend API key, sender domain, and
recipient address before scheduling real runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		if cfg.ResendAPIKey == "" {
			fmt.Fprintf(os.Stderr, "Error: RESEND_API_KEY is not set\n")
			os.Exit(1)
		}
		if cfg.EmailTo == "" {
			fmt.Fprintf(os.Stderr, "Error: EMAIL_TO is not set\n")
			os.Exit(1)
		}

		weather := delivery.NewWeatherClient(cfg.WeatherLocation).Current(ctx)
		sender := delivery.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo)

		id, err := sender.SendTest(ctx, time.Now(), weather)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to send test email: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("\n%s Test email sent successfully! ID: %s\n", green("✓"), id)
	},
}

func init() {
	rootCmd.AddCommand(testEmailCmd)
}
