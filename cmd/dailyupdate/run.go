package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/collect"
	"github.com/ew616/project-dailyupdate/internal/config"
	"github.com/ew616/project-dailyupdate/internal/delivery"
	"github.com/ew616/project-dailyupdate/internal/digest"
	"github.com/ew616/project-dailyupdate/internal/pipeline"
)

var (
	runDryRun bool
	runReset  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect articles and send the daily briefing",
	Long: `Run the full pipeline once: fetch every enabled source, drop duplicate
and stale articles, classify the rest by topic, and email the briefing.

With --dry-run the briefing is printed to stdout and saved to the
database, but no email is sent. With --reset the seen-article history
is cleared first, so every source is collected from scratch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		if runDryRun {
			cfg.DryRun = true
		}

		if !cfg.DryRun {
			if cfg.ResendAPIKey == "" {
				fmt.Fprintf(os.Stderr, "Error: RESEND_API_KEY is not set (use --dry-run to skip sending)\n")
				os.Exit(1)
			}
			if cfg.EmailTo == "" {
				fmt.Fprintf(os.Stderr, "Error: EMAIL_TO is not set (use --dry-run to skip sending)\n")
				os.Exit(1)
			}
		}

		sources, err := config.LoadSources(cfg.SourcesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		store := openStore(ctx, cfg)
		defer store.Close()

		if runReset {
			cleared, err := store.ClearArticles(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to clear seen articles: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Cleared %d seen articles. Running fresh collection...\n", cleared)
		}

		opts := pipeline.Options{
			Config:     cfg,
			Store:      store,
			Collectors: collect.FromSources(config.EnabledSources(sources), collect.NewHTTPClient(cfg.HTTPTimeout)),
			Weather:    delivery.NewWeatherClient(cfg.WeatherLocation),
		}

		var sender *delivery.Sender
		if cfg.ResendAPIKey != "" && cfg.EmailTo != "" {
			sender = delivery.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo)
			opts.Sender = sender
		}
		if cfg.LLMEnabled() {
			opts.Synthesizer = digest.NewLLMSynthesizer(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens)
		}

		p, err := pipeline.New(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		result, err := p.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: briefing run failed: %v\n", err)
			if sender != nil && !cfg.DryRun {
				sendErrorAlert(sender, err)
			}
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		switch {
		case result.BriefingID == 0:
			fmt.Printf("\n%s No new articles, nothing to send\n", gray("○"))
		case cfg.DryRun:
			fmt.Printf("\n%s Briefing %d saved (not sent)\n", green("✓"), result.BriefingID)
		default:
			fmt.Printf("\n%s Briefing sent! Email ID: %s\n", green("✓"), result.EmailID)
		}
		if len(result.Unavailable) > 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s %d source(s) unavailable this run\n", yellow("⚠"), len(result.Unavailable))
		}
	},
}

// sendErrorAlert emails the failure so a broken scheduled run is noticed
// before the briefing is missed. Uses a fresh context: the run's context
// may already be canceled.
func sendErrorAlert(sender *delivery.Sender, runErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := sender.SendErrorAlert(ctx, time.Now(), runErr, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to send error alert: %v\n", err)
	}
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the briefing instead of emailing it")
	runCmd.Flags().BoolVar(&runReset, "reset", false, "Clear seen-article history before collecting")
	rootCmd.AddCommand(runCmd)
}
