package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/config"
)

var (
	cleanupDryRun bool
	cleanupVacuum bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prune old rows from the database",
	Long: `Delete old articles, briefings, and source health checks according to
the retention policy.

Retention is read from DU_ARTICLE_RETENTION_DAYS,
DU_BRIEFING_RETENTION_DAYS, DU_CLEANUP_KEEP_BRIEFINGS and
DU_SOURCE_HEALTH_RETENTION_DAYS. Pruned articles leave the seen-article
history, so keep the article window comfortably past DU_MAX_ARTICLE_AGE.

Examples:
  dailyupdate cleanup            # Prune with the configured retention
  dailyupdate cleanup --dry-run  # Preview what would be deleted
  dailyupdate cleanup --vacuum   # Prune, then reclaim disk space`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		cfg := loadConfig()
		retention, err := config.RetentionConfigFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cleanupVacuum {
			retention.Vacuum = true
		}

		fmt.Printf("Retention policy:\n")
		fmt.Printf("  Articles:      %d days\n", retention.ArticleRetentionDays)
		fmt.Printf("  Briefings:     %d days (keeping at least %d)\n",
			retention.BriefingRetentionDays, retention.KeepBriefings)
		fmt.Printf("  Source health: %d days\n", retention.SourceHealthRetentionDays)
		if cleanupDryRun {
			fmt.Printf("\n%s\n", color.YellowString("DRY RUN MODE - Nothing will be deleted"))
		}
		fmt.Println()

		store := openStore(ctx, cfg)
		defer store.Close()

		articles, err := store.PruneArticles(ctx, retention.ArticleRetentionDays, cleanupDryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: article cleanup failed: %v\n", err)
			os.Exit(1)
		}
		briefings, err := store.PruneBriefings(ctx, retention.BriefingRetentionDays, retention.KeepBriefings, cleanupDryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: briefing cleanup failed: %v\n", err)
			os.Exit(1)
		}
		health, err := store.PruneSourceHealth(ctx, retention.SourceHealthRetentionDays, cleanupDryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: source health cleanup failed: %v\n", err)
			os.Exit(1)
		}

		if cleanupDryRun {
			fmt.Printf("Would delete %d article(s), %d briefing(s), %d health check(s)\n",
				articles, briefings, health)
			fmt.Printf("Run without --dry-run to perform cleanup\n")
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Deleted %d article(s), %d briefing(s), %d health check(s)\n",
			green("✓"), articles, briefings, health)

		if retention.Vacuum {
			fmt.Printf("Reclaiming disk space...\n")
			if err := store.Vacuum(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: vacuum failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s Vacuum complete\n", green("✓"))
		}
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Preview deletions without committing")
	cleanupCmd.Flags().BoolVar(&cleanupVacuum, "vacuum", false, "Run VACUUM after cleanup to reclaim disk space")
	rootCmd.AddCommand(cleanupCmd)
}
