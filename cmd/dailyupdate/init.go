package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/config"
)

const envTemplate = `# Email delivery (required unless running with --dry-run)
RESEND_API_KEY=
EMAIL_TO=
#EMAIL_FROM=Daily Briefing <briefing@example.com>

# Claude-written topic summaries; without these the briefing uses
# headline lists.
#USE_LLM=true
#ANTHROPIC_API_KEY=

#LOG_LEVEL=INFO
#DRY_RUN=true

#DU_DATABASE_PATH=data/briefing.db
#DU_SOURCES_PATH=sources.yaml
#DU_WEATHER_LOCATION=New York
#DU_MAX_ARTICLE_AGE=168h
#DU_HTTP_TIMEOUT=30s
#DU_FETCH_CONCURRENCY=5
#DU_REQUESTS_PER_SECOND=2.0
#DU_DEDUP_SIMILARITY_THRESHOLD=0.85

# Retention for 'dailyupdate cleanup'
#DU_ARTICLE_RETENTION_DAYS=90
#DU_BRIEFING_RETENTION_DAYS=365
#DU_CLEANUP_KEEP_BRIEFINGS=10
#DU_SOURCE_HEALTH_RETENTION_DAYS=30
#DU_CLEANUP_VACUUM=false
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write starter .env and sources.yaml files",
	Long: `Create a starter .env with the supported environment variables and a
sources.yaml with the built-in source list, ready to edit. Existing
files are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Println()
		if _, err := os.Stat(".env"); err == nil {
			fmt.Printf("  %s .env already exists, skipped\n", gray("○"))
		} else {
			if err := os.WriteFile(".env", []byte(envTemplate), 0o600); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write .env: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s Wrote .env\n", green("✓"))
		}

		if _, err := os.Stat(cfg.SourcesPath); err == nil {
			fmt.Printf("  %s %s already exists, skipped\n", gray("○"), cfg.SourcesPath)
		} else {
			if err := config.WriteExampleSources(cfg.SourcesPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s Wrote %s\n", green("✓"), cfg.SourcesPath)
		}

		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  1. Fill in RESEND_API_KEY and EMAIL_TO in .env")
		fmt.Printf("  2. Edit %s to taste\n", cfg.SourcesPath)
		fmt.Println("  3. Try it: dailyupdate run --dry-run")
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
