package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/config"
	"github.com/ew616/project-dailyupdate/internal/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and their recent health",
	Long: `Show every source from the sources file (or the built-in list when no
file exists) along with the outcome of its most recent collection.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		sources, err := config.LoadSources(cfg.SourcesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		store := openStore(ctx, cfg)
		defer store.Close()

		checks, err := store.RecentSourceHealth(ctx, 200)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load source health: %v\n", err)
			os.Exit(1)
		}

		// Rows come back newest first, so the first row per source is
		// its latest check.
		latest := make(map[string]*types.SourceHealth, len(checks))
		for _, check := range checks {
			if _, ok := latest[check.SourceName]; !ok {
				latest[check.SourceName] = check
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n", yellow("Configured sources:"))
		for _, source := range sources {
			name := collectorName(source)

			icon := gray("○")
			detail := gray("never checked")
			if !source.Enabled {
				detail = gray("disabled")
			} else if check, ok := latest[name]; ok {
				age := time.Since(check.CheckedAt).Round(time.Minute)
				switch check.Status {
				case types.HealthOK:
					icon = green("●")
					detail = fmt.Sprintf("ok %s", gray(fmt.Sprintf("(%v ago)", age)))
				case types.HealthError:
					icon = red("●")
					detail = fmt.Sprintf("%s %s", red(check.ErrorMessage), gray(fmt.Sprintf("(%v ago)", age)))
				}
			}

			fmt.Printf("  %s %-24s %s\n", icon, name, detail)
		}
		fmt.Println()
	},
}

// collectorName maps a source onto the name its collector reports, which
// is also the key used in the source_health table.
func collectorName(source types.Source) string {
	if source.Kind == types.SourceReddit {
		return "r/" + source.Name
	}
	return source.Name
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
