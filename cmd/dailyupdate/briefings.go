package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/types"
)

var briefingsLimit int

var briefingsCmd = &cobra.Command{
	Use:   "briefings",
	Short: "List recent briefings",
	Long:  `Show recent briefings with their delivery status and topics.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		store := openStore(ctx, cfg)
		defer store.Close()

		briefings, err := store.ListBriefings(ctx, briefingsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list briefings: %v\n", err)
			os.Exit(1)
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		if len(briefings) == 0 {
			fmt.Printf("\n  %s\n\n", gray("No briefings yet"))
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Println()
		for _, briefing := range briefings {
			status := gray(string(briefing.Status))
			switch briefing.Status {
			case types.BriefingSent:
				status = green("sent")
			case types.BriefingFailed:
				status = red("failed")
			case types.BriefingCreated:
				status = yellow("created")
			}

			line := fmt.Sprintf("  #%-4d %s  %s", briefing.ID,
				briefing.CreatedAt.Format("2006-01-02 15:04"), status)
			if briefing.SentAt != nil {
				line += gray(fmt.Sprintf("  (sent %s)", briefing.SentAt.Format("15:04")))
			}
			fmt.Println(line)

			if topics := briefingTopics(briefing.TopicsJSON); topics != "" {
				fmt.Printf("        %s\n", gray(topics))
			}
		}
		fmt.Println()
	},
}

// briefingTopics extracts a sorted topic list from the stored JSON.
// Unparseable JSON comes back empty rather than failing the listing.
func briefingTopics(topicsJSON string) string {
	var topics map[string]string
	if err := json.Unmarshal([]byte(topicsJSON), &topics); err != nil || len(topics) == 0 {
		return ""
	}
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func init() {
	briefingsCmd.Flags().IntVarP(&briefingsLimit, "limit", "n", 10, "Number of briefings to show")
	rootCmd.AddCommand(briefingsCmd)
}
