package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the seen-article history",
	Long: `Delete all stored articles so the next run treats everything as new.

Briefing history and source health records are kept. The run after a
reset collects every article the sources currently publish, so expect a
large briefing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		if !resetYes {
			fmt.Print("Clear all seen articles? This cannot be undone. [y/N]: ")
			var answer string
			fmt.Scanln(&answer)
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return
			}
		}

		store := openStore(ctx, cfg)
		defer store.Close()

		cleared, err := store.ClearArticles(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to clear seen articles: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared %d seen articles.\n", cleared)
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
