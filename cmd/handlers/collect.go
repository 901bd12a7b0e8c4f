package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newswave/internal/logger"
)

// NewCollectCmd creates the collect command.
func NewCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect the day's popular articles into the store",
		Long: `Collect ranked article listings for each category, extract clean
article bodies, and save everything to the local store.

Articles already stored (matched by listing ID, URL, or exact title) are
skipped, so re-running collection on the same day is safe.

Examples:
  newswave collect
  newswave collect --category economy
  newswave collect --date 2026-08-30`,
		Run: collectRun,
	}

	cmd.Flags().StringP("category", "c", "", "Collect a single category (default: all)")
	cmd.Flags().StringP("date", "d", "", "Collection date, YYYY-MM-DD (default: today)")

	return cmd
}

func collectRun(cmd *cobra.Command, _ []string) {
	startTime := time.Now()
	categoryKey, _ := cmd.Flags().GetString("category")
	date := resolveDate(mustString(cmd, "date"))

	categories, err := resolveCategories(categoryKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	pipe, cleanup, err := buildPipeline(false, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 Make sure DEEPSEARCH_API_KEY is set in your environment or .env file\n")
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("starting collection", "date", date, "categories", len(categories))
	fmt.Printf("📰 Collecting articles for %s (%d categories)...\n", date, len(categories))

	results := pipe.CollectAll(context.Background(), categories, date)

	totalSaved := 0
	for _, result := range results {
		totalSaved += result.Saved
		fmt.Printf("  • %-10s saved %2d (listed %d, duplicates %d, extracted %d)\n",
			result.Category, result.Saved, result.Listed, result.Duplicates, result.Extracted)
	}

	fmt.Printf("✅ Collection complete: %d articles in %s\n",
		totalSaved, time.Since(startTime).Round(time.Second))
}

func mustString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
