package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newswave/internal/core"
	"newswave/internal/logger"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the day's radio scripts from stored articles",
		Long: `Generate a narration script for each category from the articles
collected for the given date.

Each category runs independently: articles are clustered by topic,
each cluster is consolidated into one summary, and the summaries are
synthesized into a single radio script with optional audio. A category
whose script already exists for the date is skipped.

Examples:
  newswave generate
  newswave generate --category economy
  newswave generate --date 2026-08-30 --no-audio`,
		Run: generateRun,
	}

	cmd.Flags().StringP("category", "c", "", "Generate a single category (default: all)")
	cmd.Flags().StringP("date", "d", "", "Generation date, YYYY-MM-DD (default: today)")
	cmd.Flags().Bool("no-audio", false, "Skip speech synthesis, persist the script only")

	return cmd
}

func generateRun(cmd *cobra.Command, _ []string) {
	startTime := time.Now()
	categoryKey := mustString(cmd, "category")
	date := resolveDate(mustString(cmd, "date"))
	noAudio, _ := cmd.Flags().GetBool("no-audio")

	categories, err := resolveCategories(categoryKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	pipe, cleanup, err := buildPipeline(true, !noAudio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 Make sure GEMINI_API_KEY is set in your environment or .env file\n")
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("starting generation", "date", date, "categories", len(categories))
	fmt.Printf("🎙️  Generating scripts for %s (%d categories)...\n", date, len(categories))

	results := pipe.RunAll(context.Background(), categories, date)

	succeeded := 0
	for _, result := range results {
		switch result.Status {
		case core.StatusSuccess:
			succeeded++
			fmt.Printf("  ✅ %-10s %d chars in %s\n",
				result.Category, result.ScriptLength, result.Elapsed.Round(time.Second))
		case core.StatusSkipped:
			fmt.Printf("  ⏭️  %-10s already generated\n", result.Category)
		default:
			fmt.Printf("  ❌ %-10s failed: %s\n", result.Category, result.Reason)
		}
	}

	fmt.Printf("✅ Generation complete: %d/%d categories in %s\n",
		succeeded, len(results), time.Since(startTime).Round(time.Second))
}
