package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezchajim/azilut/internal/model"
	"github.com/ezchajim/azilut/internal/report"
	"github.com/ezchajim/azilut/internal/worker"
)

var (
	reportConcurrency int
	reportJSON        bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Gate a message batch and print the anchoring summary",
	Long: `Report reads messages from a YAML batch file, runs them all through
the admission gate concurrently, and prints the batch summary: anchored
count, average score, world-level distribution, and the most frequent
remediation suggestions across rejected messages.

Example:
  azilut report messages.yaml
  azilut report messages.yaml --concurrency 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportConcurrency, "concurrency", 0, "worker count (default: from config)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the summary as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportConcurrency > 0 {
		cfg.Concurrency.Workers = reportConcurrency
	}

	logger, err := buildLogger(cfg.Output.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, err := buildGate(cfg, logger)
	if err != nil {
		return err
	}

	limiter := worker.NewLimiter(cfg.RateLimit.MessagesPerSecond, cfg.RateLimit.Burst)
	processor := worker.NewBatchProcessor(g, cfg.Concurrency.Workers, limiter)

	results, err := processor.ProcessFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	messages := make([]*model.Message, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "submit %s: %v\n", result.Message.ID, result.Err)
			continue
		}
		messages = append(messages, result.Message)
	}

	summary := report.Summarize(messages)
	if reportJSON {
		return json.NewEncoder(os.Stdout).Encode(summary)
	}

	fmt.Printf("messages:  %d\n", summary.Total)
	fmt.Printf("anchored:  %d/%d\n", summary.Anchored, summary.Total)
	fmt.Printf("avg score: %.2f\n", summary.AverageScore)
	if len(summary.WorldDistribution) > 0 {
		fmt.Println("worlds:")
		for _, world := range []string{"azilut", "berija", "jezira", "asija"} {
			if count, ok := summary.WorldDistribution[world]; ok {
				fmt.Printf("  %-7s %d\n", world, count)
			}
		}
	}
	if len(summary.TopRemediations) > 0 {
		fmt.Println("top remediations:")
		for _, r := range summary.TopRemediations {
			fmt.Printf("  %dx %s\n", r.Count, r.Text)
		}
	}
	return nil
}
