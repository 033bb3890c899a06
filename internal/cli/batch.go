package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
	"github.com/ppiankov/claimflow/internal/pipeline"
	"github.com/ppiankov/claimflow/internal/store"
	"github.com/ppiankov/claimflow/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Process multiple FNOL documents from a manifest file in parallel",
	Long: `Batch processes multiple documents concurrently:
- Read document paths from the manifest file (one per line)
- Process documents in parallel with configurable worker count
- Each document is an independent pipeline invocation
- Write an individual result JSON per claim

Example:
  claimflow batch documents.txt
  claimflow batch documents.txt --concurrency 10 --output-dir ./results
  claimflow batch documents.txt --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimflow-results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared pipeline flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction-result cache")
	batchCmd.Flags().Float64Var(&threshold, "fast-track-threshold", 0, "override the fast-track damage threshold")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM field extraction (falls back to patterns on failure)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Batch.Workers = concurrency
	}

	logger := logging.New(verbose)
	ctx = logging.With(ctx, logger)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Claimflow Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Batch.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	history := store.NewMemoryHistory(cfg.History.Capacity)
	p := pipeline.NewPipeline(cfg, history)

	processor := worker.NewBatchProcessor(p, cfg.Batch.Workers)

	results, err := processor.ProcessListFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	successCount := 0
	failureCount := 0
	routeCounts := make(map[model.Route]int)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++
		routeCounts[result.Claim.RecommendedRoute]++

		jsonPath := filepath.Join(outputDir, result.Claim.ClaimID+".json")
		output, err := json.MarshalIndent(result.Claim, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to encode result: %v\n", result.Path, err)
			continue
		}
		if err := os.WriteFile(jsonPath, append(output, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s → %s (%s)\n",
			filepath.Base(result.Path), result.Claim.RecommendedRoute, result.Claim.ClaimID)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	for route, count := range routeCounts {
		fmt.Fprintf(os.Stderr, "  %s %d\n", padRoute(string(route)), count)
	}
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func padRoute(route string) string {
	const width = 22
	if len(route) >= width {
		return route + ":"
	}
	return route + ":" + strings.Repeat(" ", width-len(route))
}
