package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
	"github.com/ppiankov/claimflow/internal/pipeline"
	"github.com/ppiankov/claimflow/internal/store"
)

var (
	outJSON        string
	processTimeout time.Duration
	noCache        bool
	threshold      float64
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document>",
	Short: "Process a single FNOL document and print the routing decision",
	Long: `Process runs the full decision pipeline for one document:
- Extract raw text (TXT and HTML built in; binary formats via collaborator)
- Extract structured fields (LLM completion, pattern-matching fallback)
- Validate mandatory fields and cross-field consistency
- Route the claim through the fixed priority rule table

The result is printed to stdout as JSON.

Example:
  claimflow process fnol.txt
  claimflow process fnol.txt --json result.json
  claimflow process fnol.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "also write the result JSON to this path")

	// Pipeline flags
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction-result cache")
	processCmd.Flags().Float64Var(&threshold, "fast-track-threshold", 0, "override the fast-track damage threshold")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM field extraction (falls back to patterns on failure)")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles the effective configuration: defaults, then config
// file and CLAIMFLOW_* env vars via viper, then flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if threshold > 0 {
		cfg.Routing.FastTrackThreshold = threshold
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Credentials come from the environment, never from flags
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				// Missing credentials silently select the fallback path
				fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set; using pattern-matching extraction")
				cfg.LLM.Provider = ""
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := logging.New(verbose)
	ctx = logging.With(ctx, logger)

	history := store.NewMemoryHistory(cfg.History.Capacity)
	p := pipeline.NewPipeline(cfg, history)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	result, err := p.ProcessDocument(ctx, data, filepath.Ext(file), filepath.Base(file))
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(output))

	if outJSON != "" {
		if err := os.WriteFile(outJSON, append(output, '\n'), 0644); err != nil {
			return fmt.Errorf("write result JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\n%s → %s\n", result.ClaimID, result.RecommendedRoute)
	}

	return nil
}
