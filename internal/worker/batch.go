package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/claimflow/internal/model"
)

// Processor defines the interface for processing a single FNOL document.
// Each document is an independent pipeline invocation.
type Processor interface {
	ProcessDocument(ctx context.Context, documentBytes []byte, mimeHint, filename string) (*model.ClaimResult, error)
}

// DocumentJob processes one document file
type DocumentJob struct {
	Path      string
	Processor Processor
}

// Execute reads the file and runs it through the pipeline
func (j *DocumentJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &DocumentResult{
			Path:  j.Path,
			Error: fmt.Errorf("read document: %w", err),
		}
	}

	claim, err := j.Processor.ProcessDocument(ctx, data, filepath.Ext(j.Path), filepath.Base(j.Path))
	return &DocumentResult{
		Path:  j.Path,
		Claim: claim,
		Error: err,
	}
}

// DocumentResult represents the outcome of processing one document
type DocumentResult struct {
	Path  string
	Claim *model.ClaimResult
	Error error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple FNOL documents concurrently. Claims
// share no mutable state, so documents can safely run in parallel.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes multiple document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&DocumentJob{
			Path:      path,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	documentResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		documentResults[i] = result.(*DocumentResult)
	}

	return documentResults
}

// ProcessListFile reads document paths from a manifest file and processes
// them concurrently
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
