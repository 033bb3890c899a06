package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/claimflow/internal/model"
)

// stubProcessor records calls and answers with a canned result per filename
type stubProcessor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (s *stubProcessor) ProcessDocument(ctx context.Context, documentBytes []byte, mimeHint, filename string) (*model.ClaimResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, filename)
	s.mu.Unlock()

	if err, ok := s.fail[filename]; ok {
		return nil, err
	}
	return &model.ClaimResult{
		ClaimID:          "CLM-" + filename,
		Filename:         filename,
		ProcessedAt:      time.Now().UTC(),
		RecommendedRoute: model.RouteStandard,
	}, nil
}

func writeTestDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test document: %v", err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestDoc(t, dir, "claim1.txt", "POLICY NUMBER\nPOL-1"),
		writeTestDoc(t, dir, "claim2.txt", "POLICY NUMBER\nPOL-2"),
		writeTestDoc(t, dir, "claim3.txt", "POLICY NUMBER\nPOL-3"),
	}

	processor := &stubProcessor{}
	batch := NewBatchProcessor(processor, 2)

	results := batch.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.GetError() != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Claim == nil {
			t.Errorf("expected a claim for %s", res.Path)
		}
	}
	if len(processor.calls) != 3 {
		t.Errorf("expected 3 processor calls, got %d", len(processor.calls))
	}
}

func TestBatchProcessor_MissingFileDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeTestDoc(t, dir, "claim1.txt", "POLICY NUMBER\nPOL-1")
	missing := filepath.Join(dir, "does-not-exist.txt")

	processor := &stubProcessor{}
	batch := NewBatchProcessor(processor, 2)

	results := batch.ProcessPaths(context.Background(), []string{good, missing})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errCount := 0
	for _, res := range results {
		if res.GetError() != nil {
			errCount++
			if res.Path != missing {
				t.Errorf("error on unexpected path %s", res.Path)
			}
		}
	}
	if errCount != 1 {
		t.Errorf("expected 1 error, got %d", errCount)
	}
}

func TestBatchProcessor_ProcessorErrorIsPerDocument(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestDoc(t, dir, "good.txt", "POLICY NUMBER\nPOL-1"),
		writeTestDoc(t, dir, "bad.bin", "not really text"),
	}

	processor := &stubProcessor{
		fail: map[string]error{"bad.bin": errors.New("unreadable document")},
	}
	batch := NewBatchProcessor(processor, 2)

	results := batch.ProcessPaths(context.Background(), paths)

	byPath := make(map[string]*DocumentResult, len(results))
	for _, res := range results {
		byPath[res.Path] = res
	}
	if res := byPath[paths[0]]; res == nil || res.Error != nil {
		t.Errorf("expected good document to succeed, got %+v", res)
	}
	if res := byPath[paths[1]]; res == nil || res.Error == nil {
		t.Errorf("expected bad document to carry its error, got %+v", res)
	}
}

func TestBatchProcessor_EmptyPathList(t *testing.T) {
	batch := NewBatchProcessor(&stubProcessor{}, 2)

	results := batch.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	manifest := writeTestDoc(t, dir, "manifest.txt", `# FNOL intake batch
claims/claim1.txt

claims/claim2.txt
claims/claim1.txt
# trailing comment
claims/claim3.txt
`)

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	want := []string{"claims/claim1.txt", "claims/claim2.txt", "claims/claim3.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestBatchProcessor_ProcessListFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeTestDoc(t, dir, "claim1.txt", "POLICY NUMBER\nPOL-1")
	manifest := writeTestDoc(t, dir, "manifest.txt", doc+"\n")

	batch := NewBatchProcessor(&stubProcessor{}, 1)

	results, err := batch.ProcessListFile(context.Background(), manifest)
	if err != nil {
		t.Fatalf("ProcessListFile failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Claim == nil || results[0].Claim.Filename != "claim1.txt" {
		t.Errorf("unexpected claim: %+v", results[0].Claim)
	}
}
