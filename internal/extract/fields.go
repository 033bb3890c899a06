package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/claimflow/internal/cache"
	"github.com/ppiankov/claimflow/internal/llm"
	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
)

// Extraction strategy names used in trace records
const (
	StrategyLLM     = "llm"
	StrategyPattern = "pattern"
	StrategyCache   = "cache"
)

// FieldExtractor converts raw FNOL text into a structured FieldSet.
// The LLM completion service is the primary strategy; pattern matching is
// the fallback. Extraction never fails outward: when both strategies come
// up empty the result is an all-null FieldSet, which downstream validation
// turns into a Manual Review route.
type FieldExtractor struct {
	provider llm.Provider // nil when no completion service is configured
	patterns *PatternExtractor
	cache    cache.Cache // nil when caching is disabled
	cacheTTL time.Duration
}

// NewFieldExtractor creates a new field extractor. provider and resultCache
// may both be nil.
func NewFieldExtractor(provider llm.Provider, resultCache cache.Cache, cacheTTL time.Duration) *FieldExtractor {
	return &FieldExtractor{
		provider: provider,
		patterns: NewPatternExtractor(),
		cache:    resultCache,
		cacheTTL: cacheTTL,
	}
}

// Extract extracts a FieldSet from raw text. The returned set is complete:
// every schema field is present, unknown values are null.
func (e *FieldExtractor) Extract(ctx context.Context, rawText string) *model.FieldSet {
	logger := logging.From(ctx)

	key := cache.Key(rawText)
	if e.cache != nil {
		if data, found := e.cache.Get(key); found {
			var fields model.FieldSet
			if err := json.Unmarshal(data, &fields); err == nil {
				logger.Debug("field extraction trace",
					"strategy", StrategyCache,
					"fields", fields.FieldCount())
				return &fields
			}
			// Corrupt entry: drop it and extract fresh
			_ = e.cache.Delete(key)
		}
	}

	fields, strategy := e.extract(ctx, rawText)

	logger.Info("field extraction trace",
		"strategy", strategy,
		"fields", fields.FieldCount())

	if e.cache != nil {
		if data, err := json.Marshal(fields); err == nil {
			_ = e.cache.Set(key, data, e.cacheTTL)
		}
	}

	return fields
}

func (e *FieldExtractor) extract(ctx context.Context, rawText string) (*model.FieldSet, string) {
	if e.provider != nil {
		fields, err := e.provider.CompleteFields(ctx, rawText)
		if err == nil {
			return fields, StrategyLLM
		}
		// No retry: one failed completion hands off to the fallback within
		// the same request
		logging.From(ctx).Warn("completion failed, using pattern fallback",
			"provider", e.provider.Name(),
			"error", err.Error())
	}

	return e.patterns.Extract(rawText), StrategyPattern
}
