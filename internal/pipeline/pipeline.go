package pipeline

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/claimflow/internal/cache"
	"github.com/ppiankov/claimflow/internal/extract"
	"github.com/ppiankov/claimflow/internal/llm"
	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
	"github.com/ppiankov/claimflow/internal/route"
	"github.com/ppiankov/claimflow/internal/store"
	"github.com/ppiankov/claimflow/internal/validate"
)

// rawTextPreviewLen bounds the preview carried in the result payload
const rawTextPreviewLen = 500

// Pipeline orchestrates the complete claim decision process: raw-text
// extraction, field extraction, validation and routing. Each claim is a
// single synchronous call chain; concurrent claims share nothing but the
// history store.
type Pipeline struct {
	textExtractor  extract.RawTextExtractor
	fieldExtractor *extract.FieldExtractor
	validator      *validate.Validator
	router         *route.Router
	history        store.History
	config         *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// A misconfigured LLM provider is reported but does not fail construction:
// the extractor then runs on the pattern fallback alone.
func NewPipeline(cfg *model.Config, history store.History) *Pipeline {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		provider = nil
	}
	provider = llm.NewRateLimited(provider, cfg.LLM.RateLimit, cfg.LLM.RateBurst)

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	return &Pipeline{
		textExtractor:  extract.NewDocumentReader(),
		fieldExtractor: extract.NewFieldExtractor(provider, resultCache, cfg.Cache.TTL),
		validator:      validate.NewValidator(cfg.Mandatory, cfg.Validation),
		router:         route.NewRouter(cfg.Routing),
		history:        history,
		config:         cfg,
	}
}

// SetTextExtractor replaces the raw-text collaborator. Used when binary
// formats are handled by an external component.
func (p *Pipeline) SetTextExtractor(e extract.RawTextExtractor) {
	p.textExtractor = e
}

// ProcessDocument runs the full pipeline for one uploaded document.
// An unreadable document (no recoverable text at all) is the only terminal
// failure; every other condition degrades into a routed outcome.
func (p *Pipeline) ProcessDocument(ctx context.Context, documentBytes []byte, mimeHint, filename string) (*model.ClaimResult, error) {
	claimID := NewClaimID()
	logger := logging.From(ctx).With("claim_id", claimID)
	ctx = logging.With(ctx, logger)

	logger.Info("pipeline start", "filename", filename)

	rawText, err := p.textExtractor.ExtractRawText(documentBytes, mimeHint)
	if err != nil {
		logger.Error("text extraction failed", "filename", filename, "error", err.Error())
		return nil, fmt.Errorf("extract text from %s: %w", filename, err)
	}
	logger.Info("text extracted", "chars", len(rawText))

	return p.processText(ctx, claimID, rawText, filename)
}

// ProcessText runs the pipeline on text already extracted by an external
// collaborator
func (p *Pipeline) ProcessText(ctx context.Context, rawText, filename string) (*model.ClaimResult, error) {
	claimID := NewClaimID()
	logger := logging.From(ctx).With("claim_id", claimID)
	ctx = logging.With(ctx, logger)

	if len(rawText) == 0 {
		return nil, fmt.Errorf("process %s: %w", filename, extract.ErrUnreadableDocument)
	}

	return p.processText(ctx, claimID, rawText, filename)
}

func (p *Pipeline) processText(ctx context.Context, claimID, rawText, filename string) (*model.ClaimResult, error) {
	fields := p.fieldExtractor.Extract(ctx, rawText)

	validation := p.validator.Validate(ctx, fields)

	decision := p.router.Route(ctx, fields, validation)

	result := &model.ClaimResult{
		ClaimID:          claimID,
		Filename:         filename,
		ProcessedAt:      time.Now().UTC(),
		ExtractedFields:  *fields,
		MissingFields:    validation.MissingFields,
		Inconsistencies:  validation.Inconsistencies,
		RecommendedRoute: decision.Route,
		Reasoning:        decision.Reasoning,
		RawTextPreview:   preview(rawText),
	}

	if p.history != nil {
		p.history.Append(*result)
	}

	logging.From(ctx).Info("pipeline complete",
		"route", string(decision.Route),
		"missing", len(validation.MissingFields),
		"filename", filename)

	return result, nil
}

// NewClaimID generates a claim identifier like CLM-3FA85F64. The identifier
// is for traceability only and carries no behavioral meaning.
func NewClaimID() string {
	id := uuid.New()
	return fmt.Sprintf("CLM-%X", id[:4])
}

func preview(rawText string) string {
	if len(rawText) <= rawTextPreviewLen {
		return rawText
	}
	// Back off to a rune boundary so the cut never leaves invalid UTF-8
	cut := rawTextPreviewLen
	for cut > 0 && !utf8.RuneStart(rawText[cut]) {
		cut--
	}
	return rawText[:cut] + "..."
}
