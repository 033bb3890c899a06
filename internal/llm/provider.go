package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/claimflow/internal/model"
)

// maxPromptChars bounds how much document text is sent to the provider
const maxPromptChars = 4000

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// CompleteFields extracts a structured FieldSet from raw FNOL text.
	// Any error (network, quota, malformed response) means the caller falls
	// back to pattern matching; errors never propagate past the extractor.
	CompleteFields(ctx context.Context, rawText string) (*model.FieldSet, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// SystemPrompt instructs the model to emit exactly the FieldSet schema.
// Unknown fields must come back as JSON null, never omitted.
const SystemPrompt = `You are an expert insurance claims data extractor.
Given raw text from an FNOL (First Notice of Loss) document, extract the following fields into a JSON structure.
If a field is not found or not mentioned, set its value to null.
For monetary values, extract just the number (no currency symbols).

Return ONLY valid JSON in this exact structure:
{
    "policyInformation": {
        "policyNumber": "string or null",
        "policyholderName": "string or null",
        "effectiveDates": "string or null"
    },
    "incidentInformation": {
        "date": "string or null",
        "time": "string or null",
        "location": "string or null",
        "description": "string or null"
    },
    "involvedParties": {
        "claimant": "string or null",
        "thirdParties": "string or null",
        "contactDetails": "string or null"
    },
    "assetDetails": {
        "assetType": "string or null",
        "assetId": "string or null",
        "estimatedDamage": "string or null"
    },
    "otherFields": {
        "claimType": "string or null",
        "attachments": "string or null",
        "initialEstimate": "string or null"
    }
}`

// BuildUserPrompt constructs the user message, truncating oversized documents
func BuildUserPrompt(rawText string) string {
	if len(rawText) > maxPromptChars {
		rawText = rawText[:maxPromptChars]
	}
	return "Extract fields from this FNOL document:\n\n" + rawText
}

var codeFencePattern = regexp.MustCompile("^```(?:json)?\\s*")

// ParseFieldSet validates a provider response against the fixed FieldSet
// schema. Anything that does not decode as a two-level JSON object is an
// error; untyped data never flows past this point. Sections and fields
// outside the schema are dropped.
func ParseFieldSet(responseText string) (*model.FieldSet, error) {
	text := strings.TrimSpace(responseText)

	// Models occasionally wrap the JSON in a markdown code fence
	if strings.HasPrefix(text, "```") {
		text = codeFencePattern.ReplaceAllString(text, "")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("response is not a field-set object: %w", err)
	}

	fields := &model.FieldSet{}
	for section, sectionFields := range raw {
		for field, value := range sectionFields {
			if str := coerceValue(value); str != nil {
				assignField(fields, section+"."+field, str)
			}
		}
	}

	return fields, nil
}

// coerceValue converts a JSON value to a field string. Null, blank strings
// and unsupported types yield nil; numbers are formatted without a trailing
// zero fraction.
func coerceValue(value any) *string {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || strings.EqualFold(trimmed, "null") {
			return nil
		}
		return &trimmed
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

// assignField writes a value into the FieldSet at a dotted path, ignoring
// paths outside the fixed schema
func assignField(f *model.FieldSet, path string, value *string) {
	switch path {
	case "policyInformation.policyNumber":
		f.PolicyInformation.PolicyNumber = value
	case "policyInformation.policyholderName":
		f.PolicyInformation.PolicyholderName = value
	case "policyInformation.effectiveDates":
		f.PolicyInformation.EffectiveDates = value
	case "incidentInformation.date":
		f.IncidentInformation.Date = value
	case "incidentInformation.time":
		f.IncidentInformation.Time = value
	case "incidentInformation.location":
		f.IncidentInformation.Location = value
	case "incidentInformation.description":
		f.IncidentInformation.Description = value
	case "involvedParties.claimant":
		f.InvolvedParties.Claimant = value
	case "involvedParties.thirdParties":
		f.InvolvedParties.ThirdParties = value
	case "involvedParties.contactDetails":
		f.InvolvedParties.ContactDetails = value
	case "assetDetails.assetType":
		f.AssetDetails.AssetType = value
	case "assetDetails.assetId":
		f.AssetDetails.AssetID = value
	case "assetDetails.estimatedDamage":
		f.AssetDetails.EstimatedDamage = value
	case "otherFields.claimType":
		f.OtherFields.ClaimType = value
	case "otherFields.attachments":
		f.OtherFields.Attachments = value
	case "otherFields.initialEstimate":
		f.OtherFields.InitialEstimate = value
	}
}
