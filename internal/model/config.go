package model

import "time"

// Config holds the full claimflow configuration
type Config struct {
	Mandatory  []string         `mapstructure:"mandatory_fields" yaml:"mandatory_fields"`
	Routing    RoutingConfig    `mapstructure:"routing" yaml:"routing"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	LLM        LLMConfig        `mapstructure:"llm" yaml:"llm"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
	History    HistoryConfig    `mapstructure:"history" yaml:"history"`
}

// RoutingConfig controls the rule engine
type RoutingConfig struct {
	// FastTrackThreshold is the currency-agnostic damage cutoff below which
	// complete, low-severity claims bypass standard review
	FastTrackThreshold float64 `mapstructure:"fast_track_threshold" yaml:"fast_track_threshold"`

	// FraudKeywords trigger Investigation Flag when found in the incident
	// description (case-insensitive substring match)
	FraudKeywords []string `mapstructure:"fraud_keywords" yaml:"fraud_keywords"`

	// InjuryKeywords trigger Specialist Queue when found in the claim type
	InjuryKeywords []string `mapstructure:"injury_keywords" yaml:"injury_keywords"`
}

// ValidationConfig controls the consistency checks
type ValidationConfig struct {
	// DiscrepancyRatio is the |damage - estimate| / max(damage, estimate)
	// ratio above which a discrepancy flag is raised
	DiscrepancyRatio float64 `mapstructure:"discrepancy_ratio" yaml:"discrepancy_ratio"`

	// MinPolicyNumberLength flags policy numbers shorter than this
	MinPolicyNumberLength int `mapstructure:"min_policy_number_length" yaml:"min_policy_number_length"`
}

// LLMConfig configures the primary extraction strategy.
// An empty Provider disables the LLM path; the extractor then goes straight
// to the regex fallback. This is never an error.
type LLMConfig struct {
	Provider  string  `mapstructure:"provider" yaml:"provider"` // "openai", "ollama", ""
	Model     string  `mapstructure:"model" yaml:"model"`
	APIKey    string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL   string  `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout   int     `mapstructure:"timeout" yaml:"timeout"` // seconds
	MaxTokens int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // completions per second
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// CacheConfig controls the extraction-result cache
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// BatchConfig controls concurrent document processing
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// HistoryConfig controls the in-memory claims history
type HistoryConfig struct {
	// Capacity bounds stored results; oldest entries are evicted first.
	// Zero means unbounded.
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
}

// DefaultConfig returns sensible defaults tuned for ACORD-style FNOL forms
func DefaultConfig() *Config {
	return &Config{
		Mandatory: []string{
			"policyInformation.policyNumber",
			"policyInformation.policyholderName",
			"policyInformation.effectiveDates",
			"incidentInformation.date",
			"incidentInformation.time",
			"incidentInformation.location",
			"incidentInformation.description",
			"involvedParties.claimant",
			"involvedParties.contactDetails",
			"assetDetails.assetType",
			"assetDetails.assetId",
			"assetDetails.estimatedDamage",
			"otherFields.claimType",
			"otherFields.initialEstimate",
		},
		Routing: RoutingConfig{
			FastTrackThreshold: 25000,
			FraudKeywords: []string{
				"fraud", "fraudulent", "inconsistent", "staged",
				"suspicious", "fake", "fabricated",
			},
			InjuryKeywords: []string{
				"injury", "bodily injury", "personal injury", "medical",
				"hospitalization", "hospital", "death", "fatality", "wounded",
			},
		},
		Validation: ValidationConfig{
			DiscrepancyRatio:      0.5,
			MinPolicyNumberLength: 3,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default; regex fallback handles extraction
			Timeout:   30,
			MaxTokens: 1500,
			RateLimit: 2,
			RateBurst: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		History: HistoryConfig{
			Capacity: 1000,
		},
	}
}
