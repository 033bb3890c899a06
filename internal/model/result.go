package model

import "time"

// Route is one of the five terminal workflow classifications a claim can
// receive. The set is closed: routing always produces exactly one of these.
type Route string

const (
	RouteInvestigation Route = "Investigation Flag"
	RouteSpecialist    Route = "Specialist Queue"
	RouteManualReview  Route = "Manual Review"
	RouteFastTrack     Route = "Fast-track"
	RouteStandard      Route = "Standard Processing"
)

// Inconsistency codes raised by the validator
const (
	CodeFutureIncidentDate  = "future_incident_date"
	CodeNonPositiveDamage   = "non_positive_damage"
	CodeEstimateDiscrepancy = "estimate_discrepancy"
	CodeShortPolicyNumber   = "short_policy_number"
)

// Inconsistency is a cross-field consistency flag. Flags are advisory:
// they are reported to the caller but never drive routing.
type Inconsistency struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a FieldSet.
// MissingFields holds leaf field names from the configured mandatory list
// whose value was null or blank, in mandatory-list order.
type ValidationResult struct {
	MissingFields   []string        `json:"missingFields"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
}

// RouteDecision is the routing outcome for one claim. Exactly one route is
// produced per claim, fully determined by the field set, the validation
// result and the static rule table.
type RouteDecision struct {
	Route           Route  `json:"route"`
	Reasoning       string `json:"reasoning"`
	PriorityMatched int    `json:"priorityMatched"` // 1 (highest) through 5 (default)
}

// ClaimResult is the complete pipeline output for one claim, in the shape
// consumed by the UI/API shell.
type ClaimResult struct {
	ClaimID          string          `json:"claimId"`
	Filename         string          `json:"filename"`
	ProcessedAt      time.Time       `json:"processedAt"`
	ExtractedFields  FieldSet        `json:"extractedFields"`
	MissingFields    []string        `json:"missingFields"`
	Inconsistencies  []Inconsistency `json:"inconsistencies"`
	RecommendedRoute Route           `json:"recommendedRoute"`
	Reasoning        string          `json:"reasoning"`
	RawTextPreview   string          `json:"rawTextPreview,omitempty"`
}
