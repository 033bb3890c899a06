// Package route implements the priority-ordered routing rule engine.
//
// Rules are an explicit ordered sequence evaluated first-match-wins, so the
// mutual-exclusivity and audit-trail properties hold by construction:
//
//	1. Investigation Flag   - fraud keyword in the incident description
//	2. Specialist Queue     - injury keyword in the claim type
//	3. Manual Review        - any mandatory field missing
//	4. Fast-track           - damage below threshold, nothing missing
//	5. Standard Processing  - unconditional default
package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
)

// input bundles what a rule predicate may inspect
type input struct {
	fields     *model.FieldSet
	validation model.ValidationResult
	config     model.RoutingConfig
}

// rule is one entry of the priority table. The predicate reports whether
// the rule fires and returns the values its reasoning echoes.
type rule struct {
	priority int
	route    model.Route
	match    func(in input) (bool, string)
}

// Router evaluates the fixed rule table. It is deterministic and
// side-effect-free: every call re-evaluates from scratch, and identical
// inputs always produce identical decisions.
type Router struct {
	config model.RoutingConfig
	rules  []rule
}

// NewRouter creates a new router with the standard five-rule table
func NewRouter(config model.RoutingConfig) *Router {
	return &Router{
		config: config,
		rules: []rule{
			{priority: 1, route: model.RouteInvestigation, match: matchFraud},
			{priority: 2, route: model.RouteSpecialist, match: matchInjury},
			{priority: 3, route: model.RouteManualReview, match: matchMissingFields},
			{priority: 4, route: model.RouteFastTrack, match: matchFastTrack},
			{priority: 5, route: model.RouteStandard, match: matchDefault},
		},
	}
}

// Route determines the workflow for a claim. Exactly one of the five routes
// is always returned; rule 5 is unconditional, so exhaustion is structurally
// impossible.
func (r *Router) Route(ctx context.Context, fields *model.FieldSet, validation model.ValidationResult) model.RouteDecision {
	in := input{fields: fields, validation: validation, config: r.config}

	for _, rule := range r.rules {
		matched, reasoning := rule.match(in)
		if !matched {
			continue
		}

		decision := model.RouteDecision{
			Route:           rule.route,
			Reasoning:       reasoning,
			PriorityMatched: rule.priority,
		}
		logging.From(ctx).Info("routing trace",
			"route", string(decision.Route),
			"priority", decision.PriorityMatched,
			"reasoning", decision.Reasoning)
		return decision
	}

	// Unreachable: the default rule always matches
	panic("route: rule table exhausted")
}

// matchFraud fires when the incident description contains a fraud keyword
// (case-insensitive substring match)
func matchFraud(in input) (bool, string) {
	description := stringValue(in.fields.IncidentInformation.Description)
	matched := containedKeywords(description, in.config.FraudKeywords)
	if len(matched) == 0 {
		return false, ""
	}
	return true, fmt.Sprintf("Description contains fraud-related keywords: %s", strings.Join(matched, ", "))
}

// matchInjury fires when the claim type contains an injury keyword
func matchInjury(in input) (bool, string) {
	claimType := stringValue(in.fields.OtherFields.ClaimType)
	matched := containedKeywords(claimType, in.config.InjuryKeywords)
	if len(matched) == 0 {
		return false, ""
	}
	return true, fmt.Sprintf("Injury-related claim type %q (matched: %s)",
		strings.TrimSpace(stringValue(in.fields.OtherFields.ClaimType)), strings.Join(matched, ", "))
}

// matchMissingFields fires when any mandatory field is missing
func matchMissingFields(in input) (bool, string) {
	missing := in.validation.MissingFields
	if len(missing) == 0 {
		return false, ""
	}
	return true, fmt.Sprintf("Missing mandatory fields: %s (%d field(s))",
		strings.Join(missing, ", "), len(missing))
}

// matchFastTrack fires when the damage amount parses below the threshold
// and no mandatory field is missing. An unparseable amount cannot qualify.
func matchFastTrack(in input) (bool, string) {
	if len(in.validation.MissingFields) > 0 {
		return false, ""
	}

	damage := in.fields.AssetDetails.EstimatedDamage
	if damage == nil {
		return false, ""
	}
	amount, ok := model.ParseAmount(*damage)
	if !ok || amount >= in.config.FastTrackThreshold {
		return false, ""
	}

	return true, fmt.Sprintf("Estimated damage %.0f is below fast-track threshold of %.0f. All mandatory fields are present",
		amount, in.config.FastTrackThreshold)
}

// matchDefault always fires
func matchDefault(in input) (bool, string) {
	if damage := in.fields.AssetDetails.EstimatedDamage; damage != nil {
		if amount, ok := model.ParseAmount(*damage); ok {
			return true, fmt.Sprintf("Estimated damage %.0f meets or exceeds fast-track threshold of %.0f. Routed to standard processing",
				amount, in.config.FastTrackThreshold)
		}
		return true, "Could not evaluate estimated damage amount. Routed to standard processing"
	}
	return true, "No special conditions detected. Routed to standard processing"
}

// containedKeywords returns the configured keywords found in text, in
// configuration order
func containedKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
