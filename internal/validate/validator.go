package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/claimflow/internal/logging"
	"github.com/ppiankov/claimflow/internal/model"
)

// incidentDateFormats are tried in order. Documents use DD/MM/YYYY first;
// the remaining forms cover ISO and US-style dates.
var incidentDateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
}

// Validator checks a FieldSet for missing mandatory fields and cross-field
// inconsistencies. Validation is a pure function of its inputs: it raises
// flags, it never errors. Unparseable dates and amounts count as "cannot
// evaluate" and raise no flag, so malformed-but-present data does not block
// automated routing.
type Validator struct {
	mandatory             []string
	discrepancyRatio      float64
	minPolicyNumberLength int

	// Now is injectable for the future-date check in tests
	Now func() time.Time
}

// NewValidator creates a new validator. mandatory holds dotted
// "section.field" paths; unknown paths are ignored.
func NewValidator(mandatory []string, cfg model.ValidationConfig) *Validator {
	ratio := cfg.DiscrepancyRatio
	if ratio <= 0 {
		ratio = 0.5
	}
	minLen := cfg.MinPolicyNumberLength
	if minLen <= 0 {
		minLen = 3
	}

	return &Validator{
		mandatory:             mandatory,
		discrepancyRatio:      ratio,
		minPolicyNumberLength: minLen,
		Now:                   time.Now,
	}
}

// Validate checks fields against the mandatory list and the consistency
// rules. All checks are evaluated independently, never short-circuited.
func (v *Validator) Validate(ctx context.Context, fields *model.FieldSet) model.ValidationResult {
	result := model.ValidationResult{
		MissingFields:   v.findMissingFields(fields),
		Inconsistencies: v.findInconsistencies(fields),
	}

	logger := logging.From(ctx)
	logger.Info("validation trace",
		"missing", len(result.MissingFields),
		"inconsistencies", len(result.Inconsistencies))
	for _, inc := range result.Inconsistencies {
		logger.Warn("inconsistency", "code", inc.Code, "message", inc.Message)
	}

	return result
}

// findMissingFields returns leaf names of mandatory fields whose value is
// null or blank after trimming, in mandatory-list order
func (v *Validator) findMissingFields(fields *model.FieldSet) []string {
	// Non-nil so an empty result marshals as a JSON array, not null
	missing := []string{}
	for _, path := range v.mandatory {
		value, ok := fields.Resolve(path)
		if !ok {
			continue
		}
		if value == nil || strings.TrimSpace(*value) == "" {
			missing = append(missing, model.LeafName(path))
		}
	}
	return missing
}

func (v *Validator) findInconsistencies(fields *model.FieldSet) []model.Inconsistency {
	issues := []model.Inconsistency{}

	// Incident date strictly after today
	if date := fields.IncidentInformation.Date; date != nil {
		if parsed, ok := parseIncidentDate(*date); ok && parsed.After(v.Now()) {
			issues = append(issues, model.Inconsistency{
				Code:    model.CodeFutureIncidentDate,
				Message: fmt.Sprintf("Incident date %s is in the future", *date),
			})
		}
	}

	damage, damageOK := amountField(fields.AssetDetails.EstimatedDamage)
	if damageOK && damage <= 0 {
		issues = append(issues, model.Inconsistency{
			Code:    model.CodeNonPositiveDamage,
			Message: fmt.Sprintf("Estimated damage amount %.0f is not positive", damage),
		})
	}

	// Damage vs. initial estimate discrepancy. Advisory only: the router
	// never acts on it.
	if estimate, ok := amountField(fields.OtherFields.InitialEstimate); ok && damageOK && damage > 0 && estimate > 0 {
		ratio := diffRatio(damage, estimate)
		if ratio > v.discrepancyRatio {
			issues = append(issues, model.Inconsistency{
				Code: model.CodeEstimateDiscrepancy,
				Message: fmt.Sprintf("Estimated damage %.0f and initial estimate %.0f differ by %.0f%% (threshold %.0f%%)",
					damage, estimate, ratio*100, v.discrepancyRatio*100),
			})
		}
	}

	if policy := fields.PolicyInformation.PolicyNumber; policy != nil {
		trimmed := strings.TrimSpace(*policy)
		if trimmed != "" && len(trimmed) < v.minPolicyNumberLength {
			issues = append(issues, model.Inconsistency{
				Code:    model.CodeShortPolicyNumber,
				Message: fmt.Sprintf("Policy number %q is shorter than %d characters", trimmed, v.minPolicyNumberLength),
			})
		}
	}

	return issues
}

// parseIncidentDate tries the supported date layouts in order
func parseIncidentDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range incidentDateFormats {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func amountField(value *string) (float64, bool) {
	if value == nil {
		return 0, false
	}
	return model.ParseAmount(*value)
}

func diffRatio(a, b float64) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	max := a
	if b > a {
		max = b
	}
	return diff / max
}
