package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimflow/internal/model"
)

// PatternExtractor is the deterministic fallback extraction strategy.
// Patterns are tuned for the ACORD Automobile Loss Notice layout, where a
// label line is followed by a value line and two fields often share one
// label/value line pair. Generic "Label: value" forms are tried second.
// Fields with no match stay null; same input always yields the same output.
type PatternExtractor struct{}

// NewPatternExtractor creates a new pattern extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var (
	// Policy information
	rePolicyNumberForm   = regexp.MustCompile(`(?i)POLICY\s*NUMBER.*\n([A-Z0-9][A-Z0-9\-/]+)`)
	rePolicyNumberInline = regexp.MustCompile(`(?i)Policy\s*(?:Number|No\.?|#)[:\s]*([A-Z0-9\-/]+)`)
	rePolicyholderForm   = regexp.MustCompile(`(?i)POLICYHOLDER\s*NAME.*\n(.+)`)
	reEffectiveDates     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4}\s*to\s*\d{2}/\d{2}/\d{4})`)
	rePolicyholderLoose  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Policyholder|Insured)\s*(?:Name)?[:\s]+([A-Za-z][\w\s.]+)`),
		regexp.MustCompile(`(?i)Name\s*of\s*Insured[:\s]+([A-Za-z][\w\s.]+)`),
	}

	// Incident information
	reLossDateTime      = regexp.MustCompile(`(?i)DATE\s*OF\s*LOSS.*\n(\d{2}/\d{2}/\d{4})\s+([\d:]+\s*[AP]M)`)
	reLossDate          = regexp.MustCompile(`(?i)DATE\s*OF\s*LOSS.*\n(\d{2}/\d{2}/\d{4})`)
	reDateInline        = regexp.MustCompile(`(?i)Date\s*of\s*(?:Loss|Incident)[:\s]*([\d/\-]+)`)
	reTimeToken         = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M)`)
	reLocationForm      = regexp.MustCompile(`(?i)LOCATION\s*OF\s*LOSS\n(.+)`)
	reLocationInline    = regexp.MustCompile(`(?i)Location[:\s]+(.+)`)
	reDescriptionForm   = regexp.MustCompile(`(?i)DESCRIPTION\s*OF\s*ACCIDENT\n([\s\S]+?)\n(?:INSURED\s+VEHICLE|ASSET|[A-Z]{4,}\s+VEHICLE)`)
	reDescriptionInline = regexp.MustCompile(`(?is)Description[:\s]+(.+?)(?:\n[A-Z]|$)`)

	// Involved parties
	reReportedBy    = regexp.MustCompile(`(?i)REPORTED\s*BY\s+DATE\s*REPORTED\n(.+)`)
	reDateToken     = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	reParenthetical = regexp.MustCompile(`\(.*?\)`)
	reThirdParty    = regexp.MustCompile(`(?i)THIRD\s*PARTY\s*NAME.*\n(.+)`)
	reContactPhone  = regexp.MustCompile(`(?i)CONTACT\s*PHONE\n(.+)`)
	reEmailForm     = regexp.MustCompile(`(?i)EMAIL\s*ADDRESS\n([\w.\-]+@[\w.\-]+\.\w+)`)
	rePhoneLoose    = regexp.MustCompile(`\+91[\-\s]?\d[\d\-\s]{8,}`)
	reEmailLoose    = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)

	// Asset details
	reAssetTypeForm = regexp.MustCompile(`(?i)ASSET\s*TYPE.*\n(.+)`)
	reAssetIDForm   = regexp.MustCompile(`(?i)(?:V\.?I\.?N\.?\s*/?\s*ASSET\s*ID|ASSET\s*ID).*\n(.+)`)
	reVinToken      = regexp.MustCompile(`[A-Z0-9]{10,}`)
	reModelVin      = regexp.MustCompile(`(?i)MODEL.*\n.*?([A-Z0-9]{10,})`)
	reDamageForm    = regexp.MustCompile(`(?i)ESTIMATED\s*DAMAGE\s*\(INR\).*\n([\d,]+)(?:\s+([\d,]+))?`)
	reDamageInline  = regexp.MustCompile(`(?i)(?:Estimated\s*Damage|Damage\s*Amount)[:\s]*(?:₹|Rs\.?|INR)?\s*([\d,]+)`)

	// Other fields
	reClaimTypeAttach = regexp.MustCompile(`(?i)CLAIM\s*TYPE\s+ATTACHMENTS\n(.+)`)
	reAttachmentToken = regexp.MustCompile(`(?i)((?:Photos?|Documents?|FIR|Report|Receipt|Hospital|Records?)[\s\S]*)`)
	reMultiSpace      = regexp.MustCompile(`\s{2,}`)
	reClaimTypeForm   = regexp.MustCompile(`(?i)CLAIM\s*TYPE.*\n(.+)`)
	reAttachmentsForm = regexp.MustCompile(`(?i)ATTACHMENTS.*\n(.+)`)
	reInitialEstimate = regexp.MustCompile(`(?i)INITIAL\s*ESTIMATE.*\n.*?([\d,]+)`)
)

// Extract extracts fields from raw text using pattern matching.
// Fields that cannot be matched are left null; an all-null FieldSet is a
// valid outcome, not an error.
func (e *PatternExtractor) Extract(rawText string) *model.FieldSet {
	fields := &model.FieldSet{}

	e.extractPolicyInformation(rawText, fields)
	e.extractIncidentInformation(rawText, fields)
	e.extractInvolvedParties(rawText, fields)
	e.extractAssetDetails(rawText, fields)
	e.extractOtherFields(rawText, fields)

	return fields
}

func (e *PatternExtractor) extractPolicyInformation(text string, fields *model.FieldSet) {
	// Policy number: "POLICY NUMBER CARRIER\nVALUE ..."
	if m := rePolicyNumberForm.FindStringSubmatch(text); m != nil {
		fields.PolicyInformation.PolicyNumber = trimmedPtr(m[1])
	} else if m := rePolicyNumberInline.FindStringSubmatch(text); m != nil {
		fields.PolicyInformation.PolicyNumber = trimmedPtr(m[1])
	}

	// Policyholder name and effective dates often share a value line:
	// "POLICYHOLDER NAME ... EFFECTIVE DATES\nRajesh Kumar Sharma 01/04/2025 to 31/03/2026"
	if m := rePolicyholderForm.FindStringSubmatch(text); m != nil {
		line := strings.TrimSpace(m[1])
		name := line
		if loc := reEffectiveDates.FindStringIndex(line); loc != nil {
			name = strings.TrimSpace(line[:loc[0]])
			fields.PolicyInformation.EffectiveDates = trimmedPtr(line[loc[0]:loc[1]])
		}
		if len(name) > 2 {
			fields.PolicyInformation.PolicyholderName = trimmedPtr(name)
		}
	} else {
		for _, re := range rePolicyholderLoose {
			if m := re.FindStringSubmatch(text); m != nil {
				fields.PolicyInformation.PolicyholderName = trimmedPtr(firstLine(m[1]))
				break
			}
		}
	}

	if fields.PolicyInformation.EffectiveDates == nil {
		if m := reEffectiveDates.FindStringSubmatch(text); m != nil {
			fields.PolicyInformation.EffectiveDates = trimmedPtr(m[1])
		}
	}
}

func (e *PatternExtractor) extractIncidentInformation(text string, fields *model.FieldSet) {
	// "DATE OF LOSS (DD/MM/YYYY) TIME OF LOSS\n01/02/2026 10:30 AM"
	if m := reLossDateTime.FindStringSubmatch(text); m != nil {
		fields.IncidentInformation.Date = trimmedPtr(m[1])
		fields.IncidentInformation.Time = trimmedPtr(m[2])
	} else {
		if m := reLossDate.FindStringSubmatch(text); m != nil {
			fields.IncidentInformation.Date = trimmedPtr(m[1])
		} else if m := reDateInline.FindStringSubmatch(text); m != nil {
			fields.IncidentInformation.Date = trimmedPtr(m[1])
		}

		if m := reTimeToken.FindStringSubmatch(text); m != nil {
			fields.IncidentInformation.Time = trimmedPtr(m[1])
		}
	}

	if m := reLocationForm.FindStringSubmatch(text); m != nil {
		fields.IncidentInformation.Location = trimmedPtr(m[1])
	} else if m := reLocationInline.FindStringSubmatch(text); m != nil {
		fields.IncidentInformation.Location = trimmedPtr(m[1])
	}

	if m := reDescriptionForm.FindStringSubmatch(text); m != nil {
		fields.IncidentInformation.Description = trimmedPtr(collapseWhitespace(m[1]))
	} else if m := reDescriptionInline.FindStringSubmatch(text); m != nil {
		fields.IncidentInformation.Description = trimmedPtr(collapseWhitespace(m[1]))
	}
}

func (e *PatternExtractor) extractInvolvedParties(text string, fields *model.FieldSet) {
	// Claimant from "REPORTED BY  DATE REPORTED\nName (Self) 02/02/2026"
	if m := reReportedBy.FindStringSubmatch(text); m != nil {
		name := reDateToken.ReplaceAllString(m[1], "")
		name = reParenthetical.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)
		if len(name) > 2 {
			fields.InvolvedParties.Claimant = trimmedPtr(name)
		}
	}
	// Reporter absent: the policyholder is the claimant
	if fields.InvolvedParties.Claimant == nil {
		fields.InvolvedParties.Claimant = fields.PolicyInformation.PolicyholderName
	}

	if m := reThirdParty.FindStringSubmatch(text); m != nil {
		// "None - single vehicle accident" is still worth keeping
		fields.InvolvedParties.ThirdParties = trimmedPtr(m[1])
	}

	var contacts []string
	if m := reContactPhone.FindStringSubmatch(text); m != nil {
		contacts = append(contacts, strings.TrimSpace(m[1]))
	}
	if m := reEmailForm.FindStringSubmatch(text); m != nil {
		contacts = append(contacts, strings.TrimSpace(m[1]))
	}
	if len(contacts) == 0 {
		if m := rePhoneLoose.FindString(text); m != "" {
			contacts = append(contacts, strings.TrimSpace(m))
		}
		if m := reEmailLoose.FindString(text); m != "" {
			contacts = append(contacts, strings.TrimSpace(m))
		}
	}
	if len(contacts) > 0 {
		fields.InvolvedParties.ContactDetails = trimmedPtr(strings.Join(contacts, ", "))
	}
}

func (e *PatternExtractor) extractAssetDetails(text string, fields *model.FieldSet) {
	if m := reAssetTypeForm.FindStringSubmatch(text); m != nil {
		line := strings.TrimSpace(m[1])
		if parts := reMultiSpace.Split(line, -1); len(parts) > 0 {
			fields.AssetDetails.AssetType = trimmedPtr(parts[0])
		}
	}

	if m := reAssetIDForm.FindStringSubmatch(text); m != nil {
		if vin := reVinToken.FindString(m[1]); vin != "" {
			fields.AssetDetails.AssetID = trimmedPtr(vin)
		}
	}
	if fields.AssetDetails.AssetID == nil {
		if m := reModelVin.FindStringSubmatch(text); m != nil {
			fields.AssetDetails.AssetID = trimmedPtr(m[1])
		}
	}

	// "ESTIMATED DAMAGE (INR) INITIAL ESTIMATE (INR)\n8,500 8,500"
	if m := reDamageForm.FindStringSubmatch(text); m != nil {
		fields.AssetDetails.EstimatedDamage = trimmedPtr(stripCommas(m[1]))
		if m[2] != "" {
			fields.OtherFields.InitialEstimate = trimmedPtr(stripCommas(m[2]))
		}
	} else if m := reDamageInline.FindStringSubmatch(text); m != nil {
		fields.AssetDetails.EstimatedDamage = trimmedPtr(stripCommas(m[1]))
	}
}

func (e *PatternExtractor) extractOtherFields(text string, fields *model.FieldSet) {
	// "CLAIM TYPE ATTACHMENTS\nAuto - Property Damage Photos (3), Police spot report"
	if m := reClaimTypeAttach.FindStringSubmatch(text); m != nil {
		line := strings.TrimSpace(m[1])
		if loc := reAttachmentToken.FindStringIndex(line); loc != nil {
			claimType := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[:loc[0]]), "-"))
			attachments := strings.TrimSpace(line[loc[0]:])
			if claimType != "" {
				fields.OtherFields.ClaimType = trimmedPtr(claimType)
			}
			if attachments != "" {
				fields.OtherFields.Attachments = trimmedPtr(attachments)
			}
		} else if parts := reMultiSpace.Split(line, -1); len(parts) > 0 {
			fields.OtherFields.ClaimType = trimmedPtr(parts[0])
			if len(parts) > 1 {
				fields.OtherFields.Attachments = trimmedPtr(parts[1])
			}
		}
	} else {
		if m := reClaimTypeForm.FindStringSubmatch(text); m != nil {
			fields.OtherFields.ClaimType = trimmedPtr(m[1])
		}
		if m := reAttachmentsForm.FindStringSubmatch(text); m != nil {
			fields.OtherFields.Attachments = trimmedPtr(m[1])
		}
	}

	if fields.OtherFields.InitialEstimate == nil {
		if m := reInitialEstimate.FindStringSubmatch(text); m != nil {
			fields.OtherFields.InitialEstimate = trimmedPtr(stripCommas(m[1]))
		}
	}
}

// Helper functions

func trimmedPtr(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
