package extract

import (
	"reflect"
	"testing"
)

const acordSample = `FIRST NOTICE OF LOSS
AUTOMOBILE LOSS NOTICE

POLICY NUMBER CARRIER NAIC CODE
POL-2025-88421 Iffco Tokio General Insurance 12345

POLICYHOLDER NAME AND ADDRESS EFFECTIVE DATES
Rajesh Kumar Sharma 01/04/2025 to 31/03/2026

DATE OF LOSS (DD/MM/YYYY) TIME OF LOSS
01/02/2025 10:30 AM

LOCATION OF LOSS
MG Road, Bengaluru, Karnataka

DESCRIPTION OF ACCIDENT
While reversing out of a parking slot the vehicle scraped
a concrete pillar, damaging the rear bumper.
INSURED VEHICLE

ASSET TYPE  MAKE  MODEL
Private Car  Maruti Suzuki  Swift VXI

V.I.N. / ASSET ID
MA3EJKD1S00412345

ESTIMATED DAMAGE (INR) INITIAL ESTIMATE (INR)
8,500 8,500

REPORTED BY DATE REPORTED
Rajesh Kumar Sharma (Self) 02/02/2025

CONTACT PHONE
+91 98765 43210

THIRD PARTY NAME AND CONTACT
None - single vehicle accident

CLAIM TYPE ATTACHMENTS
Auto - Property Damage Photos (3), Police spot report
`

func strVal(t *testing.T, name string, got *string) string {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected a value, got nil", name)
	}
	return *got
}

func TestPatternExtractor_FormLayout(t *testing.T) {
	fields := NewPatternExtractor().Extract(acordSample)

	checks := []struct {
		name string
		got  *string
		want string
	}{
		{"policyNumber", fields.PolicyInformation.PolicyNumber, "POL-2025-88421"},
		{"policyholderName", fields.PolicyInformation.PolicyholderName, "Rajesh Kumar Sharma"},
		{"effectiveDates", fields.PolicyInformation.EffectiveDates, "01/04/2025 to 31/03/2026"},
		{"date", fields.IncidentInformation.Date, "01/02/2025"},
		{"time", fields.IncidentInformation.Time, "10:30 AM"},
		{"location", fields.IncidentInformation.Location, "MG Road, Bengaluru, Karnataka"},
		{"description", fields.IncidentInformation.Description, "While reversing out of a parking slot the vehicle scraped a concrete pillar, damaging the rear bumper."},
		{"claimant", fields.InvolvedParties.Claimant, "Rajesh Kumar Sharma"},
		{"thirdParties", fields.InvolvedParties.ThirdParties, "None - single vehicle accident"},
		{"contactDetails", fields.InvolvedParties.ContactDetails, "+91 98765 43210"},
		{"assetType", fields.AssetDetails.AssetType, "Private Car"},
		{"assetId", fields.AssetDetails.AssetID, "MA3EJKD1S00412345"},
		{"estimatedDamage", fields.AssetDetails.EstimatedDamage, "8500"},
		{"claimType", fields.OtherFields.ClaimType, "Auto - Property Damage"},
		{"attachments", fields.OtherFields.Attachments, "Photos (3), Police spot report"},
		{"initialEstimate", fields.OtherFields.InitialEstimate, "8500"},
	}

	for _, c := range checks {
		if got := strVal(t, c.name, c.got); got != c.want {
			t.Errorf("%s = %q, want %q", c.name, got, c.want)
		}
	}

	if got := fields.FieldCount(); got != 16 {
		t.Errorf("FieldCount = %d, want 16", got)
	}
}

func TestPatternExtractor_InlineLayout(t *testing.T) {
	text := `Claim intimation received by email.
Policy No: POL-2025-104
Insured Name: Anita Desai
Date of Incident: 03/05/2025
Location: Pune
Description: Rear bumper dent after collision
Estimated Damage: Rs. 12,000
Contact +91 98222 11000`

	fields := NewPatternExtractor().Extract(text)

	checks := []struct {
		name string
		got  *string
		want string
	}{
		{"policyNumber", fields.PolicyInformation.PolicyNumber, "POL-2025-104"},
		{"policyholderName", fields.PolicyInformation.PolicyholderName, "Anita Desai"},
		{"date", fields.IncidentInformation.Date, "03/05/2025"},
		{"location", fields.IncidentInformation.Location, "Pune"},
		{"description", fields.IncidentInformation.Description, "Rear bumper dent after collision"},
		{"estimatedDamage", fields.AssetDetails.EstimatedDamage, "12000"},
		{"contactDetails", fields.InvolvedParties.ContactDetails, "+91 98222 11000"},
	}
	for _, c := range checks {
		if got := strVal(t, c.name, c.got); got != c.want {
			t.Errorf("%s = %q, want %q", c.name, got, c.want)
		}
	}

	// No reporter line: the policyholder stands in as claimant.
	if got := strVal(t, "claimant", fields.InvolvedParties.Claimant); got != "Anita Desai" {
		t.Errorf("claimant = %q, want %q", got, "Anita Desai")
	}

	if fields.PolicyInformation.EffectiveDates != nil {
		t.Errorf("effectiveDates = %q, want nil", *fields.PolicyInformation.EffectiveDates)
	}
	if fields.IncidentInformation.Time != nil {
		t.Errorf("time = %q, want nil", *fields.IncidentInformation.Time)
	}
}

func TestPatternExtractor_NoMatches(t *testing.T) {
	fields := NewPatternExtractor().Extract("lorem ipsum dolor sit amet consectetur adipiscing elit")

	if got := fields.FieldCount(); got != 0 {
		t.Errorf("FieldCount = %d, want 0 for unstructured text", got)
	}
}

func TestPatternExtractor_Deterministic(t *testing.T) {
	extractor := NewPatternExtractor()

	first := extractor.Extract(acordSample)
	second := extractor.Extract(acordSample)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input")
	}
}
