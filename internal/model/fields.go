package model

import "strings"

// FieldSet is the structured view of one FNOL document.
// The section/field names are fixed and exhaustive; absent data is a JSON
// null, never an omitted key and never an empty string standing in for a
// value. A FieldSet is built once by the extractor and immutable afterwards.
type FieldSet struct {
	PolicyInformation   PolicyInformation   `json:"policyInformation"`
	IncidentInformation IncidentInformation `json:"incidentInformation"`
	InvolvedParties     InvolvedParties     `json:"involvedParties"`
	AssetDetails        AssetDetails        `json:"assetDetails"`
	OtherFields         OtherFields         `json:"otherFields"`
}

// PolicyInformation identifies the policy the claim is filed under
type PolicyInformation struct {
	PolicyNumber     *string `json:"policyNumber"`
	PolicyholderName *string `json:"policyholderName"`
	EffectiveDates   *string `json:"effectiveDates"`
}

// IncidentInformation describes when, where and what happened
type IncidentInformation struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// InvolvedParties lists the people connected to the incident
type InvolvedParties struct {
	Claimant       *string `json:"claimant"`
	ThirdParties   *string `json:"thirdParties"`
	ContactDetails *string `json:"contactDetails"`
}

// AssetDetails describes the damaged asset
type AssetDetails struct {
	AssetType       *string `json:"assetType"`
	AssetID         *string `json:"assetId"`
	EstimatedDamage *string `json:"estimatedDamage"`
}

// OtherFields carries claim metadata outside the four core sections
type OtherFields struct {
	ClaimType       *string `json:"claimType"`
	Attachments     *string `json:"attachments"`
	InitialEstimate *string `json:"initialEstimate"`
}

// FieldPaths enumerates every field as a dotted "section.field" path, in
// document order. Configuration (mandatory lists) uses these paths.
var FieldPaths = []string{
	"policyInformation.policyNumber",
	"policyInformation.policyholderName",
	"policyInformation.effectiveDates",
	"incidentInformation.date",
	"incidentInformation.time",
	"incidentInformation.location",
	"incidentInformation.description",
	"involvedParties.claimant",
	"involvedParties.thirdParties",
	"involvedParties.contactDetails",
	"assetDetails.assetType",
	"assetDetails.assetId",
	"assetDetails.estimatedDamage",
	"otherFields.claimType",
	"otherFields.attachments",
	"otherFields.initialEstimate",
}

// Resolve returns the value at a dotted "section.field" path.
// The second return is false for unknown paths.
func (f *FieldSet) Resolve(path string) (*string, bool) {
	switch path {
	case "policyInformation.policyNumber":
		return f.PolicyInformation.PolicyNumber, true
	case "policyInformation.policyholderName":
		return f.PolicyInformation.PolicyholderName, true
	case "policyInformation.effectiveDates":
		return f.PolicyInformation.EffectiveDates, true
	case "incidentInformation.date":
		return f.IncidentInformation.Date, true
	case "incidentInformation.time":
		return f.IncidentInformation.Time, true
	case "incidentInformation.location":
		return f.IncidentInformation.Location, true
	case "incidentInformation.description":
		return f.IncidentInformation.Description, true
	case "involvedParties.claimant":
		return f.InvolvedParties.Claimant, true
	case "involvedParties.thirdParties":
		return f.InvolvedParties.ThirdParties, true
	case "involvedParties.contactDetails":
		return f.InvolvedParties.ContactDetails, true
	case "assetDetails.assetType":
		return f.AssetDetails.AssetType, true
	case "assetDetails.assetId":
		return f.AssetDetails.AssetID, true
	case "assetDetails.estimatedDamage":
		return f.AssetDetails.EstimatedDamage, true
	case "otherFields.claimType":
		return f.OtherFields.ClaimType, true
	case "otherFields.attachments":
		return f.OtherFields.Attachments, true
	case "otherFields.initialEstimate":
		return f.OtherFields.InitialEstimate, true
	default:
		return nil, false
	}
}

// FieldCount returns the number of populated fields (non-null and non-blank)
func (f *FieldSet) FieldCount() int {
	count := 0
	for _, path := range FieldPaths {
		if v, ok := f.Resolve(path); ok && v != nil && strings.TrimSpace(*v) != "" {
			count++
		}
	}
	return count
}

// LeafName returns the field part of a dotted "section.field" path.
// Leaf names are unique across the fixed schema, so the external payload
// reports them without the section prefix.
func LeafName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// StringPtr returns a pointer to s. Convenience for building field sets.
func StringPtr(s string) *string {
	return &s
}
