package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FindingType classifies a guardian observation.
type FindingType string

const (
	FindingMissingEvidence   FindingType = "missing_evidence"
	FindingStaleBudget       FindingType = "stale_budget"
	FindingUnconfirmedLabour FindingType = "unconfirmed_labour_plan"
	FindingCashDiscrepancy   FindingType = "cash_discrepancy"
	FindingDuplicateSnapshot FindingType = "duplicate_snapshot"
	FindingExtractionStalled FindingType = "extraction_stalled"
)

// GuardianFinding is a backend-detected data-quality or anomaly
// observation for a venue week.
type GuardianFinding struct {
	FindingID     string          `json:"id"`
	VenueID       string          `json:"venueId"`
	WeekStartDate string          `json:"weekStartDate"`
	Type          FindingType     `json:"type"`
	Severity      Severity        `json:"severity"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// FindingSummary counts findings per type across a tenant.
type FindingSummary map[FindingType]int

// FindingPayload is the structural shape of a finding payload.
type FindingPayload struct {
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
	EvidenceIDs []string       `json:"evidenceIds"`
}

// DecodePayload validates and decodes the finding payload. A description
// is the one field every finding type carries.
func (f GuardianFinding) DecodePayload() (*FindingPayload, error) {
	var payload FindingPayload
	if err := json.Unmarshal(f.Payload, &payload); err != nil {
		return nil, fmt.Errorf("finding %s: malformed payload: %w", f.FindingID, err)
	}
	if payload.Description == "" {
		return nil, fmt.Errorf("finding %s: payload missing description", f.FindingID)
	}
	return &payload, nil
}
