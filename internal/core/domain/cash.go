package domain

import "time"

// CashPayload holds the operator-entered figures of a snapshot.
type CashPayload struct {
	Revenue *float64 `json:"revenue"`
	Costs   *float64 `json:"costs"`
	Notes   string   `json:"notes"`
}

// CashSnapshot is one append-only cash record for a venue week.
// Corrections reference the original via CorrectsSnapshotID; prior records
// are never mutated.
type CashSnapshot struct {
	SnapshotID         string      `json:"id"`
	VenueID            string      `json:"venueId"`
	WeekStartDate      string      `json:"weekStartDate"`
	IsCorrection       bool        `json:"isCorrection"`
	CorrectsSnapshotID *string     `json:"correctsSnapshotId"`
	CorrectionReason   *string     `json:"correctionReason"`
	Payload            CashPayload `json:"payload"`
	CreatedBy          string      `json:"createdBy"`
	CreatedAt          time.Time   `json:"createdAt"`
}
