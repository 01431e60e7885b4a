package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MondayBrief is a backend-generated weekly operational summary. The
// payload schema belongs to the brief generator; it is decoded on read and
// rendered without recomputation.
type MondayBrief struct {
	BriefID       string          `json:"id"`
	VenueID       string          `json:"venueId"`
	WeekStartDate string          `json:"weekStartDate"`
	Payload       json.RawMessage `json:"payload"`
	GeneratedBy   string          `json:"generatedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BriefSummaryLine is a planned/actual/variance triple inside a brief
// section. Pointers keep "field omitted" distinct from zero.
type BriefSummaryLine struct {
	Planned  *float64 `json:"planned"`
	Actual   *float64 `json:"actual"`
	Variance *float64 `json:"variance"`
}

// BriefPayload is the structural shape of a Monday brief payload.
type BriefPayload struct {
	Headline       string           `json:"headline"`
	RevenueSummary BriefSummaryLine `json:"revenueSummary"`
	LabourSummary  BriefSummaryLine `json:"labourSummary"`
	CashPosition   *float64         `json:"cashPosition"`
	Highlights     []string         `json:"highlights"`
	Actions        []string         `json:"actions"`
}

// DecodePayload validates and decodes the brief payload. A malformed
// payload fails here, predictably, instead of rendering blanks.
func (b MondayBrief) DecodePayload() (*BriefPayload, error) {
	if len(b.Payload) == 0 {
		return nil, fmt.Errorf("brief %s: empty payload", b.BriefID)
	}
	var payload BriefPayload
	if err := json.Unmarshal(b.Payload, &payload); err != nil {
		return nil, fmt.Errorf("brief %s: malformed payload: %w", b.BriefID, err)
	}
	return &payload, nil
}
