package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// PlanKind distinguishes the two versioned planning entities, which share
// a lifecycle and wire shape and differ only in endpoint family and
// payload contents.
type PlanKind string

const (
	PlanKindBudget PlanKind = "budget"
	PlanKindLabour PlanKind = "labour"
)

// PlanStatus is the lifecycle state of a budget or labour plan.
type PlanStatus string

const (
	PlanDraft      PlanStatus = "draft"
	PlanConfirmed  PlanStatus = "confirmed"
	PlanSuperseded PlanStatus = "superseded"
)

// PlanStatuses lists the statuses offered by the workflow filter.
var PlanStatuses = []PlanStatus{PlanDraft, PlanConfirmed, PlanSuperseded}

// Plan is a versioned Budget or LabourPlan. The backend keeps at most one
// confirmed plan per venue and kind; confirming one supersedes siblings.
type Plan struct {
	PlanID      string          `json:"id"`
	VenueID     string          `json:"venueId"`
	Status      PlanStatus      `json:"status"`
	Payload     json.RawMessage `json:"payload"`
	CreatedBy   string          `json:"createdBy"`
	ConfirmedBy *string         `json:"confirmedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	ConfirmedAt *time.Time      `json:"confirmedAt"`
}

// PlanVersion is an immutable snapshot taken per edit or confirm.
type PlanVersion struct {
	VersionID string          `json:"id"`
	PlanID    string          `json:"planId"`
	Version   int             `json:"version"`
	Payload   json.RawMessage `json:"payload"`
	CreatedBy string          `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

// LabourRole is one line of a labour plan payload.
type LabourRole struct {
	Role  string   `json:"role"`
	Hours *float64 `json:"hours"`
	Rate  *float64 `json:"rate"`
}

// LabourPlanPayload is the structural shape of a labour plan payload.
type LabourPlanPayload struct {
	Roles []LabourRole `json:"roles"`
	Notes string       `json:"notes"`
}

// DecodeLabourPayload decodes the role list out of a labour plan payload.
func (p Plan) DecodeLabourPayload() (*LabourPlanPayload, error) {
	var payload LabourPlanPayload
	if err := json.Unmarshal(p.Payload, &payload); err != nil {
		return nil, fmt.Errorf("plan %s: malformed payload: %w", p.PlanID, err)
	}
	return &payload, nil
}
