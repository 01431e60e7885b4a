package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// VarianceType selects the payload shape of a variance record.
type VarianceType string

const (
	VarianceBudgetVsActual VarianceType = "budget_vs_actual"
	VarianceLabourVsActual VarianceType = "labour_vs_actual"
)

// Variance is a backend-computed planned-vs-actual comparison over a
// period. The payload shape varies by Type and is decoded on read.
type Variance struct {
	VarianceID      string          `json:"id"`
	VenueID         string          `json:"venueId"`
	PeriodStartDate string          `json:"periodStartDate"`
	PeriodEndDate   string          `json:"periodEndDate"`
	Type            VarianceType    `json:"type"`
	Payload         json.RawMessage `json:"payload"`
	ComputedBy      string          `json:"computedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// VarianceLine is one budget category compared against actuals.
type VarianceLine struct {
	Category    string   `json:"category"`
	Planned     *float64 `json:"planned"`
	Actual      *float64 `json:"actual"`
	Variance    *float64 `json:"variance"`
	VariancePct *float64 `json:"variancePct"`
}

// BudgetVsActualPayload is the payload shape for budget_vs_actual records.
type BudgetVsActualPayload struct {
	Categories []VarianceLine `json:"categories"`
	Totals     VarianceLine   `json:"totals"`
}

// LabourVarianceLine is one role compared against actual hours and cost.
type LabourVarianceLine struct {
	Role         string   `json:"role"`
	PlannedHours *float64 `json:"plannedHours"`
	ActualHours  *float64 `json:"actualHours"`
	PlannedCost  *float64 `json:"plannedCost"`
	ActualCost   *float64 `json:"actualCost"`
	Variance     *float64 `json:"variance"`
}

// LabourVsActualPayload is the payload shape for labour_vs_actual records.
type LabourVsActualPayload struct {
	Roles  []LabourVarianceLine `json:"roles"`
	Totals LabourVarianceLine   `json:"totals"`
}

// DecodeBudgetPayload decodes a budget_vs_actual payload, rejecting
// records of the wrong type or with a malformed body.
func (v Variance) DecodeBudgetPayload() (*BudgetVsActualPayload, error) {
	if v.Type != VarianceBudgetVsActual {
		return nil, fmt.Errorf("variance %s: type %q is not %q", v.VarianceID, v.Type, VarianceBudgetVsActual)
	}
	var payload BudgetVsActualPayload
	if err := json.Unmarshal(v.Payload, &payload); err != nil {
		return nil, fmt.Errorf("variance %s: malformed payload: %w", v.VarianceID, err)
	}
	return &payload, nil
}

// DecodeLabourPayload decodes a labour_vs_actual payload.
func (v Variance) DecodeLabourPayload() (*LabourVsActualPayload, error) {
	if v.Type != VarianceLabourVsActual {
		return nil, fmt.Errorf("variance %s: type %q is not %q", v.VarianceID, v.Type, VarianceLabourVsActual)
	}
	var payload LabourVsActualPayload
	if err := json.Unmarshal(v.Payload, &payload); err != nil {
		return nil, fmt.Errorf("variance %s: malformed payload: %w", v.VarianceID, err)
	}
	return &payload, nil
}
