package opsapi

import (
	"context"
	"encoding/json"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// PlanAPI covers the versioned-plan endpoint family. Budgets and labour
// plans expose the identical operation set under different base paths, so
// one interface serves both workflows.
//
// GetPlan and GetConfirmedPlan return (nil, nil) when the record is
// absent; absence is a valid outcome, not an error.
type PlanAPI interface {
	ListPlans(ctx context.Context, tenantID, venueID string, status domain.PlanStatus) ([]domain.Plan, error)
	GetPlan(ctx context.Context, tenantID, planID string) (*domain.Plan, error)
	GetConfirmedPlan(ctx context.Context, tenantID, venueID string) (*domain.Plan, error)
	ListPlanVersions(ctx context.Context, tenantID, planID string) ([]domain.PlanVersion, error)
	CreatePlan(ctx context.Context, tenantID, venueID string, payload json.RawMessage, createdBy string) (*domain.Plan, error)
	ConfirmPlan(ctx context.Context, tenantID, planID string, payload json.RawMessage, confirmedBy string) (*domain.Plan, error)
}
