package opsbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
)

// PlanClient serves one of the two mirrored versioned-plan endpoint
// families. The families differ only in base path and envelope keys.
type PlanClient struct {
	client   *Client
	basePath string
	listKey  string
	itemKey  string
}

// NewBudgetAPI returns the client for /budgets endpoints.
func NewBudgetAPI(c *Client) opsapi.PlanAPI {
	return &PlanClient{client: c, basePath: "/budgets", listKey: "budgets", itemKey: "budget"}
}

// NewLabourAPI returns the client for /labour-plans endpoints.
func NewLabourAPI(c *Client) opsapi.PlanAPI {
	return &PlanClient{client: c, basePath: "/labour-plans", listKey: "labourPlans", itemKey: "labourPlan"}
}

// ListPlans lists plans for a venue, optionally filtered by status.
func (p *PlanClient) ListPlans(ctx context.Context, tenantID, venueID string, status domain.PlanStatus) ([]domain.Plan, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	var plans []domain.Plan
	err := p.client.getEnvelope(ctx, fmt.Sprintf("%s/%s/venue/%s", p.basePath, tenantID, venueID), query, p.listKey, &plans)
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches one plan by id, or nil when it does not exist.
func (p *PlanClient) GetPlan(ctx context.Context, tenantID, planID string) (*domain.Plan, error) {
	var plan *domain.Plan
	err := p.client.getEnvelope(ctx, fmt.Sprintf("%s/%s/%s", p.basePath, tenantID, planID), nil, p.itemKey, &plan)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// GetConfirmedPlan fetches the venue's confirmed plan, or nil when none is
// confirmed.
func (p *PlanClient) GetConfirmedPlan(ctx context.Context, tenantID, venueID string) (*domain.Plan, error) {
	var plan *domain.Plan
	err := p.client.getEnvelope(ctx, fmt.Sprintf("%s/%s/venue/%s/confirmed", p.basePath, tenantID, venueID), nil, p.itemKey, &plan)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// ListPlanVersions lists the immutable version history of a plan.
func (p *PlanClient) ListPlanVersions(ctx context.Context, tenantID, planID string) ([]domain.PlanVersion, error) {
	var versions []domain.PlanVersion
	err := p.client.getEnvelope(ctx, fmt.Sprintf("%s/%s/%s/versions", p.basePath, tenantID, planID), nil, "versions", &versions)
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// CreatePlan submits a new draft plan. The backend is the sole validator
// of the payload's required fields.
func (p *PlanClient) CreatePlan(ctx context.Context, tenantID, venueID string, payload json.RawMessage, createdBy string) (*domain.Plan, error) {
	body := map[string]any{
		"payload":   payload,
		"createdBy": createdBy,
	}
	var plan *domain.Plan
	err := p.client.postEnvelope(ctx, fmt.Sprintf("%s/%s/venue/%s", p.basePath, tenantID, venueID), body, p.itemKey, &plan)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ConfirmPlan confirms a plan with its full payload as confirmation input.
func (p *PlanClient) ConfirmPlan(ctx context.Context, tenantID, planID string, payload json.RawMessage, confirmedBy string) (*domain.Plan, error) {
	body := map[string]any{
		"payload":     payload,
		"confirmedBy": confirmedBy,
	}
	var plan *domain.Plan
	err := p.client.postEnvelope(ctx, fmt.Sprintf("%s/%s/%s/confirm", p.basePath, tenantID, planID), body, p.itemKey, &plan)
	if err != nil {
		return nil, err
	}
	return plan, nil
}
