package opsbackend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// GetVenues lists the venues of a tenant.
func (c *Client) GetVenues(ctx context.Context, tenantID string) ([]domain.Venue, error) {
	var venues []domain.Venue
	err := c.getEnvelope(ctx, fmt.Sprintf("/venues/%s", tenantID), nil, "venues", &venues)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// GetWeekBrief fetches the Monday brief for one venue week, or nil when
// none was generated.
func (c *Client) GetWeekBrief(ctx context.Context, tenantID, venueID, weekStartDate string) (*domain.MondayBrief, error) {
	query := url.Values{"weekStartDate": {weekStartDate}}
	var brief *domain.MondayBrief
	err := c.getEnvelope(ctx, fmt.Sprintf("/monday-briefs/%s/venue/%s/week", tenantID, venueID), query, "brief", &brief)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return brief, nil
}

// ListBriefs lists every brief generated for a venue.
func (c *Client) ListBriefs(ctx context.Context, tenantID, venueID string) ([]domain.MondayBrief, error) {
	var briefs []domain.MondayBrief
	err := c.getEnvelope(ctx, fmt.Sprintf("/monday-briefs/%s/venue/%s/list", tenantID, venueID), nil, "briefs", &briefs)
	if err != nil {
		return nil, err
	}
	return briefs, nil
}

// ListVariances lists computed variances, optionally bounded by a period.
func (c *Client) ListVariances(ctx context.Context, tenantID, venueID, periodStartDate, periodEndDate string) ([]domain.Variance, error) {
	query := url.Values{}
	if periodStartDate != "" {
		query.Set("periodStartDate", periodStartDate)
	}
	if periodEndDate != "" {
		query.Set("periodEndDate", periodEndDate)
	}
	var variances []domain.Variance
	err := c.getEnvelope(ctx, fmt.Sprintf("/variances/%s/venue/%s", tenantID, venueID), query, "variances", &variances)
	if err != nil {
		return nil, err
	}
	return variances, nil
}

// ListFindings lists guardian findings, optionally scoped to a week.
func (c *Client) ListFindings(ctx context.Context, tenantID, venueID, weekStartDate string) ([]domain.GuardianFinding, error) {
	query := url.Values{}
	if weekStartDate != "" {
		query.Set("weekStartDate", weekStartDate)
	}
	var findings []domain.GuardianFinding
	err := c.getEnvelope(ctx, fmt.Sprintf("/guardian/%s/venue/%s", tenantID, venueID), query, "findings", &findings)
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// GetFindingSummary returns tenant-wide finding counts per type.
func (c *Client) GetFindingSummary(ctx context.Context, tenantID string) (domain.FindingSummary, error) {
	var summary domain.FindingSummary
	err := c.getEnvelope(ctx, fmt.Sprintf("/guardian/%s/summary", tenantID), nil, "summary", &summary)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
