// Package opsapi defines the seams between page workflows and the ops
// backend HTTP client. One interface per endpoint family; services depend
// on these, never on the concrete client.
package opsapi

import (
	"context"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// VenueAPI enumerates venues for a tenant.
type VenueAPI interface {
	GetVenues(ctx context.Context, tenantID string) ([]domain.Venue, error)
}

// BriefAPI reads Monday briefs. GetWeekBrief returns (nil, nil) when no
// brief exists for the week.
type BriefAPI interface {
	GetWeekBrief(ctx context.Context, tenantID, venueID, weekStartDate string) (*domain.MondayBrief, error)
	ListBriefs(ctx context.Context, tenantID, venueID string) ([]domain.MondayBrief, error)
}

// VarianceAPI reads computed variances, optionally bounded by a period.
type VarianceAPI interface {
	ListVariances(ctx context.Context, tenantID, venueID, periodStartDate, periodEndDate string) ([]domain.Variance, error)
}

// GuardianAPI reads guardian findings and the tenant-wide summary.
type GuardianAPI interface {
	ListFindings(ctx context.Context, tenantID, venueID, weekStartDate string) ([]domain.GuardianFinding, error)
	GetFindingSummary(ctx context.Context, tenantID string) (domain.FindingSummary, error)
}
