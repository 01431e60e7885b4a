package opsapi

import (
	"context"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// CashAPI covers append-only cash snapshots and their corrections.
// GetWeekSnapshot returns (nil, nil) when the week has no snapshot.
type CashAPI interface {
	ListSnapshots(ctx context.Context, tenantID, venueID string) ([]domain.CashSnapshot, error)
	GetWeekSnapshot(ctx context.Context, tenantID, venueID, weekStartDate string) (*domain.CashSnapshot, error)
	GetWeekHistory(ctx context.Context, tenantID, venueID, weekStartDate string) ([]domain.CashSnapshot, error)
	CreateSnapshot(ctx context.Context, tenantID, venueID, weekStartDate string, payload domain.CashPayload, createdBy string) (*domain.CashSnapshot, error)
	CorrectSnapshot(ctx context.Context, tenantID, snapshotID string, payload domain.CashPayload, reason, createdBy string) (*domain.CashSnapshot, error)
}
