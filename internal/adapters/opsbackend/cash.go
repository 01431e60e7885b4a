package opsbackend

import (
	"context"
	"fmt"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// ListSnapshots lists every cash snapshot recorded for a venue.
func (c *Client) ListSnapshots(ctx context.Context, tenantID, venueID string) ([]domain.CashSnapshot, error) {
	var snapshots []domain.CashSnapshot
	err := c.getEnvelope(ctx, fmt.Sprintf("/cash-snapshots/%s/venue/%s", tenantID, venueID), nil, "snapshots", &snapshots)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// GetWeekSnapshot fetches the current snapshot for a week, or nil when
// none was recorded.
func (c *Client) GetWeekSnapshot(ctx context.Context, tenantID, venueID, weekStartDate string) (*domain.CashSnapshot, error) {
	var snapshot *domain.CashSnapshot
	err := c.getEnvelope(ctx, fmt.Sprintf("/cash-snapshots/%s/venue/%s/week/%s", tenantID, venueID, weekStartDate), nil, "snapshot", &snapshot)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot, nil
}

// GetWeekHistory lists the append-only history for a week, corrections
// included.
func (c *Client) GetWeekHistory(ctx context.Context, tenantID, venueID, weekStartDate string) ([]domain.CashSnapshot, error) {
	var history []domain.CashSnapshot
	err := c.getEnvelope(ctx, fmt.Sprintf("/cash-snapshots/%s/venue/%s/week/%s/history", tenantID, venueID, weekStartDate), nil, "history", &history)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// CreateSnapshot records a new cash snapshot for a week.
func (c *Client) CreateSnapshot(ctx context.Context, tenantID, venueID, weekStartDate string, payload domain.CashPayload, createdBy string) (*domain.CashSnapshot, error) {
	body := map[string]any{
		"weekStartDate": weekStartDate,
		"payload":       payload,
		"createdBy":     createdBy,
	}
	var snapshot *domain.CashSnapshot
	err := c.postEnvelope(ctx, fmt.Sprintf("/cash-snapshots/%s/venue/%s", tenantID, venueID), body, "snapshot", &snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// CorrectSnapshot appends a correction referencing the original snapshot.
// The backend never mutates the prior record.
func (c *Client) CorrectSnapshot(ctx context.Context, tenantID, snapshotID string, payload domain.CashPayload, reason, createdBy string) (*domain.CashSnapshot, error) {
	body := map[string]any{
		"payload":   payload,
		"reason":    reason,
		"createdBy": createdBy,
	}
	var snapshot *domain.CashSnapshot
	err := c.postEnvelope(ctx, fmt.Sprintf("/cash-snapshots/%s/%s/correct", tenantID, snapshotID), body, "snapshot", &snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
