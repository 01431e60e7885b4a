package services

import (
	"context"

	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// BriefService loads the read-only Monday brief view. The brief payload is
// backend-generated and rendered without recomputation; a malformed
// payload is surfaced as an inline diagnostic, never a crash.
type BriefService struct {
	tenantID string
	api      opsapi.BriefAPI
}

// NewBriefService creates a BriefService for one tenant.
func NewBriefService(tenantID string, api opsapi.BriefAPI) *BriefService {
	return &BriefService{tenantID: tenantID, api: api}
}

// LoadWeek fetches the brief for a venue week (nil when none was
// generated) plus the venue's recent briefs.
func (s *BriefService) LoadWeek(ctx context.Context, venueID, weekStartDate string) (*dto.BriefView, error) {
	view := &dto.BriefView{}

	if weekStartDate != "" {
		brief, err := s.api.GetWeekBrief(ctx, s.tenantID, venueID, weekStartDate)
		if err != nil {
			return nil, err
		}
		view.Brief = brief
		if brief != nil {
			payload, err := brief.DecodePayload()
			if err != nil {
				view.PayloadErr = err.Error()
			} else {
				view.Payload = payload
			}
		}
	}

	recent, err := s.api.ListBriefs(ctx, s.tenantID, venueID)
	if err != nil {
		return nil, err
	}
	view.Recent = recent
	return view, nil
}
