package services

import (
	"context"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// FindingService loads guardian findings grouped by severity, most urgent
// first, plus the tenant-wide per-type summary.
type FindingService struct {
	tenantID string
	api      opsapi.GuardianAPI
}

// NewFindingService creates a FindingService for one tenant.
func NewFindingService(tenantID string, api opsapi.GuardianAPI) *FindingService {
	return &FindingService{tenantID: tenantID, api: api}
}

func (s *FindingService) Load(ctx context.Context, venueID, weekStartDate string) (*dto.FindingsView, error) {
	findings, err := s.api.ListFindings(ctx, s.tenantID, venueID, weekStartDate)
	if err != nil {
		return nil, err
	}
	summary, err := s.api.GetFindingSummary(ctx, s.tenantID)
	if err != nil {
		return nil, err
	}

	bySeverity := make(map[domain.Severity][]dto.FindingCard)
	for _, f := range findings {
		card := dto.FindingCard{Record: f}
		payload, err := f.DecodePayload()
		if err != nil {
			card.DecodeErr = err.Error()
		} else {
			card.Payload = payload
		}
		bySeverity[f.Severity] = append(bySeverity[f.Severity], card)
	}

	view := &dto.FindingsView{Summary: summary}
	for _, severity := range domain.Severities {
		if cards := bySeverity[severity]; len(cards) > 0 {
			view.Groups = append(view.Groups, dto.FindingGroup{Severity: severity, Findings: cards})
		}
	}
	return view, nil
}
