package services

import (
	"context"
	"fmt"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
	"github.com/hearthview/opsdash/internal/dto"
)

// VarianceService loads computed variances and groups them by type for
// display sectioning. Grouping has no effect on stored data.
type VarianceService struct {
	tenantID string
	api      opsapi.VarianceAPI
}

// NewVarianceService creates a VarianceService for one tenant.
func NewVarianceService(tenantID string, api opsapi.VarianceAPI) *VarianceService {
	return &VarianceService{tenantID: tenantID, api: api}
}

// Load fetches variances for a venue, optionally bounded by a period, and
// decodes each payload by its type.
func (s *VarianceService) Load(ctx context.Context, venueID, periodStartDate, periodEndDate string) (*dto.VarianceView, error) {
	variances, err := s.api.ListVariances(ctx, s.tenantID, venueID, periodStartDate, periodEndDate)
	if err != nil {
		return nil, err
	}

	view := &dto.VarianceView{}
	for _, v := range variances {
		card := dto.VarianceCard{Record: v}
		switch v.Type {
		case domain.VarianceBudgetVsActual:
			payload, err := v.DecodeBudgetPayload()
			if err != nil {
				card.DecodeErr = err.Error()
			} else {
				card.Budget = payload
			}
			view.Budget = append(view.Budget, card)
		case domain.VarianceLabourVsActual:
			payload, err := v.DecodeLabourPayload()
			if err != nil {
				card.DecodeErr = err.Error()
			} else {
				card.Labour = payload
			}
			view.Labour = append(view.Labour, card)
		default:
			card.DecodeErr = fmt.Sprintf("unknown variance type %q", v.Type)
			view.Budget = append(view.Budget, card)
		}
	}
	return view, nil
}
