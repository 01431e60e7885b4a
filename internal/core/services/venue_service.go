package services

import (
	"context"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
)

// VenueService enumerates venues for the navigation shell.
type VenueService struct {
	tenantID string
	api      opsapi.VenueAPI
}

// NewVenueService creates a VenueService for one tenant.
func NewVenueService(tenantID string, api opsapi.VenueAPI) *VenueService {
	return &VenueService{tenantID: tenantID, api: api}
}

func (s *VenueService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.api.GetVenues(ctx, s.tenantID)
}
