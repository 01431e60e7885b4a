// Package services defines the facades handlers depend on, mirroring the
// page surface: three read-only views and four stateful workflows.
package services

import (
	"context"
	"io"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/dto"
)

// VenueSvcFacade enumerates venues for the navigation shell.
type VenueSvcFacade interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
}

// BriefSvcFacade loads the Monday brief view for a venue week.
type BriefSvcFacade interface {
	LoadWeek(ctx context.Context, venueID, weekStartDate string) (*dto.BriefView, error)
}

// VarianceSvcFacade loads variances grouped by type.
type VarianceSvcFacade interface {
	Load(ctx context.Context, venueID, periodStartDate, periodEndDate string) (*dto.VarianceView, error)
}

// FindingSvcFacade loads guardian findings grouped by severity.
type FindingSvcFacade interface {
	Load(ctx context.Context, venueID, weekStartDate string) (*dto.FindingsView, error)
}

// PlanSvcFacade is the budget/labour workflow: load with a status filter,
// select for version history, create drafts, confirm the selection.
// State is keyed per venue, so every call names the venue of the page it
// came from; writes land on that venue regardless of what other pages
// have loaded since.
type PlanSvcFacade interface {
	Load(ctx context.Context, venueID string, status domain.PlanStatus) (*dto.PlanBoard, error)
	Select(ctx context.Context, venueID, planID string) (*dto.PlanBoard, error)
	Create(ctx context.Context, venueID, payloadJSON, actor string) (*dto.PlanBoard, error)
	// Confirm submits the venue's currently selected plan's full payload;
	// with no selection it is a no-op and issues no request.
	Confirm(ctx context.Context, venueID, actor string) (*dto.PlanBoard, error)
	// Board copies the venue's current state without fetching, for
	// re-rendering after a failed write with prior state untouched.
	Board(venueID string) *dto.PlanBoard
}

// CashSvcFacade is the cash snapshot workflow, keyed per venue like
// PlanSvcFacade.
type CashSvcFacade interface {
	Load(ctx context.Context, venueID, weekStartDate string) (*dto.CashBoard, error)
	Create(ctx context.Context, venueID string, form dto.CashCreateForm, actor string) (*dto.CashBoard, error)
	// Correct refuses locally, without issuing a request, while the reason
	// is empty or whitespace.
	Correct(ctx context.Context, venueID string, form dto.CashCorrectForm, actor string) (*dto.CashBoard, error)
	Board(venueID string) *dto.CashBoard
}

// EvidenceSvcFacade is the evidence/candidate workflow, keyed per venue
// like PlanSvcFacade.
type EvidenceSvcFacade interface {
	Load(ctx context.Context, venueID string, source domain.EvidenceSource) (*dto.EvidenceBoard, error)
	Select(ctx context.Context, venueID, evidenceID string) (*dto.EvidenceBoard, error)
	Upload(ctx context.Context, venueID string, file io.Reader, fileName string, source domain.EvidenceSource, actor string) (*dto.EvidenceBoard, error)
	Extract(ctx context.Context, venueID, evidenceID, actor string) (*dto.EvidenceBoard, error)
	ConfirmCandidate(ctx context.Context, venueID, candidateID, actor string) (*dto.EvidenceBoard, error)
	// RejectCandidate refuses locally, without issuing a request, while the
	// reason is empty or whitespace.
	RejectCandidate(ctx context.Context, venueID, candidateID, reason, actor string) (*dto.EvidenceBoard, error)
	Board(venueID string) *dto.EvidenceBoard
}

// ServiceContainer bundles every facade for route registration.
type ServiceContainer struct {
	Venue    VenueSvcFacade
	Brief    BriefSvcFacade
	Variance VarianceSvcFacade
	Finding  FindingSvcFacade
	Budget   PlanSvcFacade
	Labour   PlanSvcFacade
	Cash     CashSvcFacade
	Evidence EvidenceSvcFacade
}
