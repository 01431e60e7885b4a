package opsapi

import (
	"context"
	"io"

	"github.com/hearthview/opsdash/internal/core/domain"
)

// EvidenceAPI covers uploads, extraction, and candidate review.
// GetEvidence returns (nil, nil) when the record is absent.
type EvidenceAPI interface {
	ListEvidence(ctx context.Context, tenantID, venueID string, source domain.EvidenceSource) ([]domain.Evidence, error)
	GetEvidence(ctx context.Context, tenantID, evidenceID string) (*domain.Evidence, error)
	UploadEvidence(ctx context.Context, tenantID, venueID string, file io.Reader, fileName string, source domain.EvidenceSource, uploadedBy string) (*domain.Evidence, error)
	ExtractFromEvidence(ctx context.Context, tenantID, evidenceID, requestedBy string) ([]domain.EvidenceCandidate, error)
	ListCandidates(ctx context.Context, tenantID, evidenceID string) ([]domain.EvidenceCandidate, error)
	ListPendingCandidates(ctx context.Context, tenantID string) ([]domain.EvidenceCandidate, error)
	ConfirmCandidate(ctx context.Context, tenantID, candidateID, reviewedBy string) (*domain.EvidenceCandidate, error)
	RejectCandidate(ctx context.Context, tenantID, candidateID, reason, reviewedBy string) (*domain.EvidenceCandidate, error)
}
