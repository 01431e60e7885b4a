package domain

import (
	"encoding/json"
	"time"
)

// EvidenceType is the uploaded file kind.
type EvidenceType string

const (
	EvidenceImage EvidenceType = "image"
	EvidenceCSV   EvidenceType = "csv"
)

// EvidenceSource tags where an uploaded document came from.
type EvidenceSource string

const (
	SourceRota    EvidenceSource = "rota"
	SourcePOS     EvidenceSource = "pos"
	SourcePayroll EvidenceSource = "payroll"
	SourceOther   EvidenceSource = "other"
)

// EvidenceSources lists the sources offered by upload and filter controls.
var EvidenceSources = []EvidenceSource{SourceRota, SourcePOS, SourcePayroll, SourceOther}

// Evidence is the metadata of an uploaded source document.
type Evidence struct {
	EvidenceID string         `json:"id"`
	VenueID    string         `json:"venueId"`
	Type       EvidenceType   `json:"type"`
	Source     EvidenceSource `json:"source"`
	FileName   string         `json:"fileName"`
	MimeType   string         `json:"mimeType"`
	UploadedBy string         `json:"uploadedBy"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// CandidateStatus is the review state of an extraction candidate.
// pending transitions to confirmed or rejected exactly once.
type CandidateStatus string

const (
	CandidatePending   CandidateStatus = "pending"
	CandidateConfirmed CandidateStatus = "confirmed"
	CandidateRejected  CandidateStatus = "rejected"
)

// EvidenceCandidate holds structured facts the backend extracted from an
// evidence document, awaiting human review.
type EvidenceCandidate struct {
	CandidateID       string          `json:"id"`
	EvidenceID        string          `json:"evidenceId"`
	Status            CandidateStatus `json:"status"`
	Payload           json.RawMessage `json:"payload"`
	ReviewedBy        *string         `json:"reviewedBy"`
	ReviewedAt        *time.Time      `json:"reviewedAt"`
	RejectionReason   *string         `json:"rejectionReason"`
	CanonicalRecordID *string         `json:"canonicalRecordId"`
}
