package opsbackend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
)

// ListEvidence lists uploaded documents, optionally filtered by source.
func (c *Client) ListEvidence(ctx context.Context, tenantID, venueID string, source domain.EvidenceSource) ([]domain.Evidence, error) {
	query := url.Values{}
	if source != "" {
		query.Set("source", string(source))
	}
	var evidence []domain.Evidence
	err := c.getEnvelope(ctx, fmt.Sprintf("/evidence/%s/venue/%s", tenantID, venueID), query, "evidence", &evidence)
	if err != nil {
		return nil, err
	}
	return evidence, nil
}

// GetEvidence fetches one evidence record by id, or nil when absent.
func (c *Client) GetEvidence(ctx context.Context, tenantID, evidenceID string) (*domain.Evidence, error) {
	var evidence *domain.Evidence
	err := c.getEnvelope(ctx, fmt.Sprintf("/evidence/%s/%s", tenantID, evidenceID), nil, "evidence", &evidence)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return evidence, nil
}

// UploadEvidence sends a document as multipart form data. Unlike the JSON
// endpoints, the response content type is verified before decoding so that
// an infrastructure-level HTML error page (proxy, auth) surfaces as a
// distinguishable failure instead of a JSON parse error.
func (c *Client) UploadEvidence(ctx context.Context, tenantID, venueID string, file io.Reader, fileName string, source domain.EvidenceSource, uploadedBy string) (*domain.Evidence, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := form.WriteField("source", string(source)); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.WriteField("uploadedBy", uploadedBy); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	u := fmt.Sprintf("%s/evidence/%s/venue/%s/upload", c.baseURL, tenantID, venueID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %q", apperrors.ErrUnexpectedContent, mediaType)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, readRequestError(resp)
	}

	var evidence *domain.Evidence
	if err := decodeField(resp.Body, "evidence", &evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}

// ExtractFromEvidence asks the backend to extract candidate records from a
// previously uploaded document.
func (c *Client) ExtractFromEvidence(ctx context.Context, tenantID, evidenceID, requestedBy string) ([]domain.EvidenceCandidate, error) {
	body := map[string]any{"requestedBy": requestedBy}
	var candidates []domain.EvidenceCandidate
	err := c.postEnvelope(ctx, fmt.Sprintf("/evidence/%s/%s/extract", tenantID, evidenceID), body, "candidates", &candidates)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListCandidates lists the candidates extracted from one document.
func (c *Client) ListCandidates(ctx context.Context, tenantID, evidenceID string) ([]domain.EvidenceCandidate, error) {
	var candidates []domain.EvidenceCandidate
	err := c.getEnvelope(ctx, fmt.Sprintf("/evidence/%s/%s/candidates", tenantID, evidenceID), nil, "candidates", &candidates)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListPendingCandidates lists every pending candidate across the tenant.
func (c *Client) ListPendingCandidates(ctx context.Context, tenantID string) ([]domain.EvidenceCandidate, error) {
	var candidates []domain.EvidenceCandidate
	err := c.getEnvelope(ctx, fmt.Sprintf("/evidence/%s/candidates/pending", tenantID), nil, "candidates", &candidates)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ConfirmCandidate marks a pending candidate confirmed.
func (c *Client) ConfirmCandidate(ctx context.Context, tenantID, candidateID, reviewedBy string) (*domain.EvidenceCandidate, error) {
	body := map[string]any{"reviewedBy": reviewedBy}
	var candidate *domain.EvidenceCandidate
	err := c.postEnvelope(ctx, fmt.Sprintf("/evidence/%s/candidate/%s/confirm", tenantID, candidateID), body, "candidate", &candidate)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// RejectCandidate marks a pending candidate rejected with a reason.
func (c *Client) RejectCandidate(ctx context.Context, tenantID, candidateID, reason, reviewedBy string) (*domain.EvidenceCandidate, error) {
	body := map[string]any{"reason": reason, "reviewedBy": reviewedBy}
	var candidate *domain.EvidenceCandidate
	err := c.postEnvelope(ctx, fmt.Sprintf("/evidence/%s/candidate/%s/reject", tenantID, candidateID), body, "candidate", &candidate)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}
