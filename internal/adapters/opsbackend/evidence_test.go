package opsbackend_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
)

func TestUploadEvidence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/evidence/t1/venue/v1/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "rota", r.FormValue("source"))
		assert.Equal(t, "ana", r.FormValue("uploadedBy"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "rota-week4.csv", header.Filename)
		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "role,hours\nchef,40\n", string(contents))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"evidence":{"id":"e1","venueId":"v1","type":"csv","source":"rota","fileName":"rota-week4.csv","uploadedBy":"ana"}}`))
	})

	file := strings.NewReader("role,hours\nchef,40\n")
	evidence, err := client.UploadEvidence(context.Background(), "t1", "v1", file, "rota-week4.csv", domain.SourceRota, "ana")
	require.NoError(t, err)
	require.NotNil(t, evidence)
	assert.Equal(t, "e1", evidence.EvidenceID)
	assert.Equal(t, domain.EvidenceCSV, evidence.Type)
}

func TestUploadEvidence_NonJSONResponse(t *testing.T) {
	// A proxy or auth layer answering with HTML must surface as a content
	// type failure, not a JSON parse error.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body>Sign in to continue</body></html>`))
	})

	evidence, err := client.UploadEvidence(context.Background(), "t1", "v1", strings.NewReader("x"), "f.csv", domain.SourceOther, "ana")
	require.Error(t, err)
	assert.Nil(t, evidence)
	assert.ErrorIs(t, err, apperrors.ErrUnexpectedContent)
	assert.Contains(t, err.Error(), "text/html")
}

func TestUploadEvidence_ErrorStatusStillJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"file too large"}`))
	})

	_, err := client.UploadEvidence(context.Background(), "t1", "v1", strings.NewReader("x"), "f.csv", domain.SourcePOS, "ana")
	var reqErr *apperrors.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "file too large", reqErr.Message)
}

func TestConfirmCandidate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evidence/t1/candidate/c1/confirm", r.URL.Path)
		w.Write([]byte(`{"candidate":{"id":"c1","evidenceId":"e1","status":"confirmed","reviewedBy":"ana"}}`))
	})

	candidate, err := client.ConfirmCandidate(context.Background(), "t1", "c1", "ana")
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, domain.CandidateConfirmed, candidate.Status)
}
