package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/services"
)

// --- Mock GuardianAPI ---
type MockGuardianAPI struct {
	mock.Mock
}

func (m *MockGuardianAPI) ListFindings(ctx context.Context, tenantID, venueID, weekStartDate string) ([]domain.GuardianFinding, error) {
	args := m.Called(ctx, tenantID, venueID, weekStartDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuardianFinding), args.Error(1)
}

func (m *MockGuardianAPI) GetFindingSummary(ctx context.Context, tenantID string) (domain.FindingSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FindingSummary), args.Error(1)
}

// --- Test Suite ---
type FindingServiceTestSuite struct {
	suite.Suite
	mockAPI *MockGuardianAPI
	service *services.FindingService
}

func (suite *FindingServiceTestSuite) SetupTest() {
	suite.mockAPI = new(MockGuardianAPI)
	suite.service = services.NewFindingService("t1", suite.mockAPI)
}

// --- Test Cases ---

func (suite *FindingServiceTestSuite) TestLoad_GroupsBySeverityMostUrgentFirst() {
	payload := json.RawMessage(`{"description":"no rota uploaded for week"}`)
	findings := []domain.GuardianFinding{
		{FindingID: "f1", Severity: domain.SeverityLow, Type: domain.FindingDuplicateSnapshot, Payload: payload},
		{FindingID: "f2", Severity: domain.SeverityHigh, Type: domain.FindingMissingEvidence, Payload: payload},
		{FindingID: "f3", Severity: domain.SeverityHigh, Type: domain.FindingCashDiscrepancy, Payload: payload},
	}
	summary := domain.FindingSummary{domain.FindingMissingEvidence: 4}
	suite.mockAPI.On("ListFindings", mock.Anything, "t1", "v1", "2026-01-26").Return(findings, nil).Once()
	suite.mockAPI.On("GetFindingSummary", mock.Anything, "t1").Return(summary, nil).Once()

	view, err := suite.service.Load(context.Background(), "v1", "2026-01-26")

	suite.Require().NoError(err)
	// Empty severities are skipped entirely; high sorts before low.
	suite.Require().Len(view.Groups, 2)
	suite.Equal(domain.SeverityHigh, view.Groups[0].Severity)
	suite.Len(view.Groups[0].Findings, 2)
	suite.Equal(domain.SeverityLow, view.Groups[1].Severity)
	suite.Equal(4, view.Summary[domain.FindingMissingEvidence])
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *FindingServiceTestSuite) TestLoad_PayloadWithoutDescriptionIsDiagnosed() {
	findings := []domain.GuardianFinding{
		{FindingID: "f1", Severity: domain.SeverityMedium, Payload: json.RawMessage(`{"details":{}}`)},
	}
	suite.mockAPI.On("ListFindings", mock.Anything, "t1", "v1", "").Return(findings, nil).Once()
	suite.mockAPI.On("GetFindingSummary", mock.Anything, "t1").Return(domain.FindingSummary{}, nil).Once()

	view, err := suite.service.Load(context.Background(), "v1", "")

	suite.Require().NoError(err)
	suite.Require().Len(view.Groups, 1)
	card := view.Groups[0].Findings[0]
	suite.Nil(card.Payload)
	suite.NotEmpty(card.DecodeErr)
}

func TestFindingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FindingServiceTestSuite))
}
