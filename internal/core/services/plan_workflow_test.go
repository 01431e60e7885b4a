package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	"github.com/hearthview/opsdash/internal/core/services"
	"github.com/hearthview/opsdash/internal/dto"
)

// --- Mock PlanAPI ---
type MockPlanAPI struct {
	mock.Mock
}

func (m *MockPlanAPI) ListPlans(ctx context.Context, tenantID, venueID string, status domain.PlanStatus) ([]domain.Plan, error) {
	args := m.Called(ctx, tenantID, venueID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanAPI) GetPlan(ctx context.Context, tenantID, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanAPI) GetConfirmedPlan(ctx context.Context, tenantID, venueID string) (*domain.Plan, error) {
	args := m.Called(ctx, tenantID, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanAPI) ListPlanVersions(ctx context.Context, tenantID, planID string) ([]domain.PlanVersion, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanVersion), args.Error(1)
}

func (m *MockPlanAPI) CreatePlan(ctx context.Context, tenantID, venueID string, payload json.RawMessage, createdBy string) (*domain.Plan, error) {
	args := m.Called(ctx, tenantID, venueID, payload, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanAPI) ConfirmPlan(ctx context.Context, tenantID, planID string, payload json.RawMessage, confirmedBy string) (*domain.Plan, error) {
	args := m.Called(ctx, tenantID, planID, payload, confirmedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

// --- Test Suite ---
type PlanWorkflowTestSuite struct {
	suite.Suite
	mockAPI  *MockPlanAPI
	workflow *services.PlanWorkflow
}

func (suite *PlanWorkflowTestSuite) SetupTest() {
	suite.mockAPI = new(MockPlanAPI)
	suite.workflow = services.NewPlanWorkflow(domain.PlanKindBudget, "t1", suite.mockAPI)
}

func (suite *PlanWorkflowTestSuite) loadBoard(venueID string, plans []domain.Plan) *dto.PlanBoard {
	suite.mockAPI.On("ListPlans", mock.Anything, "t1", venueID, domain.PlanStatus("")).Return(plans, nil).Once()
	suite.mockAPI.On("GetConfirmedPlan", mock.Anything, "t1", venueID).Return(nil, nil).Once()
	board, err := suite.workflow.Load(context.Background(), venueID, "")
	suite.Require().NoError(err)
	return board
}

// --- Test Cases ---

func (suite *PlanWorkflowTestSuite) TestLoad_PopulatesBoard() {
	plans := []domain.Plan{{PlanID: "p1", Status: domain.PlanDraft}, {PlanID: "p2", Status: domain.PlanConfirmed}}
	board := suite.loadBoard("v1", plans)

	suite.Equal(domain.PlanKindBudget, board.Kind)
	suite.Equal("v1", board.VenueID)
	suite.Len(board.Plans, 2)
	suite.Nil(board.Selected)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestCreate_PrependsWithoutRefetch() {
	suite.loadBoard("v1", []domain.Plan{{PlanID: "p1"}, {PlanID: "p2"}})

	created := &domain.Plan{PlanID: "p3", Status: domain.PlanDraft, CreatedBy: "ana"}
	suite.mockAPI.On("CreatePlan", mock.Anything, "t1", "v1", mock.Anything, "ana").Return(created, nil).Once()

	board, err := suite.workflow.Create(context.Background(), "v1", `{"total": 1200}`, "ana")

	suite.Require().NoError(err)
	suite.Require().Len(board.Plans, 3)
	suite.Equal("p3", board.Plans[0].PlanID)
	suite.Equal("p1", board.Plans[1].PlanID)
	suite.Equal("p2", board.Plans[2].PlanID)
	// Exactly one ListPlans call: the initial load. The create result is
	// reconciled in memory.
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "ListPlans", 1)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestCreate_RejectsNonObjectPayload() {
	suite.loadBoard("v1", nil)

	for _, payload := range []string{"", "not json", `[1,2,3]`, `"just a string"`} {
		_, err := suite.workflow.Create(context.Background(), "v1", payload, "ana")
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockAPI.AssertNotCalled(suite.T(), "CreatePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlanWorkflowTestSuite) TestSelect_LoadsVersions() {
	suite.loadBoard("v1", []domain.Plan{{PlanID: "p1"}})

	versions := []domain.PlanVersion{{VersionID: "ver2", Version: 2}, {VersionID: "ver1", Version: 1}}
	suite.mockAPI.On("ListPlanVersions", mock.Anything, "t1", "p1").Return(versions, nil).Once()

	board, err := suite.workflow.Select(context.Background(), "v1", "p1")

	suite.Require().NoError(err)
	suite.Require().NotNil(board.Selected)
	suite.Equal("p1", board.Selected.PlanID)
	suite.Len(board.Versions, 2)
	// The plan was already in the list; no single-record fetch needed.
	suite.mockAPI.AssertNotCalled(suite.T(), "GetPlan", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestSelect_UnknownPlanIsNotFound() {
	suite.loadBoard("v1", nil)

	suite.mockAPI.On("GetPlan", mock.Anything, "t1", "ghost").Return(nil, nil).Once()

	_, err := suite.workflow.Select(context.Background(), "v1", "ghost")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestConfirm_NoSelectionIssuesNoRequest() {
	board := suite.loadBoard("v1", []domain.Plan{{PlanID: "p1"}})
	suite.Nil(board.Selected)

	result, err := suite.workflow.Confirm(context.Background(), "v1", "ana")

	suite.Require().NoError(err)
	suite.Len(result.Plans, 1)
	suite.mockAPI.AssertNotCalled(suite.T(), "ConfirmPlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlanWorkflowTestSuite) TestConfirm_SubmitsSelectedPayloadAndRefetches() {
	payload := json.RawMessage(`{"total": 900}`)
	suite.loadBoard("v1", []domain.Plan{{PlanID: "p1", Status: domain.PlanDraft, Payload: payload}})

	suite.mockAPI.On("ListPlanVersions", mock.Anything, "t1", "p1").Return([]domain.PlanVersion{}, nil)
	_, err := suite.workflow.Select(context.Background(), "v1", "p1")
	suite.Require().NoError(err)

	confirmed := &domain.Plan{PlanID: "p1", Status: domain.PlanConfirmed, Payload: payload}
	suite.mockAPI.On("ConfirmPlan", mock.Anything, "t1", "p1", payload, "ana").Return(confirmed, nil).Once()
	// Confirmation may supersede siblings, so the list is re-fetched.
	suite.mockAPI.On("ListPlans", mock.Anything, "t1", "v1", domain.PlanStatus("")).
		Return([]domain.Plan{*confirmed}, nil).Once()

	board, err := suite.workflow.Confirm(context.Background(), "v1", "ana")

	suite.Require().NoError(err)
	suite.Require().NotNil(board.Selected)
	suite.Equal(domain.PlanConfirmed, board.Selected.Status)
	suite.Require().NotNil(board.Confirmed)
	suite.Equal("p1", board.Confirmed.PlanID)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestLoad_StaleResponseIsDiscarded() {
	staleStarted := make(chan struct{})
	releaseStale := make(chan struct{})

	suite.mockAPI.On("ListPlans", mock.Anything, "t1", "v1", domain.PlanStatus("")).
		Run(func(mock.Arguments) {
			close(staleStarted)
			<-releaseStale
		}).
		Return([]domain.Plan{{PlanID: "stale"}}, nil).Once()
	suite.mockAPI.On("ListPlans", mock.Anything, "t1", "v1", domain.PlanDraft).
		Return([]domain.Plan{{PlanID: "fresh"}}, nil).Once()
	suite.mockAPI.On("GetConfirmedPlan", mock.Anything, "t1", "v1").Return(nil, nil)

	staleDone := make(chan *dto.PlanBoard, 1)
	go func() {
		board, err := suite.workflow.Load(context.Background(), "v1", "")
		suite.NoError(err)
		staleDone <- board
	}()
	<-staleStarted

	// A newer load for the same venue supersedes the one still in flight.
	freshBoard, err := suite.workflow.Load(context.Background(), "v1", domain.PlanDraft)
	suite.Require().NoError(err)
	close(releaseStale)
	staleBoard := <-staleDone

	suite.Require().Len(freshBoard.Plans, 1)
	suite.Equal("fresh", freshBoard.Plans[0].PlanID)
	// The slow response did not overwrite the newer state.
	suite.Require().Len(staleBoard.Plans, 1)
	suite.Equal("fresh", staleBoard.Plans[0].PlanID)
	suite.Equal(domain.PlanDraft, staleBoard.StatusFilter)
}

func (suite *PlanWorkflowTestSuite) TestCreate_TargetsTheVenueItWasSubmittedFrom() {
	suite.loadBoard("v1", []domain.Plan{{PlanID: "a1"}})
	// Another page loads a different venue before the first page submits.
	suite.loadBoard("v2", []domain.Plan{{PlanID: "b1"}})

	created := &domain.Plan{PlanID: "a2", VenueID: "v1", Status: domain.PlanDraft, CreatedBy: "ana"}
	suite.mockAPI.On("CreatePlan", mock.Anything, "t1", "v1", mock.Anything, "ana").Return(created, nil).Once()

	board, err := suite.workflow.Create(context.Background(), "v1", `{"total": 500}`, "ana")

	suite.Require().NoError(err)
	suite.Equal("v1", board.VenueID)
	suite.Require().Len(board.Plans, 2)
	suite.Equal("a2", board.Plans[0].PlanID)
	// The other venue's board is untouched by the write.
	other := suite.workflow.Board("v2")
	suite.Require().Len(other.Plans, 1)
	suite.Equal("b1", other.Plans[0].PlanID)
	suite.mockAPI.AssertExpectations(suite.T())
}

func (suite *PlanWorkflowTestSuite) TestSelect_DecodesLabourRoles() {
	workflow := services.NewPlanWorkflow(domain.PlanKindLabour, "t1", suite.mockAPI)
	payload := json.RawMessage(`{"roles":[{"role":"chef","hours":40,"rate":15.5}],"notes":"half term cover"}`)
	plans := []domain.Plan{{PlanID: "lp1", Status: domain.PlanDraft, Payload: payload}}
	suite.mockAPI.On("ListPlans", mock.Anything, "t1", "v1", domain.PlanStatus("")).Return(plans, nil).Once()
	suite.mockAPI.On("GetConfirmedPlan", mock.Anything, "t1", "v1").Return(nil, nil).Once()
	_, err := workflow.Load(context.Background(), "v1", "")
	suite.Require().NoError(err)

	suite.mockAPI.On("ListPlanVersions", mock.Anything, "t1", "lp1").Return([]domain.PlanVersion{}, nil).Once()
	board, err := workflow.Select(context.Background(), "v1", "lp1")

	suite.Require().NoError(err)
	suite.Require().NotNil(board.LabourDetail)
	suite.Require().Len(board.LabourDetail.Roles, 1)
	suite.Equal("chef", board.LabourDetail.Roles[0].Role)
	suite.Equal("half term cover", board.LabourDetail.Notes)
}

func (suite *PlanWorkflowTestSuite) TestSelect_BudgetBoardCarriesNoLabourDetail() {
	payload := json.RawMessage(`{"roles":[{"role":"chef"}]}`)
	suite.loadBoard("v1", []domain.Plan{{PlanID: "p1", Payload: payload}})

	suite.mockAPI.On("ListPlanVersions", mock.Anything, "t1", "p1").Return([]domain.PlanVersion{}, nil).Once()
	board, err := suite.workflow.Select(context.Background(), "v1", "p1")

	suite.Require().NoError(err)
	suite.Nil(board.LabourDetail)
}

func (suite *PlanWorkflowTestSuite) TestBoard_CopiesStateWithoutFetching() {
	suite.loadBoard("v1", []domain.Plan{{PlanID: "p1"}})

	board := suite.workflow.Board("v1")

	suite.Equal("v1", board.VenueID)
	suite.Len(board.Plans, 1)
	suite.mockAPI.AssertNumberOfCalls(suite.T(), "ListPlans", 1)
}

func TestPlanWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(PlanWorkflowTestSuite))
}
