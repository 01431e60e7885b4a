package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/handlers"
	"github.com/hearthview/opsdash/internal/middleware"
	"github.com/hearthview/opsdash/internal/platform/config"
	"github.com/hearthview/opsdash/web"
)

// stubPlanSvc records calls and plays back canned boards.
type stubPlanSvc struct {
	board      *dto.PlanBoard
	err        error
	loads      int
	creates    int
	lastVenue  string
	lastActor  string
	lastPaylod string
}

func (s *stubPlanSvc) Load(ctx context.Context, venueID string, status domain.PlanStatus) (*dto.PlanBoard, error) {
	s.loads++
	s.lastVenue = venueID
	if s.err != nil {
		return nil, s.err
	}
	return s.board, nil
}

func (s *stubPlanSvc) Select(ctx context.Context, venueID, planID string) (*dto.PlanBoard, error) {
	s.lastVenue = venueID
	return s.board, nil
}

func (s *stubPlanSvc) Create(ctx context.Context, venueID, payloadJSON, actor string) (*dto.PlanBoard, error) {
	s.creates++
	s.lastVenue = venueID
	s.lastPaylod = payloadJSON
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	return s.board, nil
}

func (s *stubPlanSvc) Confirm(ctx context.Context, venueID, actor string) (*dto.PlanBoard, error) {
	s.lastVenue = venueID
	if s.err != nil {
		return nil, s.err
	}
	return s.board, nil
}

func (s *stubPlanSvc) Board(venueID string) *dto.PlanBoard { return s.board }

// --- Test Suite ---

type PlanPageTestSuite struct {
	suite.Suite
	cfg     *config.Config
	planSvc *stubPlanSvc
	router  *gin.Engine
}

func (suite *PlanPageTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		SessionSecret:         "test-secret",
		SessionExpiryDuration: time.Hour,
	}
	suite.planSvc = &stubPlanSvc{board: &dto.PlanBoard{
		Kind:    domain.PlanKindBudget,
		VenueID: "v1",
		Plans:   []domain.Plan{{PlanID: "p1", Status: domain.PlanDraft, CreatedBy: "ana"}},
	}}

	services := &portssvc.ServiceContainer{
		Venue:  &stubVenueSvc{venues: []domain.Venue{{VenueID: "v1", Name: "The Crown"}}},
		Budget: suite.planSvc,
		Labour: &stubPlanSvc{board: &dto.PlanBoard{Kind: domain.PlanKindLabour}},
	}

	suite.router = gin.New()
	suite.router.SetHTMLTemplate(web.Templates())
	handlers.RegisterRoutes(suite.router, suite.cfg, services)
}

func (suite *PlanPageTestSuite) request(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	token, err := middleware.IssueSessionToken("ana", suite.cfg.SessionSecret, time.Hour, time.Now())
	suite.Require().NoError(err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PlanPageTestSuite) TestShowBoard_ListsPlans() {
	w := suite.request(http.MethodGet, "/budgets?venueId=v1", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "p1")
	suite.Equal(1, suite.planSvc.loads)
}

func (suite *PlanPageTestSuite) TestShowBoard_NoVenueSkipsLoad() {
	w := suite.request(http.MethodGet, "/budgets", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Select a venue")
	suite.Zero(suite.planSvc.loads)
}

func (suite *PlanPageTestSuite) TestCreate_ForwardsOperatorAsActor() {
	w := suite.request(http.MethodPost, "/budgets/create?venueId=v1", url.Values{
		"payload": {`{"total": 1200}`},
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, suite.planSvc.creates)
	// The signed-in operator, not a form field, names the author.
	suite.Equal("ana", suite.planSvc.lastActor)
	// The write names the venue the page was submitted from.
	suite.Equal("v1", suite.planSvc.lastVenue)
}

func (suite *PlanPageTestSuite) TestCreate_FailureRendersPriorStateWithBanner() {
	suite.planSvc.err = apperrors.NewRequestError(http.StatusUnprocessableEntity, "payload is missing totals")

	w := suite.request(http.MethodPost, "/budgets/create?venueId=v1", url.Values{
		"payload": {`{"total": 1200}`},
	})

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "payload is missing totals")
	// The board still shows the pre-submit state.
	suite.Contains(body, "p1")
}

func (suite *PlanPageTestSuite) TestCreate_DuplicateSubmitMessage() {
	suite.planSvc.err = apperrors.ErrSubmitInFlight

	w := suite.request(http.MethodPost, "/budgets/create?venueId=v1", url.Values{
		"payload": {`{}`},
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "already in progress")
}

func TestPlanPageTestSuite(t *testing.T) {
	suite.Run(t, new(PlanPageTestSuite))
}
