package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/handlers"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockDecisionService *MockDecisionService
	mockQueryService    *MockApprovalQueryService
	mockStatsService    *MockStatisticsService
	jwtSecret           string
}

// generateTestToken creates a signed JWT whose subject is userID.
func generateTestToken(t *testing.T, secret, userID string) string {
	return generateTestTokenWithRole(t, secret, userID, "")
}

// generateTestTokenWithRole creates a signed JWT carrying a role claim.
func generateTestTokenWithRole(t *testing.T, secret, userID, role string) string {
	t.Helper()
	claims := middleware.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "approvals-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func (s *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.router.Use(middleware.AuthMiddleware(s.jwtSecret))

	s.mockDecisionService = new(MockDecisionService)
	s.mockQueryService = new(MockApprovalQueryService)
	s.mockStatsService = new(MockStatisticsService)

	v1 := s.router.Group("/api/v1")
	handlers.RegisterApprovalRoutes(v1, s.mockDecisionService, s.mockQueryService, s.mockStatsService)
}

func (s *ApprovalHandlerTestSuite) do(method, url, userID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken(s.T(), s.jwtSecret, userID))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ApprovalHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decidedOutcome(approvalID, approverID string, status domain.ApprovalStatus, expenseStatus domain.ExpenseStatus) *domain.DecisionOutcome {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &domain.DecisionOutcome{
		Approval: domain.Approval{
			ApprovalID: approvalID,
			ExpenseID:  "exp-1",
			ApproverID: approverID,
			Status:     status,
			DecidedAt:  &now,
			CreatedAt:  now.Add(-time.Hour),
			UpdatedAt:  now,
		},
		ExpenseStatus: expenseStatus,
	}
}

func (s *ApprovalHandlerTestSuite) TestApprove_WithComments() {
	s.mockDecisionService.On("Decide", mock.Anything, "appr-1", "carol", domain.ApprovalApproved,
		mock.MatchedBy(func(c *string) bool { return c != nil && *c == "Looks good" }),
	).Return(decidedOutcome("appr-1", "carol", domain.ApprovalApproved, domain.ExpenseApproved), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/approve", "carol", `{"comments":"Looks good"}`)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.DecisionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("appr-1", resp.Approval.ApprovalID)
	s.Equal(domain.ApprovalApproved, resp.Approval.Status)
	s.Equal(domain.ExpenseApproved, resp.ExpenseStatus)
	s.mockDecisionService.AssertExpectations(s.T())
}

func (s *ApprovalHandlerTestSuite) TestReject_WithoutBody() {
	s.mockDecisionService.On("Decide", mock.Anything, "appr-1", "carol", domain.ApprovalRejected, (*string)(nil)).
		Return(decidedOutcome("appr-1", "carol", domain.ApprovalRejected, domain.ExpenseRejected), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/reject", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"expenseStatus":"rejected"`)
	s.mockDecisionService.AssertExpectations(s.T())
}

func (s *ApprovalHandlerTestSuite) TestDecide_CommentsTooLong() {
	body := fmt.Sprintf(`{"comments":%q}`, strings.Repeat("x", 2001))

	w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/approve", "carol", body)

	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.decodeError(w)
	s.Equal(apperrors.CodeValidation, resp.Code)
	s.Contains(resp.Error, "Comments")
	s.mockDecisionService.AssertNotCalled(s.T(), "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalHandlerTestSuite) TestDecide_MalformedBody() {
	w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/approve", "carol", `{"comments":`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeValidation, s.decodeError(w).Code)
}

func (s *ApprovalHandlerTestSuite) TestDecide_ErrorMapping() {
	cases := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"not found or forbidden", apperrors.ErrNotFoundOrForbidden, http.StatusNotFound, apperrors.CodeNotFoundOrForbidden, false},
		{"already decided", fmt.Errorf("approval appr-1: %w", apperrors.ErrAlreadyDecided), http.StatusConflict, apperrors.CodeAlreadyDecided, false},
		{"validation", apperrors.NewValidationFailedError("comments too long"), http.StatusBadRequest, apperrors.CodeValidation, false},
		{"persistence", apperrors.NewPersistenceError("database unavailable", nil), http.StatusServiceUnavailable, apperrors.CodePersistence, true},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, apperrors.CodeInternal, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.mockDecisionService.On("Decide", mock.Anything, "appr-1", "carol", domain.ApprovalApproved, mock.Anything).
				Return(nil, tc.err).Once()

			w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/approve", "carol", "")

			s.Equal(tc.status, w.Code)
			resp := s.decodeError(w)
			s.Equal(tc.code, resp.Code)
			s.Equal(tc.retryable, resp.Retryable)
		})
	}
}

func (s *ApprovalHandlerTestSuite) TestDecide_HidesServerErrorDetails() {
	s.mockDecisionService.On("Decide", mock.Anything, "appr-1", "carol", domain.ApprovalApproved, mock.Anything).
		Return(nil, apperrors.NewPersistenceError("db", fmt.Errorf("dial tcp 10.0.0.5:5432: refused"))).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/appr-1/approve", "carol", "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.NotContains(w.Body.String(), "10.0.0.5")
	s.Equal("Failed to record decision", s.decodeError(w).Error)
}

func (s *ApprovalHandlerTestSuite) TestDecide_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/approvals/appr-1/approve", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ApprovalHandlerTestSuite) TestListPending_Success() {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	page := domain.ApprovalPage{
		Items: []domain.Approval{{ApprovalID: "appr-2", ExpenseID: "exp-2", ApproverID: "carol", Status: domain.ApprovalPending, CreatedAt: created}},
		Total: 3,
		Page:  2,
		Size:  1,
		Pages: 3,
	}
	s.mockQueryService.On("ListPending", mock.Anything, "carol", domain.PageRequest{Page: 2, Size: 1}).Return(page, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/pending?page=2&size=1", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListApprovalsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Items, 1)
	s.Equal("appr-2", resp.Items[0].ApprovalID)
	s.Equal(3, resp.Total)
	s.Equal(3, resp.Pages)
	s.mockQueryService.AssertExpectations(s.T())
}

func (s *ApprovalHandlerTestSuite) TestListPending_EmptyPageIsArray() {
	s.mockQueryService.On("ListPending", mock.Anything, "carol", domain.PageRequest{}).
		Return(domain.ApprovalPage{Page: 1, Size: 50}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/pending", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"items":[]`)
}

func (s *ApprovalHandlerTestSuite) TestListPending_InvalidPage() {
	w := s.do(http.MethodGet, "/api/v1/approvals/pending?page=-1", "carol", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockQueryService.AssertNotCalled(s.T(), "ListPending", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalHandlerTestSuite) TestListPending_PageAboveLimit() {
	w := s.do(http.MethodGet, fmt.Sprintf("/api/v1/approvals/pending?page=%d", domain.MaxPage+1), "carol", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeValidation, s.decodeError(w).Code)
	s.mockQueryService.AssertNotCalled(s.T(), "ListPending", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalHandlerTestSuite) TestGetApproval_Success() {
	details := &domain.ApprovalDetails{
		Approval: decidedOutcome("appr-1", "carol", domain.ApprovalApproved, domain.ExpenseApproved).Approval,
		Expense: domain.Expense{
			ExpenseID:   "exp-1",
			UserID:      "alice",
			CategoryID:  "travel",
			Description: "Flight to Berlin",
			Amount:      decimal.RequireFromString("420.50"),
			Currency:    "USD",
			Status:      domain.ExpenseApproved,
		},
	}
	s.mockQueryService.On("GetApproval", mock.Anything, "appr-1", "alice").Return(details, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/appr-1", "alice", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovalDetailsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("appr-1", resp.Approval.ApprovalID)
	s.Equal("carol", resp.Approval.ApproverID)
	s.Equal("exp-1", resp.Expense.ExpenseID)
	s.Equal("Flight to Berlin", resp.Expense.Description)
	s.True(resp.Expense.Amount.Equal(decimal.RequireFromString("420.5")))
}

func (s *ApprovalHandlerTestSuite) TestGetApproval_NotVisible() {
	s.mockQueryService.On("GetApproval", mock.Anything, "appr-1", "mallory").Return(nil, apperrors.ErrNotFoundOrForbidden).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/appr-1", "mallory", "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(apperrors.CodeNotFoundOrForbidden, s.decodeError(w).Code)
}

func (s *ApprovalHandlerTestSuite) TestStaticRoutesWinOverApprovalID() {
	s.mockQueryService.On("ListPending", mock.Anything, "carol", domain.PageRequest{}).
		Return(domain.ApprovalPage{Page: 1, Size: domain.DefaultPageSize}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/pending", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	s.mockQueryService.AssertNotCalled(s.T(), "GetApproval", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalHandlerTestSuite) TestBulkApprove_ReportsEachApproval() {
	result := domain.BulkDecisionResult{
		Decision: domain.ApprovalApproved,
		Items: []domain.BulkDecisionItem{
			{ApprovalID: "appr-1", Outcome: decidedOutcome("appr-1", "carol", domain.ApprovalApproved, domain.ExpenseApproved)},
			{ApprovalID: "appr-2", Err: apperrors.ErrAlreadyDecided},
			{ApprovalID: "appr-3", Err: apperrors.NewPersistenceError("failed to update approval", fmt.Errorf("connection reset"))},
		},
		Succeeded: 1,
		Failed:    2,
	}
	s.mockDecisionService.On("DecideBulk", mock.Anything, []string{"appr-1", "appr-2", "appr-3"}, "carol", domain.ApprovalApproved,
		mock.MatchedBy(func(c *string) bool { return c != nil && *c == "month end" }),
	).Return(result, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/bulk-approve", "carol", `{"approvalIDs":["appr-1","appr-2","appr-3"],"comments":"month end"}`)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.BulkDecisionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Bulk approval completed: 1/3 successful", resp.Message)
	s.Equal(3, resp.Total)
	s.Equal(1, resp.Successful)
	s.Equal(2, resp.Failed)
	s.Require().Len(resp.Results, 3)
	s.Equal("approved", resp.Results[0].Status)
	s.Equal(domain.ExpenseApproved, resp.Results[0].ExpenseStatus)
	s.Equal("failed", resp.Results[1].Status)
	s.Equal(apperrors.CodeAlreadyDecided, resp.Results[1].Code)
	s.False(resp.Results[1].Retryable)
	s.Equal("failed", resp.Results[2].Status)
	s.Equal(apperrors.CodePersistence, resp.Results[2].Code)
	s.True(resp.Results[2].Retryable)
	s.Equal("Failed to record decision", resp.Results[2].Error)
	s.NotContains(w.Body.String(), "connection reset")
}

func (s *ApprovalHandlerTestSuite) TestBulkReject_Message() {
	s.mockDecisionService.On("DecideBulk", mock.Anything, []string{"appr-1"}, "carol", domain.ApprovalRejected, (*string)(nil)).
		Return(domain.BulkDecisionResult{
			Decision:  domain.ApprovalRejected,
			Items:     []domain.BulkDecisionItem{{ApprovalID: "appr-1", Outcome: decidedOutcome("appr-1", "carol", domain.ApprovalRejected, domain.ExpenseRejected)}},
			Succeeded: 1,
		}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/bulk-reject", "carol", `{"approvalIDs":["appr-1"]}`)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"message":"Bulk rejection completed: 1/1 successful"`)
	s.Contains(w.Body.String(), `"status":"rejected"`)
}

func (s *ApprovalHandlerTestSuite) TestBulkApprove_InvalidBodies() {
	tooMany := make([]string, domain.MaxBulkDecisions+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("appr-%d", i)
	}
	tooManyBody, err := json.Marshal(dto.BulkDecisionRequest{ApprovalIDs: tooMany})
	s.Require().NoError(err)

	for name, body := range map[string]string{
		"missing ids":  `{}`,
		"empty ids":    `{"approvalIDs":[]}`,
		"blank id":     `{"approvalIDs":["appr-1",""]}`,
		"too many ids": string(tooManyBody),
		"not json":     `{"approvalIDs":`,
	} {
		w := s.do(http.MethodPost, "/api/v1/approvals/bulk-approve", "carol", body)
		s.Equal(http.StatusBadRequest, w.Code, name)
	}
	s.mockDecisionService.AssertNotCalled(s.T(), "DecideBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalHandlerTestSuite) TestBulkApprove_ServiceValidationError() {
	s.mockDecisionService.On("DecideBulk", mock.Anything, []string{"appr-1"}, "carol", domain.ApprovalApproved, mock.Anything).
		Return(domain.BulkDecisionResult{}, apperrors.NewValidationFailedError("comments must be at most 2000 characters")).Once()

	w := s.do(http.MethodPost, "/api/v1/approvals/bulk-approve", "carol", `{"approvalIDs":["appr-1"],"comments":"  x  "}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("comments must be at most 2000 characters", s.decodeError(w).Error)
}

func (s *ApprovalHandlerTestSuite) TestListHistory_Success() {
	s.mockQueryService.On("ListHistory", mock.Anything, "carol", domain.PageRequest{Size: 10}).
		Return(domain.ApprovalPage{Items: []domain.Approval{{ApprovalID: "appr-9", Status: domain.ApprovalRejected}}, Total: 1, Page: 1, Size: 10, Pages: 1}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/history?size=10", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"rejected"`)
	s.mockQueryService.AssertExpectations(s.T())
}

func (s *ApprovalHandlerTestSuite) TestGetStats_WithWindow() {
	stats := domain.ApprovalStats{
		ProcessedCount:       3,
		PendingCount:         1,
		ApprovedCount:        2,
		RejectedCount:        1,
		AvgDecisionTimeHours: decimal.RequireFromString("2.5"),
	}
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 23, 59, 59, 999999999, time.UTC)
	s.mockStatsService.On("Stats", mock.Anything, "carol",
		mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(from) }),
		mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(to) }),
	).Return(stats, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/stats?from=2024-05-01&to=2024-05-31", "carol", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.StatsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(3, resp.ProcessedCount)
	s.Equal(2, resp.ApprovedCount)
	s.True(resp.AvgDecisionTimeHours.Equal(decimal.RequireFromString("2.5")))
	s.mockStatsService.AssertExpectations(s.T())
}

func (s *ApprovalHandlerTestSuite) TestGetStats_InvalidBound() {
	w := s.do(http.MethodGet, "/api/v1/approvals/stats?from=yesterday", "carol", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decodeError(w).Error, "invalid from")
}

func (s *ApprovalHandlerTestSuite) TestGetStats_ReversedWindow() {
	s.mockStatsService.On("Stats", mock.Anything, "carol", mock.Anything, mock.Anything).
		Return(domain.ApprovalStats{}, apperrors.NewValidationFailedError("from must not be after to")).Once()

	w := s.do(http.MethodGet, "/api/v1/approvals/stats?from=2024-06-01&to=2024-05-01", "carol", "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("from must not be after to", s.decodeError(w).Error)
}

func TestApprovalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}
