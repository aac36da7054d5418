package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/handlers"
	"github.com/agrovia/farm_ops_app/internal/middleware"
	"github.com/agrovia/farm_ops_app/internal/utils/queryfilter"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WorkLogService ---
type MockWorkLogService struct {
	mock.Mock
}

func (m *MockWorkLogService) GetWorkLogByID(ctx context.Context, workLogID string, actorID string, actorRole domain.UserRole) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID, actorID, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) SearchWorkLogs(ctx context.Context, params dto.SearchWorkLogsParams, actorID string, actorRole domain.UserRole) (*dto.SearchWorkLogsResponse, error) {
	args := m.Called(ctx, params, actorID, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchWorkLogsResponse), args.Error(1)
}
func (m *MockWorkLogService) GetTodayHours(ctx context.Context, actorID string) (*dto.TodayHoursResponse, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TodayHoursResponse), args.Error(1)
}
func (m *MockWorkLogService) GetWorkLogStats(ctx context.Context, actorID string, startDate, endDate string) (*domain.WorkLogStats, error) {
	args := m.Called(ctx, actorID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLogStats), args.Error(1)
}
func (m *MockWorkLogService) ExportWorkLogsCSV(ctx context.Context, actorID string, actorRole domain.UserRole, startDate, endDate string) ([]byte, error) {
	args := m.Called(ctx, actorID, actorRole, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockWorkLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest, creatorUserID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) ReviewWorkLog(ctx context.Context, workLogID string, req dto.ReviewWorkLogRequest, reviewerUserID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID, req, reviewerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) ReviewWorkLogsBatch(ctx context.Context, req dto.BatchReviewWorkLogsRequest, reviewerUserID string) (*dto.BatchReviewWorkLogsResponse, error) {
	args := m.Called(ctx, req, reviewerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchReviewWorkLogsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WorkLogSvcFacade = (*MockWorkLogService)(nil)

// --- Test Suite ---
type WorkLogHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockWorkLogService *MockWorkLogService
	jwtSecret          string
}

// generateTestToken creates a signed JWT carrying the given user and role.
func (suite *WorkLogHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	claims := middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "foa-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WorkLogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, "foa-test"))

	suite.mockWorkLogService = new(MockWorkLogService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterWorkLogRoutes(v1, suite.mockWorkLogService)
}

func (suite *WorkLogHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_Success() {
	creatorID := uuid.NewString()
	reqBody := dto.CreateWorkLogRequest{
		LocationCode:     "A-12",
		PositionName:     "North Field",
		WorkCategoryName: "Harvesting",
		Crop:             "Tomato",
		StartTime:        "08:00",
		EndTime:          "17:00",
		HarvestQuantity:  decimal.NewFromInt(120),
		Details:          "Row 4 through 9",
	}
	expected := &domain.WorkLog{
		WorkLogID:        uuid.NewString(),
		UserID:           creatorID,
		LocationCode:     reqBody.LocationCode,
		PositionName:     reqBody.PositionName,
		WorkCategoryName: reqBody.WorkCategoryName,
		Crop:             reqBody.Crop,
		StartTime:        "08:00",
		EndTime:          "17:00",
		WorkHours:        decimal.NewFromInt(8),
		HarvestQuantity:  reqBody.HarvestQuantity,
		Details:          reqBody.Details,
		Status:           domain.WorkLogPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	suite.mockWorkLogService.On("CreateWorkLog",
		mock.Anything,
		reqBody,
		creatorID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(creatorID, domain.RoleWorker)
	w := suite.doJSON(http.MethodPost, "/api/v1/work-logs", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkLogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.WorkLogID, resp.WorkLogID)
	suite.Equal("pending", resp.Status)
	suite.True(resp.WorkHours.Equal(decimal.NewFromInt(8)))
	suite.Nil(resp.ReviewerID)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_ValidationError() {
	creatorID := uuid.NewString()
	reqBody := dto.CreateWorkLogRequest{
		LocationCode: "A-12",
		StartTime:    "17:00",
		EndTime:      "08:00",
	}

	// Decoded decimals never compare DeepEqual to their zero value, so match fields.
	suite.mockWorkLogService.On("CreateWorkLog",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateWorkLogRequest) bool {
			return r.LocationCode == reqBody.LocationCode &&
				r.StartTime == reqBody.StartTime &&
				r.EndTime == reqBody.EndTime &&
				r.HarvestQuantity.Equal(reqBody.HarvestQuantity)
		}),
		creatorID,
	).Return(nil, fmt.Errorf("%w: endTime must be after startTime", apperrors.ErrValidation)).Once()

	token := suite.generateTestToken(creatorID, domain.RoleWorker)
	w := suite.doJSON(http.MethodPost, "/api/v1/work-logs", token, reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(false, body["success"])
	suite.Contains(body["error"], "endTime must be after startTime")
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_Unauthorized() {
	w := suite.doJSON(http.MethodPost, "/api/v1/work-logs", "", dto.CreateWorkLogRequest{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "CreateWorkLog")
}

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_WrongIssuerRejected() {
	claims := middleware.Claims{
		Role: string(domain.RoleWorker),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-service",
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	w := suite.doJSON(http.MethodPost, "/api/v1/work-logs", signed, dto.CreateWorkLogRequest{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Invalid token issuer", body["error"])
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "CreateWorkLog")
}

func (suite *WorkLogHandlerTestSuite) TestSearchWorkLogs_Success() {
	actorID := uuid.NewString()
	expected := &dto.SearchWorkLogsResponse{
		Data: []dto.WorkLogResponse{
			{WorkLogID: uuid.NewString(), UserID: actorID, Status: "pending"},
			{WorkLogID: uuid.NewString(), UserID: actorID, Status: "approved"},
		},
		Pagination: queryfilter.Pagination{Total: 2, Page: 1, Limit: 20, TotalPages: 1},
	}

	suite.mockWorkLogService.On("SearchWorkLogs",
		mock.Anything,
		mock.MatchedBy(func(p dto.SearchWorkLogsParams) bool {
			return p.Status == "pending" && p.Page == 1 && p.Limit == 20
		}),
		actorID,
		domain.RoleWorker,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(actorID, domain.RoleWorker)
	w := suite.doJSON(http.MethodGet, "/api/v1/work-logs/search?status=pending&page=1&limit=20", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SearchWorkLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Data, 2)
	suite.Equal(int64(2), resp.Pagination.Total)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestGetWorkLog_NotFound() {
	actorID := uuid.NewString()
	workLogID := uuid.NewString()

	suite.mockWorkLogService.On("GetWorkLogByID",
		mock.Anything,
		workLogID,
		actorID,
		domain.RoleWorker,
	).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(actorID, domain.RoleWorker)
	w := suite.doJSON(http.MethodGet, "/api/v1/work-logs/"+workLogID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestReviewWorkLog_Success() {
	reviewerID := uuid.NewString()
	workLogID := uuid.NewString()
	reqBody := dto.ReviewWorkLogRequest{Status: "approved"}
	now := time.Now()
	expected := &domain.WorkLog{
		WorkLogID:  workLogID,
		UserID:     uuid.NewString(),
		StartTime:  "08:00",
		EndTime:    "12:00",
		WorkHours:  decimal.NewFromInt(4),
		Status:     domain.WorkLogApproved,
		ReviewerID: &reviewerID,
		ReviewedAt: &now,
	}

	suite.mockWorkLogService.On("ReviewWorkLog",
		mock.Anything,
		workLogID,
		reqBody,
		reviewerID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(reviewerID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPatch, "/api/v1/work-logs/"+workLogID+"/review", token, reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WorkLogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("approved", resp.Status)
	suite.Require().NotNil(resp.ReviewerID)
	suite.Equal(reviewerID, *resp.ReviewerID)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestReviewWorkLog_ForbiddenForWorker() {
	workerID := uuid.NewString()
	workLogID := uuid.NewString()

	token := suite.generateTestToken(workerID, domain.RoleWorker)
	w := suite.doJSON(http.MethodPatch, "/api/v1/work-logs/"+workLogID+"/review", token, dto.ReviewWorkLogRequest{Status: "approved"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "ReviewWorkLog")
}

func (suite *WorkLogHandlerTestSuite) TestReviewWorkLogsBatch_Success() {
	reviewerID := uuid.NewString()
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	reqBody := dto.BatchReviewWorkLogsRequest{WorkLogIDs: ids, Status: "rejected"}
	expected := &dto.BatchReviewWorkLogsResponse{
		Message:      "3 work logs reviewed",
		UpdatedCount: 3,
		WorkLogs: []dto.WorkLogResponse{
			{WorkLogID: ids[0], Status: "rejected"},
			{WorkLogID: ids[1], Status: "rejected"},
			{WorkLogID: ids[2], Status: "rejected"},
		},
	}

	suite.mockWorkLogService.On("ReviewWorkLogsBatch",
		mock.Anything,
		reqBody,
		reviewerID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(reviewerID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPut, "/api/v1/work-logs/batch-review", token, reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchReviewWorkLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(3), resp.UpdatedCount)
	suite.Len(resp.WorkLogs, 3)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestReviewWorkLogsBatch_EmptyIDsRejectedByBinding() {
	reviewerID := uuid.NewString()
	reqBody := dto.BatchReviewWorkLogsRequest{WorkLogIDs: []string{}, Status: "approved"}

	token := suite.generateTestToken(reviewerID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPut, "/api/v1/work-logs/batch-review", token, reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "ReviewWorkLogsBatch")
}

func (suite *WorkLogHandlerTestSuite) TestGetTodayHours_Success() {
	actorID := uuid.NewString()
	expected := &dto.TodayHoursResponse{
		Date:           time.Now().Format("2006-01-02"),
		TotalHours:     decimal.NewFromFloat(6.5),
		TargetHours:    decimal.NewFromInt(8),
		RemainingHours: decimal.NewFromFloat(1.5),
	}

	suite.mockWorkLogService.On("GetTodayHours",
		mock.Anything,
		actorID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(actorID, domain.RoleWorker)
	w := suite.doJSON(http.MethodGet, "/api/v1/work-logs/today-hours", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TodayHoursResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.TotalHours.Equal(decimal.NewFromFloat(6.5)))
	suite.True(resp.RemainingHours.Equal(decimal.NewFromFloat(1.5)))
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestExportWorkLogs_Success() {
	actorID := uuid.NewString()
	csvContent := []byte("date,username,location,position,category,crop,start,end,hours,harvest,status,details\n")

	suite.mockWorkLogService.On("ExportWorkLogsCSV",
		mock.Anything,
		actorID,
		domain.RoleAdmin,
		"2026-08-01",
		"2026-08-31",
	).Return(csvContent, nil).Once()

	token := suite.generateTestToken(actorID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodGet, "/api/v1/work-logs/export?startDate=2026-08-01&endDate=2026-08-31", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.Equal(csvContent, w.Body.Bytes())
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func TestWorkLogHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkLogHandlerTestSuite))
}
