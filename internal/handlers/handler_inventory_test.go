package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
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
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryService) GetItemDetail(ctx context.Context, itemID string) (*dto.InventoryItemDetail, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InventoryItemDetail), args.Error(1)
}
func (m *MockInventoryService) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryService) ListItemTransactions(ctx context.Context, itemID string, params dto.ListInventoryTransactionsParams) (*dto.ListInventoryTransactionsResponse, error) {
	args := m.Called(ctx, itemID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInventoryTransactionsResponse), args.Error(1)
}
func (m *MockInventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, actorID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest, actorID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryService) AdjustQuantity(ctx context.Context, itemID string, req dto.AdjustInventoryRequest, actorID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryService) ImportItemsCSV(ctx context.Context, r io.Reader, actorID string) (*dto.ImportInventoryResponse, error) {
	args := m.Called(ctx, r, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportInventoryResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

// --- Test Suite ---
type InventoryHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockInventoryService *MockInventoryService
	jwtSecret            string
}

func (suite *InventoryHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
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

func (suite *InventoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, "foa-test"))

	suite.mockInventoryService = new(MockInventoryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInventoryRoutes(v1, suite.mockInventoryService)
}

// --- Test Cases ---

func (suite *InventoryHandlerTestSuite) TestListLowStockItems_Success() {
	actorID := uuid.NewString()
	items := []domain.InventoryItem{
		{ItemID: uuid.NewString(), Code: "FERT-01", Name: "Fertilizer", Quantity: decimal.NewFromInt(2), MinimumStock: decimal.NewFromInt(5)},
	}

	suite.mockInventoryService.On("ListLowStockItems", mock.Anything).Return(items, nil).Once()

	token := suite.generateTestToken(actorID, domain.RoleWorker)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/inventory/low-stock", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InventoryItemListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().Len(resp.Data, 1)
	suite.True(resp.Data[0].LowStock)
	suite.mockInventoryService.AssertExpectations(suite.T())
}

func (suite *InventoryHandlerTestSuite) TestAdjustQuantity_InsufficientStock() {
	actorID := uuid.NewString()
	itemID := uuid.NewString()
	reqBody := dto.AdjustInventoryRequest{Adjustment: decimal.NewFromInt(-50), Reason: "spoilage"}

	suite.mockInventoryService.On("AdjustQuantity",
		mock.Anything,
		itemID,
		reqBody,
		actorID,
	).Return(nil, apperrors.ErrInsufficientStock).Once()

	payload, _ := json.Marshal(reqBody)
	token := suite.generateTestToken(actorID, domain.RoleAdmin)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/inventory/"+itemID+"/adjust", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(false, body["success"])
	suite.mockInventoryService.AssertExpectations(suite.T())
}

func (suite *InventoryHandlerTestSuite) TestCreateItem_ForbiddenForWorker() {
	workerID := uuid.NewString()
	payload, _ := json.Marshal(dto.CreateInventoryItemRequest{Code: "SEED-01", Name: "Tomato Seeds"})

	token := suite.generateTestToken(workerID, domain.RoleWorker)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockInventoryService.AssertNotCalled(suite.T(), "CreateItem")
}

func (suite *InventoryHandlerTestSuite) TestImportItems_Success() {
	actorID := uuid.NewString()
	expected := &dto.ImportInventoryResponse{Success: true, ImportedCount: 4, SkippedCount: 1}

	suite.mockInventoryService.On("ImportItemsCSV",
		mock.Anything,
		mock.Anything,
		actorID,
	).Return(expected, nil).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "items.csv")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("code,name,quantity\nSEED-01,Tomato Seeds,10\n"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	token := suite.generateTestToken(actorID, domain.RoleAdmin)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/inventory/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ImportInventoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(4), resp.ImportedCount)
	suite.Equal(int64(1), resp.SkippedCount)
	suite.mockInventoryService.AssertExpectations(suite.T())
}

func (suite *InventoryHandlerTestSuite) TestImportItems_MissingFile() {
	actorID := uuid.NewString()

	token := suite.generateTestToken(actorID, domain.RoleAdmin)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/inventory/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInventoryService.AssertNotCalled(suite.T(), "ImportItemsCSV")
}

func TestInventoryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}
