package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/agrovia/farm_ops_app/internal/apperrors"
	"github.com/agrovia/farm_ops_app/internal/core/domain"
	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/core/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
)

// --- Mock InventoryRepository (based on InventoryService usage) ---
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) FindItemByCode(ctx context.Context, code string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, code)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockInventoryRepository) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockInventoryRepository) ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error) {
	args := m.Called(ctx, itemID, limit, nextToken)
	var txns []domain.InventoryTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.InventoryTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem, opening *domain.InventoryTransaction) error {
	args := m.Called(ctx, item, opening)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) AdjustQuantity(ctx context.Context, itemID string, delta decimal.Decimal, entry domain.InventoryTransaction) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID, delta, entry)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) UpsertItems(ctx context.Context, items []domain.InventoryItem) (int64, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockUserRepo)
}

// --- CreateItem Tests ---

func (suite *InventoryServiceTestSuite) TestCreateItem_WritesOpeningLedgerEntry() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateInventoryItemRequest{
		Code:     "FERT-01",
		Name:     "Nitrogen fertilizer",
		Quantity: decimal.NewFromInt(40),
		Unit:     "kg",
	}

	suite.mockInventoryRepo.On("FindItemByCode", ctx, "FERT-01").Return(nil, nil).Once()
	suite.mockInventoryRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.Code == "FERT-01" && item.Quantity.Equal(decimal.NewFromInt(40))
	}), mock.MatchedBy(func(opening *domain.InventoryTransaction) bool {
		return opening != nil && opening.Adjustment.Equal(decimal.NewFromInt(40)) && opening.ActorID == actorID
	})).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.NotEmpty(item.ItemID)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateItem_ZeroQuantityHasNoOpeningEntry() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{Code: "SEED-02", Name: "Tomato seeds"}

	suite.mockInventoryRepo.On("FindItemByCode", ctx, "SEED-02").Return(nil, nil).Once()
	suite.mockInventoryRepo.On("SaveItem", ctx, mock.AnythingOfType("domain.InventoryItem"), (*domain.InventoryTransaction)(nil)).
		Return(nil).Once()

	_, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateItem_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{Code: "FERT-01", Name: "Nitrogen fertilizer"}
	existing := &domain.InventoryItem{ItemID: uuid.NewString(), Code: "FERT-01", Name: "Nitrogen fertilizer"}

	suite.mockInventoryRepo.On("FindItemByCode", ctx, "FERT-01").Return(existing, nil).Once()

	_, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "FERT-01")
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCreateItem_DuplicateCodeRaceOnSave() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{Code: "FERT-01", Name: "Nitrogen fertilizer"}

	suite.mockInventoryRepo.On("FindItemByCode", ctx, "FERT-01").Return(nil, nil).Once()
	suite.mockInventoryRepo.On("SaveItem", ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "FERT-01")
}

func (suite *InventoryServiceTestSuite) TestCreateItem_NegativeQuantityRejected() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{Code: "X", Name: "Y", Quantity: decimal.NewFromInt(-1)}

	_, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything, mock.Anything)
}

// --- AdjustQuantity Tests ---

func (suite *InventoryServiceTestSuite) TestAdjustQuantity_Success() {
	ctx := context.Background()
	itemID := uuid.NewString()
	actorID := uuid.NewString()
	delta := decimal.NewFromInt(-5)

	updated := &domain.InventoryItem{ItemID: itemID, Quantity: decimal.NewFromInt(35)}

	suite.mockUserRepo.On("FindUserByID", ctx, actorID).
		Return(&domain.User{UserID: actorID, Name: "Dana Admin"}, nil).Once()
	suite.mockInventoryRepo.On("AdjustQuantity", ctx, itemID, delta, mock.MatchedBy(func(entry domain.InventoryTransaction) bool {
		return entry.ItemID == itemID &&
			entry.Adjustment.Equal(delta) &&
			entry.ActorID == actorID &&
			entry.ActorName == "Dana Admin" &&
			entry.Reason == "spraying field 3"
	})).Return(updated, nil).Once()

	item, err := suite.service.AdjustQuantity(ctx, itemID, dto.AdjustInventoryRequest{Adjustment: delta, Reason: "spraying field 3"}, actorID)

	suite.Require().NoError(err)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(35)))
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAdjustQuantity_InsufficientStock() {
	ctx := context.Background()
	itemID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, mock.Anything).Return(nil, nil).Once()
	suite.mockInventoryRepo.On("AdjustQuantity", ctx, itemID, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.AdjustQuantity(ctx, itemID, dto.AdjustInventoryRequest{Adjustment: decimal.NewFromInt(-100)}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *InventoryServiceTestSuite) TestAdjustQuantity_ZeroRejected() {
	ctx := context.Background()

	_, err := suite.service.AdjustQuantity(ctx, uuid.NewString(), dto.AdjustInventoryRequest{Adjustment: decimal.Zero}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- GetItemDetail Tests ---

func (suite *InventoryServiceTestSuite) TestGetItemDetail_IncludesRecentLedger() {
	ctx := context.Background()
	itemID := uuid.NewString()

	item := &domain.InventoryItem{
		ItemID:       itemID,
		Code:         "FERT-01",
		Name:         "Nitrogen fertilizer",
		Quantity:     decimal.NewFromInt(10),
		MinimumStock: decimal.NewFromInt(10),
	}
	txns := []domain.InventoryTransaction{
		{TransactionID: uuid.NewString(), ItemID: itemID, Adjustment: decimal.NewFromInt(-5)},
	}

	suite.mockInventoryRepo.On("FindItemByID", ctx, itemID).Return(item, nil).Once()
	suite.mockInventoryRepo.On("ListTransactionsByItemID", ctx, itemID, 10, (*string)(nil)).
		Return(txns, nil, nil).Once()

	detail, err := suite.service.GetItemDetail(ctx, itemID)

	suite.Require().NoError(err)
	suite.Equal("FERT-01", detail.Code)
	suite.True(detail.LowStock) // at minimum counts as low
	suite.Len(detail.Transactions, 1)
}

func (suite *InventoryServiceTestSuite) TestGetItemDetail_NotFound() {
	ctx := context.Background()
	itemID := uuid.NewString()

	suite.mockInventoryRepo.On("FindItemByID", ctx, itemID).Return(nil, nil).Once()

	_, err := suite.service.GetItemDetail(ctx, itemID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ImportItemsCSV Tests ---

func (suite *InventoryServiceTestSuite) TestImportItemsCSV_SkipsInvalidRows() {
	ctx := context.Background()
	actorID := uuid.NewString()
	csvData := strings.Join([]string{
		"code,name,qty,min_stock,unit",
		"FERT-01,Nitrogen fertilizer,40,10,kg",
		",Missing code,5,1,kg",
		"SEED-02,Tomato seeds,not-a-number,1,bag",
		"TOOL-03,Pruning shears,12,2,pcs",
	}, "\n")

	suite.mockInventoryRepo.On("UpsertItems", ctx, mock.MatchedBy(func(items []domain.InventoryItem) bool {
		return len(items) == 2 && items[0].Code == "FERT-01" && items[1].Code == "TOOL-03"
	})).Return(int64(2), nil).Once()

	resp, err := suite.service.ImportItemsCSV(ctx, strings.NewReader(csvData), actorID)

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal(int64(2), resp.ImportedCount)
	suite.Equal(int64(2), resp.SkippedCount)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestImportItemsCSV_MissingCodeColumn() {
	ctx := context.Background()
	csvData := "name,quantity\nTomato seeds,5\n"

	_, err := suite.service.ImportItemsCSV(ctx, strings.NewReader(csvData), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpsertItems", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestImportItemsCSV_EmptyFileRejected() {
	ctx := context.Background()

	_, err := suite.service.ImportItemsCSV(ctx, strings.NewReader(""), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
