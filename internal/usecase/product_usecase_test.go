package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductTestUsecase() (*productRepoMock, *categoryRepoMock, *inventoryRepoMock, *auditRepoMock, *txManagerMock, *ProductUsecase) {
	products := new(productRepoMock)
	categories := new(categoryRepoMock)
	inventory := new(inventoryRepoMock)
	audit := new(auditRepoMock)
	tx := &txManagerMock{Repos: &txReposMock{
		products:  products,
		auditLogs: audit,
	}}
	uc := NewProductUsecase(products, categories, inventory, audit, tx)
	return products, categories, inventory, audit, tx, uc
}

// =====================
// List / Get
// =====================

func TestListProducts_FillsCategoryName(t *testing.T) {
	products, categories, _, _, _, uc := newProductTestUsecase()

	products.On("List", mock.Anything, repo.ProductListFilter{CategoryID: int64Ptr(3)}).Return([]model.Product{
		{ID: 1, Name: "Rice", CategoryID: int64Ptr(3)},
		{ID: 2, Name: "Miso", CategoryID: int64Ptr(3)},
	}, nil)
	//同じカテゴリは1回しか引かない
	categories.On("FindByID", mock.Anything, int64(3)).Return(model.Category{ID: 3, Name: "Groceries"}, nil).Once()

	outs, err := uc.ListProducts(context.Background(), ListProductsInput{CategoryID: int64Ptr(3)})
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "Groceries", outs[0].CategoryName)
	assert.Equal(t, "Groceries", outs[1].CategoryName)
	categories.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	products, _, _, _, _, uc := newProductTestUsecase()

	products.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 999)
	assertHTTPError(t, err, http.StatusNotFound, "Product not found")
}

// =====================
// Admin create / update
// =====================

func TestAdminCreateProduct_RequiresNameAndPrice(t *testing.T) {
	products, _, _, _, _, uc := newProductTestUsecase()

	_, err := uc.AdminCreateProduct(context.Background(), 1, AdminProductInput{Name: "", Price: 100})
	assertHTTPError(t, err, http.StatusBadRequest, "Name and valid price are required")

	_, err = uc.AdminCreateProduct(context.Background(), 1, AdminProductInput{Name: "Rice", Price: 0})
	assertHTTPError(t, err, http.StatusBadRequest, "Name and valid price are required")

	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateProduct_NotFound(t *testing.T) {
	products, _, _, _, _, uc := newProductTestUsecase()

	products.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	_, err := uc.AdminUpdateProduct(context.Background(), 1, 999, AdminProductInput{Name: "Rice", Price: 100})
	assertHTTPError(t, err, http.StatusNotFound, "Product not found")
}

// =====================
// Stock update
// =====================

// 在庫更新は履歴（差分）と監査ログを両方残す
func TestAdminUpdateStock_RecordsAdjustmentAndAudit(t *testing.T) {
	products, _, inventory, audit, _, uc := newProductTestUsecase()

	products.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Name: "Rice", Price: 100, Stock: 40}, nil).Once()
	inventory.On("SetStock", mock.Anything, int64(11), int64(25)).Return(nil).Once()
	inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == 11 && a.AdminUserID == 1 && a.Delta == -15
	})).Return(nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.ResourceID == 11 &&
			l.BeforeJSON == `{"stock":40}` &&
			l.AfterJSON == `{"stock":25}`
	})).Return(nil).Once()
	products.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Name: "Rice", Price: 100, Stock: 25}, nil).Once()

	out, err := uc.AdminUpdateStock(context.Background(), 1, 11, 25)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), out.Stock)

	inventory.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUpdateStock_ProductNotFound(t *testing.T) {
	products, _, inventory, _, _, uc := newProductTestUsecase()

	products.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AdminUpdateStock(context.Background(), 1, 999, 10)
	assertHTTPError(t, err, http.StatusNotFound, "Product not found")
	inventory.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// CSV import
// =====================

func TestImportInventory_UpsertsAllRows(t *testing.T) {
	products, _, _, audit, _, uc := newProductTestUsecase()

	rows := []InventoryRow{
		{Name: "Rice", Description: "d1", Price: 100, Stock: 5},
		{Name: "Miso", Description: "d2", Price: 200, Stock: 3, ImageURL: "/img/miso.png"},
	}

	products.On("UpsertByName", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Rice" && p.Price == 100 && p.Stock == 5
	})).Return(nil).Once()
	products.On("UpsertByName", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Miso" && p.ImageURL == "/img/miso.png"
	})).Return(nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionImportInventory && l.AfterJSON == `{"count":2}`
	})).Return(nil).Once()

	count, err := uc.ImportInventory(context.Background(), 1, rows)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	products.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// 途中で失敗したら件数0・汎用500（tx全体が戻る）
func TestImportInventory_FailureAborts(t *testing.T) {
	products, _, _, audit, _, uc := newProductTestUsecase()

	rows := []InventoryRow{
		{Name: "Rice", Price: 100, Stock: 5},
		{Name: "Miso", Price: 200, Stock: 3},
	}

	products.On("UpsertByName", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Rice"
	})).Return(assert.AnError).Once()

	count, err := uc.ImportInventory(context.Background(), 1, rows)
	assert.Equal(t, 0, count)
	assertHTTPError(t, err, http.StatusInternalServerError, "Failed to update inventory")
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
