package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
	tx            repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		tx:            tx,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	CategoryID   *int64
	FeaturedOnly bool
}

// 商品＋表示用のカテゴリ名
type ProductOutput struct {
	model.Product
	CategoryName string `json:"category_name,omitempty"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]ProductOutput, error) {
	items, err := u.productRepo.List(ctx, repo.ProductListFilter{
		CategoryID:   in.CategoryID,
		FeaturedOnly: in.FeaturedOnly,
	})
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//カテゴリ名はまとめて引いてから埋める
	names := map[int64]string{}
	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		out := ProductOutput{Product: p}
		if p.CategoryID != nil {
			name, ok := names[*p.CategoryID]
			if !ok {
				c, err := u.categoryRepo.FindByID(ctx, *p.CategoryID)
				if err != nil && err != repo.ErrNotFound {
					return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
				}
				name = c.Name
				names[*p.CategoryID] = name
			}
			out.CategoryName = name
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ProductOutput{Product: p}
	if p.CategoryID != nil {
		c, err := u.categoryRepo.FindByID(ctx, *p.CategoryID)
		if err != nil && err != repo.ErrNotFound {
			return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.CategoryName = c.Name
	}
	return out, nil
}

type AdminProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
	ImageURL    string
	CategoryID  *int64
	Featured    bool
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in AdminProductInput) (ProductOutput, error) {
	if adminUserID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Name and valid price are required")
	}

	id, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Featured:    in.Featured,
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	return u.GetProduct(ctx, id)
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminProductInput) (ProductOutput, error) {
	if adminUserID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Name and valid price are required")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Featured:    in.Featured,
	})
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	return u.GetProduct(ctx, productID)
}

// 在庫の直接更新。調整履歴と監査ログも残す。
func (u *ProductUsecase) AdminUpdateStock(ctx context.Context, adminUserID int64, productID int64, stock int64) (ProductOutput, error) {
	if adminUserID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, stock); err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to update stock")
	}

	if err := u.inventoryRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:   productID,
		AdminUserID: adminUserID,
		Delta:       stock - before.Stock,
	}); err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to update stock")
	}

	beforeJSON := fmt.Sprintf(`{"stock":%d}`, before.Stock)
	afterJSON := fmt.Sprintf(`{"stock":%d}`, stock)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to update stock")
	}

	return u.GetProduct(ctx, productID)
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//存在確認してから消す
	if _, err := u.productRepo.FindByID(ctx, productID); err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	} else if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	return nil
}

// CSVから読んだ行をnameキーで一括アップサートする。1件でも失敗したら全件戻す。
func (u *ProductUsecase) ImportInventory(ctx context.Context, adminUserID int64, rows []InventoryRow) (int, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, row := range rows {
			if err := r.Products().UpsertByName(ctx, model.Product{
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				Stock:       row.Stock,
				ImageURL:    row.ImageURL,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Failed to update inventory")
			}
		}

		afterJSON := fmt.Sprintf(`{"count":%d}`, len(rows))
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionImportInventory,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   0,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update inventory")
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
