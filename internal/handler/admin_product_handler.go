package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// 管理者向けの /admin/products
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.PUT("/products/:id/stock", h.updateStock)
	g.DELETE("/products/:id", h.delete)
	g.POST("/products/upload", h.uploadInventory)
}

type adminProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *int64  `json:"category_id"`
	Featured    bool    `json:"featured"`
}

func (r adminProductRequest) toInput() usecase.AdminProductInput {
	return usecase.AdminProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Featured:    r.Featured,
	}
}

func (h *AdminProductHandler) create(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	var req adminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.AdminCreateProduct(c.Request().Context(), adminUserID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req adminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.AdminUpdateProduct(c.Request().Context(), adminUserID, id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateStockRequest struct {
	Stock *int64 `json:"stock"`
}

func (h *AdminProductHandler) updateStock(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	//stock未指定・負数は弾く
	if req.Stock == nil || *req.Stock < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Valid stock value is required"})
	}

	out, err := h.uc.AdminUpdateStock(c.Request().Context(), adminUserID, id, *req.Stock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), adminUserID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Product deleted successfully"})
}

type uploadInventoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// 在庫CSVの一括取り込み。multipartの"file"を受ける。
func (h *AdminProductHandler) uploadInventory(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File is required"})
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	switch ext {
	case "csv":
		// OK
	case "xls", "xlsx":
		//拡張子としては許可するがパーサ未対応
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "XLS/XLSX parsing is not supported. Please upload a CSV file"})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid file type. Only CSV, XLS, and XLSX files are allowed"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update inventory"})
	}
	defer f.Close()

	rows, err := usecase.ParseInventoryCSV(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid CSV file"})
	}

	count, err := h.uc.ImportInventory(c.Request().Context(), adminUserID, rows)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, uploadInventoryResponse{
		Success: true,
		Message: "Inventory updated successfully",
		Count:   count,
	})
}
