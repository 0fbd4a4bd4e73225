package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ログインユーザー向けの /orders
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// セッション必須グループに登録する
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", h.create)
	g.GET("/orders", h.listMine)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id/payment", h.updatePayment)
}

type placeOrderRequest struct {
	TotalAmount float64                       `json:"total_amount"`
	Items       []usecase.PlaceOrderItemInput `json:"items"`
}

type orderResponse struct {
	Success bool                `json:"success"`
	Order   usecase.OrderOutput `json:"order"`
}

func (h *OrderHandler) create(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		TotalAmount: req.TotalAmount,
		Items:       req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse{Success: true, Order: out})
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID := getUserIDFromContext(c)

	outs, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID := getUserIDFromContext(c)
	isAdmin := getRoleFromContext(c) == "admin"

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), userID, isAdmin, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updatePaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
}

func (h *OrderHandler) updatePayment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	//payment_status省略時はpaid扱い
	if req.PaymentStatus == "" {
		req.PaymentStatus = "paid"
	}

	out, err := h.uc.UpdatePayment(c.Request().Context(), userID, id, req.PaymentMethod, req.PaymentStatus)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse{Success: true, Order: out})
}

// AuthSessionミドルウェアが入れた値を取り出す
func getUserIDFromContext(c echo.Context) int64 {
	if v, ok := c.Get(middleware.CtxUserIDKey).(int64); ok {
		return v
	}
	return 0
}

func getRoleFromContext(c echo.Context) string {
	if v, ok := c.Get(middleware.CtxUserRoleKey).(string); ok {
		return v
	}
	return ""
}
