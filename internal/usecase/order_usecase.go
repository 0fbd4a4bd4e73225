package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type PlaceOrderInput struct {
	TotalAmount float64
	Items       []PlaceOrderItemInput
}

type OrderItemOutput struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	//商品名・画像は現在のカタログから引く（スナップショットではない）
	ProductName string  `json:"product_name"`
	ImageURL    string  `json:"image_url"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	Username      string            `json:"username,omitempty"`
	TotalAmount   float64           `json:"total_amount"`
	Status        string            `json:"status"`
	PaymentMethod *string           `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrderは注文ヘッダと明細を1トランザクションで作る。
// total_amountはクライアント申告値をそのまま保存する（サーバ側で再計算しない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if in.TotalAmount < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid total_amount")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			TotalAmount:   in.TotalAmount,
			Status:        model.OrderStatusPlaced,
			PaymentMethod: nil,
			PaymentStatus: model.PaymentStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				//注文時点の価格スナップショット
				Price: it.Price,
			})
		}

		//明細のinsertが1件でも失敗したらヘッダごとロールバック
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		out, err = buildOrderOutput(ctx, r, created)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := buildOrderOutput(ctx, r, o)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// GetOrderは所有者か管理者だけに返す。
// 存在しないidは404、他人の注文は403（既存APIの使い分けをそのまま維持する）。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID != userID && !isAdmin {
			return NewHTTPError(http.StatusForbidden, "Forbidden")
		}

		out, err = buildOrderOutput(ctx, r, o)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdatePaymentは所有者だけが呼べる。
// payment_statusがpaidならstatusをPaidへ、それ以外はPlacedへ上書きする。
// 現在のstatusがどこまで進んでいても関係なく上書きする（既存挙動）。
func (u *OrderUsecase) UpdatePayment(ctx context.Context, userID int64, orderID int64, method string, paymentStatus string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//管理者でも他人の支払いは不可
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "Forbidden")
		}

		ps := model.PaymentStatus(paymentStatus)
		newStatus := model.OrderStatusPlaced
		if ps == model.PaymentStatusPaid {
			newStatus = model.OrderStatusPaid
		}

		if err := r.Orders().UpdatePayment(ctx, orderID, method, ps, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update payment")
		}

		updated, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update payment")
		}

		out, err = buildOrderOutput(ctx, r, updated)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update payment")
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// buildOrderOutputはヘッダ＋明細＋表示用の商品名/画像/ユーザー名を組み立てる。
// DB上status/payment_statusが空ならPlaced/pendingに正規化する。
func buildOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	status := string(o.Status)
	if status == "" {
		status = string(model.OrderStatusPlaced)
	}
	paymentStatus := string(o.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = string(model.PaymentStatusPending)
	}

	username := ""
	if u, err := r.Users().FindByID(ctx, o.UserID); err == nil {
		username = u.Username
	} else if err != repo.ErrNotFound {
		return OrderOutput{}, err
	}

	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, err
	}

	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		out := OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			//Priceはスナップショット値のまま
			Price: it.Price,
		}

		//商品が消えていたら名前・画像は空のまま返す（LEFT JOIN相当）
		if p, err := r.Products().FindByID(ctx, it.ProductID); err == nil {
			out.ProductName = p.Name
			out.ImageURL = p.ImageURL
		} else if err != repo.ErrNotFound {
			return OrderOutput{}, err
		}

		outItems = append(outItems, out)
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Username:      username,
		TotalAmount:   o.TotalAmount,
		Status:        status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: paymentStatus,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}, nil
}
