package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//自分の注文一覧（新しい順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//管理者用の全注文一覧（新しい順）
	ListAll(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	//statusの無条件上書き。遷移表は設けない。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//payment_method/payment_statusと、そこから導出したstatusを同時に書く。
	UpdatePayment(ctx context.Context, orderID int64, method string, paymentStatus model.PaymentStatus, status model.OrderStatus) error
}
