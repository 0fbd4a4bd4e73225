package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	//ヘッダと同一トランザクション内で全件insertする
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
