package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced      OrderStatus = "Placed"
	OrderStatusPaid        OrderStatus = "Paid"
	OrderStatusInProgress  OrderStatus = "In Progress"
	OrderStatusForDelivery OrderStatus = "For Delivery"
	OrderStatusCompleted   OrderStatus = "Completed"
	OrderStatusCancelled   OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// status / payment_status はDB上nullable。
// 空で読めたら Placed / pending として扱う（読み出し側で正規化）。
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64         `gorm:"not null;index" json:"user_id"`
	TotalAmount   float64       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        OrderStatus   `gorm:"type:varchar(20)" json:"status"`
	PaymentMethod *string       `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20)" json:"payment_status"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
