package model

import "time"

// NameはCSV一括アップサートのキーなのでunique。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int64     `gorm:"not null;default:0" json:"stock"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	CategoryID  *int64    `gorm:"index" json:"category_id"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
