package model

import "time"

// サイト名・テーマカラー・SEOメタなどのkey-value設定。
type SiteSetting struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	SettingKey   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"setting_key"`
	SettingValue string    `gorm:"type:text" json:"setting_value"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
