package repository

import "context"

// サイト設定はkey-valueのフラットなmapとして読む。
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	//insert-or-update
	Set(ctx context.Context, key string, value string) error
}
