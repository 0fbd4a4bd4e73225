package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧の絞り込み
type ProductListFilter struct {
	CategoryID   *int64
	FeaturedOnly bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//名前昇順
	List(ctx context.Context, f ProductListFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (int64, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//nameをキーにinsert-or-update（CSV一括取り込み用）
	UpsertByName(ctx context.Context, p model.Product) error
}
