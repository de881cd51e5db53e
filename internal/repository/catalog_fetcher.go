package repository

import (
	"context"

	"app/internal/domain/model"
)

// CatalogFetcher は外部ソースからの商品一覧の取得だけを約束。
// セッション中に一度だけ呼ばれる想定。
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]model.Product, error)
}
