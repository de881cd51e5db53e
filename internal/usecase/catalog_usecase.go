package usecase

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
)

// カタログ取得の失敗（通信・形式不正）。カタログは空のままローカルで回復する。
var ErrCatalogLoad = errors.New("catalog load failed")

// CatalogUsecase は読み取り専用カタログの保持と参照。
// Loadは起動時に一度だけ。失敗してもクラッシュさせず、商品一覧が空になるだけ。
type CatalogUsecase struct {
	fetcher repo.CatalogFetcher

	byID  map[int64]model.Product
	order []model.Product
}

// DI
func NewCatalogUsecase(fetcher repo.CatalogFetcher) *CatalogUsecase {
	return &CatalogUsecase{
		fetcher: fetcher,
		byID:    map[int64]model.Product{},
	}
}

// Load は外部ソースから商品一覧を取り込む。
// 失敗時はカタログを空のまま残し、ラップしたErrCatalogLoadを返す。
func (u *CatalogUsecase) Load(ctx context.Context) error {
	products, err := u.fetcher.Fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalog load failed; continuing with empty catalog")
		return fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	byID := make(map[int64]model.Product, len(products))
	order := make([]model.Product, 0, len(products))
	for _, p := range products {
		// 重複IDは先勝ち
		if _, ok := byID[p.ID]; ok {
			continue
		}
		byID[p.ID] = p
		order = append(order, p)
	}

	u.byID = byID
	u.order = order
	return nil
}

// Get はロード済みカタログの同期参照。未ロード・未登録はfalse。
func (u *CatalogUsecase) Get(id int64) (model.Product, bool) {
	p, ok := u.byID[id]
	return p, ok
}

// Products は表示用の商品一覧コピー（取得時の順序のまま）。
func (u *CatalogUsecase) Products() []model.Product {
	out := make([]model.Product, len(u.order))
	copy(out, u.order)
	return out
}
