package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// 商品参照の約束（CatalogUsecaseが満たす）。
type ProductFinder interface {
	Get(id int64) (model.Product, bool)
}

// カートの合計。キャッシュせず毎回計算し直す。
type Totals struct {
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CartUsecase はカート状態管理の業務ロジック。
// 変更操作はすべて同期で、直後にCookieJarへ書き戻す。
// カート本体はここだけが書き換え、外へは常にコピーを返す。
type CartUsecase struct {
	catalog ProductFinder
	jar     repo.CookieJar
	codec   *SignedCartCodec

	cookieName string
	ttl        time.Duration

	cart *model.Cart
}

// DI
func NewCartUsecase(
	catalog ProductFinder,
	jar repo.CookieJar,
	codec *SignedCartCodec,
	cookieName string,
	ttl time.Duration,
) *CartUsecase {
	return &CartUsecase{
		catalog:    catalog,
		jar:        jar,
		codec:      codec,
		cookieName: cookieName,
		ttl:        ttl,
		cart:       model.NewCart(),
	}
}

// LoadFromCookie は保存済みカートを読み込み、結果のスナップショットを返す。
// 未保存・破損はどちらも空カート扱いで、エラーは呼び出し側へ返さない。
func (u *CartUsecase) LoadFromCookie(ctx context.Context) []model.CartLine {
	u.cart = model.NewCart()

	value, err := u.jar.Read(ctx, u.cookieName)
	if err != nil {
		if !errors.Is(err, repo.ErrCookieNotFound) {
			log.Warn().Err(err).Msg("cart cookie read failed; starting empty")
		}
		return u.cart.Lines()
	}

	cart, err := u.codec.Decode(value)
	if err != nil {
		log.Warn().Err(err).Msg("cart cookie decode failed; starting empty")
		return u.cart.Lines()
	}

	u.cart = cart
	return u.cart.Lines()
}

// Add は商品をカートへ追加する。
// カタログに無いIDは黙って何もしない（意図した寛容な仕様）。
// 既存の明細は数量+1、新規はスナップショットつきで数量1。
func (u *CartUsecase) Add(ctx context.Context, productID int64) {
	p, ok := u.catalog.Get(productID)
	if !ok {
		return
	}

	if line, exists := u.cart.Get(productID); exists {
		line.Quantity++
		u.cart.Put(line)
	} else {
		u.cart.Put(model.CartLine{Product: p, Quantity: 1})
	}

	u.persist(ctx)
}

// ChangeQuantity は数量をdelta（±1）だけ変える。カートに無いIDは何もしない。
// 0以下になった明細は丸ごと削除（0や負の数量で保持しない）。
func (u *CartUsecase) ChangeQuantity(ctx context.Context, productID int64, delta int64) {
	line, ok := u.cart.Get(productID)
	if !ok {
		return
	}

	line.Quantity += delta
	u.cart.Put(line)

	u.persist(ctx)
}

// Items は追加順の明細スナップショット。
func (u *CartUsecase) Items() []model.CartLine {
	return u.cart.Lines()
}

// Totals は数量合計と金額合計（単価×数量の総和）。十進で正確に足す。
func (u *CartUsecase) Totals() Totals {
	t := Totals{Price: decimal.Zero}
	for _, l := range u.cart.Lines() {
		t.Quantity += l.Quantity
		t.Price = t.Price.Add(l.Subtotal())
	}
	return t
}

// 変更のたびの書き戻し。失敗してもメモリ上の状態は生かし、警告だけ残す。
func (u *CartUsecase) persist(ctx context.Context) {
	expires := time.Now().Add(u.ttl)

	value, err := u.codec.Encode(u.cart, expires)
	if err != nil {
		log.Warn().Err(err).Msg("cart encode failed; cookie not updated")
		return
	}

	if err := u.jar.Write(ctx, u.cookieName, value, expires); err != nil {
		log.Warn().Err(err).Msg("cart cookie write failed")
	}
}
