package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type CatalogFinderMock struct{ mock.Mock }

func (m *CatalogFinderMock) Get(id int64) (model.Product, bool) {
	args := m.Called(id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Bool(1)
}

// クッキーのインメモリ代役。書き込み回数も数える。
type memoryJar struct {
	values map[string]string
	writes int
}

func newMemoryJar() *memoryJar {
	return &memoryJar{values: map[string]string{}}
}

func (j *memoryJar) Read(_ context.Context, name string) (string, error) {
	v, ok := j.values[name]
	if !ok {
		return "", repo.ErrCookieNotFound
	}
	return v, nil
}

func (j *memoryJar) Write(_ context.Context, name string, value string, _ time.Time) error {
	j.writes++
	j.values[name] = value
	return nil
}

// =====================
// Helpers
// =====================

const testCookieName = "listCart"

func newTestCart(catalog ProductFinder, jar repo.CookieJar) *CartUsecase {
	return NewCartUsecase(catalog, jar, NewSignedCartCodec("test-secret"), testCookieName, 30*24*time.Hour)
}

func catalogWith(products ...model.Product) *CatalogFinderMock {
	m := new(CatalogFinderMock)
	for _, p := range products {
		m.On("Get", p.ID).Return(p, true)
	}
	m.On("Get", mock.Anything).Return(model.Product{}, false)
	return m
}

// =====================
// Tests
// =====================

func TestCartUsecase_AddUnknownProductIsNoop(t *testing.T) {
	ctx := context.Background()

	catalog := new(CatalogFinderMock)
	catalog.On("Get", int64(99)).Return(model.Product{}, false)

	jar := newMemoryJar()
	uc := newTestCart(catalog, jar)
	uc.LoadFromCookie(ctx)

	uc.Add(ctx, 99)

	assert.Empty(t, uc.Items())
	assert.Equal(t, int64(0), uc.Totals().Quantity)
	assert.True(t, uc.Totals().Price.IsZero())
	assert.Equal(t, 0, jar.writes)
}

func TestCartUsecase_AddCreatesThenIncrements(t *testing.T) {
	ctx := context.Background()

	p := codecProduct(1, "A", "10.00")
	catalog := new(CatalogFinderMock)
	catalog.On("Get", int64(1)).Return(p, true)

	jar := newMemoryJar()
	uc := newTestCart(catalog, jar)
	uc.LoadFromCookie(ctx)

	uc.Add(ctx, 1)
	uc.Add(ctx, 1)

	items := uc.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "A", items[0].Product.Name)

	// 変更のたびに書き戻す
	assert.Equal(t, 2, jar.writes)
}

func TestCartUsecase_ChangeQuantityRemovesAtZero(t *testing.T) {
	ctx := context.Background()

	catalog := new(CatalogFinderMock)
	catalog.On("Get", int64(1)).Return(codecProduct(1, "A", "10.00"), true)

	jar := newMemoryJar()
	uc := newTestCart(catalog, jar)
	uc.LoadFromCookie(ctx)

	uc.Add(ctx, 1)
	uc.ChangeQuantity(ctx, 1, -1)

	// 数量1からの-1で明細ごと消える（数量0では保持しない）
	assert.Empty(t, uc.Items())

	// 消えたIDへの再操作は何もしない
	writesBefore := jar.writes
	uc.ChangeQuantity(ctx, 1, -1)
	assert.Empty(t, uc.Items())
	assert.Equal(t, writesBefore, jar.writes)
}

func TestCartUsecase_ChangeQuantityAbsentIsNoop(t *testing.T) {
	ctx := context.Background()

	jar := newMemoryJar()
	uc := newTestCart(new(CatalogFinderMock), jar)
	uc.LoadFromCookie(ctx)

	uc.ChangeQuantity(ctx, 42, +1)

	assert.Empty(t, uc.Items())
	assert.Equal(t, 0, jar.writes)
}

func TestCartUsecase_TotalsAreExactDecimals(t *testing.T) {
	ctx := context.Background()

	a := codecProduct(1, "A", "0.1")
	b := codecProduct(2, "B", "0.2")
	catalog := new(CatalogFinderMock)
	catalog.On("Get", int64(1)).Return(a, true)
	catalog.On("Get", int64(2)).Return(b, true)

	uc := newTestCart(catalog, newMemoryJar())
	uc.LoadFromCookie(ctx)

	// 0.1と0.2を10回ずつ。floatなら誤差が出る組み合わせ
	for i := 0; i < 10; i++ {
		uc.Add(ctx, 1)
		uc.Add(ctx, 2)
	}

	totals := uc.Totals()
	assert.Equal(t, int64(20), totals.Quantity)
	assert.True(t, totals.Price.Equal(decimal.RequireFromString("3")),
		"expected exactly 3, got %s", totals.Price)
}

func TestCartUsecase_RoundTripThroughJar(t *testing.T) {
	ctx := context.Background()

	catalog := catalogWith(codecProduct(1, "A", "10.00"), codecProduct(2, "B", "5.50"))
	jar := newMemoryJar()

	uc := newTestCart(catalog, jar)
	uc.LoadFromCookie(ctx)
	uc.Add(ctx, 2)
	uc.Add(ctx, 1)
	uc.Add(ctx, 1)

	// 同じJarから新しいインスタンスで読み直しても同じ内容
	uc2 := newTestCart(catalog, jar)
	lines := uc2.LoadFromCookie(ctx)

	assert.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].Product.ID)
	assert.Equal(t, int64(1), lines[0].Quantity)
	assert.Equal(t, int64(1), lines[1].Product.ID)
	assert.Equal(t, int64(2), lines[1].Quantity)
	assert.True(t, uc2.Totals().Price.Equal(decimal.RequireFromString("25.50")))
}

func TestCartUsecase_LoadFromCorruptedCookie(t *testing.T) {
	ctx := context.Background()

	jar := newMemoryJar()
	jar.values[testCookieName] = "garbage-not-a-token"

	uc := newTestCart(new(CatalogFinderMock), jar)
	lines := uc.LoadFromCookie(ctx)

	// 破損は空カートとして回復し、エラーにはならない
	assert.Empty(t, lines)
	assert.Equal(t, int64(0), uc.Totals().Quantity)
}

func TestCartUsecase_ItemsSnapshotIsolated(t *testing.T) {
	ctx := context.Background()

	catalog := new(CatalogFinderMock)
	catalog.On("Get", int64(1)).Return(codecProduct(1, "A", "10.00"), true)

	uc := newTestCart(catalog, newMemoryJar())
	uc.LoadFromCookie(ctx)
	uc.Add(ctx, 1)

	items := uc.Items()
	items[0].Quantity = 100

	assert.Equal(t, int64(1), uc.Items()[0].Quantity)
}

// 操作列のエンドツーエンド:
// add(1) add(1) add(2) changeQuantity(1,-1) → {1: qty1, 2: qty1}, 合計2点 15.50
func TestCartUsecase_Scenario(t *testing.T) {
	ctx := context.Background()

	catalog := catalogWith(codecProduct(1, "A", "10.00"), codecProduct(2, "B", "5.50"))

	uc := newTestCart(catalog, newMemoryJar())
	uc.LoadFromCookie(ctx)

	uc.Add(ctx, 1)
	uc.Add(ctx, 1)
	uc.Add(ctx, 2)
	uc.ChangeQuantity(ctx, 1, -1)

	items := uc.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, int64(1), items[0].Quantity)
	assert.Equal(t, int64(2), items[1].Product.ID)
	assert.Equal(t, int64(1), items[1].Quantity)

	totals := uc.Totals()
	assert.Equal(t, int64(2), totals.Quantity)
	assert.True(t, totals.Price.Equal(decimal.RequireFromString("15.50")))
}
