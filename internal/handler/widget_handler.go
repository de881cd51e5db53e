package handler

import (
	"bytes"
	"net/http"

	"app/internal/repository"
	"app/internal/usecase"
	"app/internal/view"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// リクエストごとに永続化先（クッキー直載せ or DB）を束縛する。
type CookieJarFactory func(c echo.Context) repository.CookieJar

// リクエストごとにカートのユースケースを組み立てる。
type CartFactory func(jar repository.CookieJar) *usecase.CartUsecase

// ウィジェットのHTTP（コントローラ）。
// クリックは領域単位で拾われ、型付きイベント（商品ID＋操作）としてここへ届く。
type WidgetHandler struct {
	catalog *usecase.CatalogUsecase
	view    *view.CartView
	jarFor  CookieJarFactory
	newCart CartFactory
}

// DI
func NewWidgetHandler(
	catalog *usecase.CatalogUsecase,
	v *view.CartView,
	jarFor CookieJarFactory,
	newCart CartFactory,
) *WidgetHandler {
	return &WidgetHandler{catalog: catalog, view: v, jarFor: jarFor, newCart: newCart}
}

// カート操作イベント。actionは add / increase / decrease。
type CartEventRequest struct {
	ProductID int64  `json:"product_id" form:"product_id"`
	Action    string `json:"action" form:"action"`
}

const (
	ActionAdd      = "add"
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// /, /cart, /cart/events を登録
func (h *WidgetHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.page)
	e.GET("/cart", h.cartFragment)
	e.POST("/cart/events", h.cartEvent)
}

// 初期描画。商品一覧とカートの両方を描く。
func (h *WidgetHandler) page(c echo.Context) error {
	cart := h.newCart(h.jarFor(c))
	lines := cart.LoadFromCookie(c.Request().Context())

	return c.Render(http.StatusOK, "widget_page", view.PageData{
		Products: h.catalog.Products(),
		Cart:     view.CartData{Lines: lines, Totals: cart.Totals()},
	})
}

// カート領域だけの再取得
func (h *WidgetHandler) cartFragment(c echo.Context) error {
	cart := h.newCart(h.jarFor(c))
	cart.LoadFromCookie(c.Request().Context())

	return h.renderCart(c, cart)
}

// 1クリック分の処理。変更→書き戻し→カート領域の再描画までを同期で終える。
func (h *WidgetHandler) cartEvent(c echo.Context) error {
	var req CartEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	cart := h.newCart(h.jarFor(c))
	cart.LoadFromCookie(ctx)

	switch req.Action {
	case ActionAdd:
		cart.Add(ctx, req.ProductID)
	case ActionIncrease:
		cart.ChangeQuantity(ctx, req.ProductID, +1)
	case ActionDecrease:
		cart.ChangeQuantity(ctx, req.ProductID, -1)
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid action"})
	}

	return h.renderCart(c, cart)
}

func (h *WidgetHandler) renderCart(c echo.Context, cart *usecase.CartUsecase) error {
	var buf bytes.Buffer
	if err := h.view.RenderCart(&buf, cart.Items(), cart.Totals()); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}
