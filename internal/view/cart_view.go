package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 必須の描画先（名前つきテンプレート）が無い。設定ミスなので起動時に落とす。
var ErrMissingTemplate = errors.New("required template missing")

//go:embed templates/*.html
var templateFS embed.FS

// 描画先。Initで全部そろっているか確認する。
var requiredTemplates = []string{
	"widget_page",
	"product_list",
	"cart_list",
	"cart_count",
	"cart_total",
}

// カート領域の描画データ
type CartData struct {
	Lines  []model.CartLine
	Totals usecase.Totals
}

// ページ全体の描画データ
type PageData struct {
	Products []model.Product
	Cart     CartData
}

// CartView はカート状態とカタログをHTMLへ投影する。
// 自前の状態は持たない（テンプレートのハンドルだけ）。
type CartView struct {
	t *template.Template
}

// New は同梱テンプレートでビューを作る。描画先の確認はInitで行う。
func New() (*CartView, error) {
	t, err := template.New("widget").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &CartView{t: t}, nil
}

// NewFromTemplates は任意のテンプレート束でビューを作る（差し替え・テスト用）。
func NewFromTemplates(t *template.Template) *CartView {
	return &CartView{t: t}
}

// FuncMap はテンプレートが使う補助関数。moneyは十進価格の表示整形。
func FuncMap() template.FuncMap {
	return funcMap()
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
	}
}

// Init は必須の描画先がそろっているかを確認する。欠けていたら回復せずエラー。
func (v *CartView) Init() error {
	for _, name := range requiredTemplates {
		if v.t.Lookup(name) == nil {
			return fmt.Errorf("%w: %s", ErrMissingTemplate, name)
		}
	}
	return nil
}

// RenderProducts は商品一覧領域を丸ごと描き直す。
// 各タイルの追加ボタンには商品IDを載せ、コントローラが領域単位で拾う。
func (v *CartView) RenderProducts(w io.Writer, products []model.Product) error {
	return v.t.ExecuteTemplate(w, "product_list", products)
}

// RenderCart はカート領域（一覧＋数量合計＋金額合計）を丸ごと描き直す。
// 並び順は渡された順（カートの追加順）のまま。
func (v *CartView) RenderCart(w io.Writer, lines []model.CartLine, totals usecase.Totals) error {
	data := CartData{Lines: lines, Totals: totals}
	for _, name := range []string{"cart_list", "cart_count", "cart_total"} {
		if err := v.t.ExecuteTemplate(w, name, data); err != nil {
			return err
		}
	}
	return nil
}

// Render はecho.Rendererの実装。
func (v *CartView) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return v.t.ExecuteTemplate(w, name, data)
}
