package server

import (
	"app/internal/handler"
	"app/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立てる。ビューの描画先確認（Init）もここで行い、
// 欠けていれば起動を止める。
func New(v *view.CartView, widgetH *handler.WidgetHandler) (*echo.Echo, error) {
	if err := v.Init(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Renderer = v

	RegisterRoutes(e, widgetH)
	return e, nil
}

func Start(addr string, e *echo.Echo) error {
	return e.Start(addr)
}
