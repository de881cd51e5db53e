package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, widgetH *handler.WidgetHandler) {
	widgetH.RegisterRoutes(e)
}
