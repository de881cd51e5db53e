package repository

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/labstack/echo/v4"
)

// EchoCookieJar は実際のHTTPクッキーをそのまま永続化先にする（CART_STORAGE=cookie）。
// リクエスト1回分のechoコンテキストに束縛される。
type EchoCookieJar struct {
	c echo.Context
}

// DI
func NewEchoCookieJar(c echo.Context) *EchoCookieJar {
	return &EchoCookieJar{c: c}
}

func (j *EchoCookieJar) Read(_ context.Context, name string) (string, error) {
	ck, err := j.c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", repo.ErrCookieNotFound
	}
	return ck.Value, nil
}

func (j *EchoCookieJar) Write(_ context.Context, name string, value string, expires time.Time) error {
	j.c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// EchoJarFactory はリクエストごとにクッキー直載せのJarを作る。
func EchoJarFactory() func(c echo.Context) repo.CookieJar {
	return func(c echo.Context) repo.CookieJar {
		return NewEchoCookieJar(c)
	}
}
