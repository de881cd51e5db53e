package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionJar はカートのシリアライズ値をDBの1行に保存する（CART_STORAGE=db）。
// クッキーにはセッションIDだけを残し、本体はサーバー側に置く。
type GormSessionJar struct {
	db        *gorm.DB
	sessionID string
}

// DI
func NewGormSessionJar(db *gorm.DB, sessionID string) *GormSessionJar {
	return &GormSessionJar{db: db, sessionID: sessionID}
}

func (j *GormSessionJar) key(name string) string {
	return name + ":" + j.sessionID
}

func (j *GormSessionJar) Read(ctx context.Context, name string) (string, error) {
	var rec model.CartCookie
	err := j.db.WithContext(ctx).First(&rec, "name = ?", j.key(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}

	// 期限切れは未保存と同じ扱い
	if time.Now().After(rec.ExpiresAt) {
		return "", repo.ErrCookieNotFound
	}

	return rec.Value, nil
}

func (j *GormSessionJar) Write(ctx context.Context, name string, value string, expires time.Time) error {
	rec := model.CartCookie{
		Name:      j.key(name),
		Value:     value,
		ExpiresAt: expires,
	}

	// 同一キーは上書き
	return j.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// GormJarFactory はセッションIDクッキーを読み（無ければUUIDで発行し）、
// そのセッションに束縛されたDB保管Jarを作る。
func GormJarFactory(db *gorm.DB, sessionCookieName string, ttl time.Duration) func(c echo.Context) repo.CookieJar {
	return func(c echo.Context) repo.CookieJar {
		sid := ""
		if ck, err := c.Cookie(sessionCookieName); err == nil && ck.Value != "" {
			sid = ck.Value
		}

		if sid == "" {
			sid = uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				Expires:  time.Now().Add(ttl),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		return NewGormSessionJar(db, sid)
	}
}
