package model

import "time"

// CART_STORAGE=db のときのサーバー側カート保管行。
// Nameは「クッキー名:セッションID」で、1セッション1行を上書きし続ける。
type CartCookie struct {
	Name      string    `gorm:"primaryKey;type:varchar(255)" json:"name"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
