package model

import "github.com/shopspring/decimal"

// カタログの商品。読み取り専用で、ロード後に変更しない。
// Priceは通貨の正確な十進値（floatは使わない）。
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}
