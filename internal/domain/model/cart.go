package model

import "github.com/shopspring/decimal"

// カートの明細
// Productは追加時点のスナップショット（カタログのその後の変化と切り離す）。
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// Subtotal は単価×数量。
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart は商品ID→明細の追加順つきマッピング。
// 不変条件: 保持する明細の数量は常に1以上。0以下になる明細は保持せず削除する。
type Cart struct {
	order []int64
	lines map[int64]CartLine
}

func NewCart() *Cart {
	return &Cart{lines: map[int64]CartLine{}}
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) Get(productID int64) (CartLine, bool) {
	line, ok := c.lines[productID]
	return line, ok
}

// Put は明細を登録する。既存IDなら置き換え、新規なら末尾に追加。
// 数量が0以下ならPutではなく削除になる。
func (c *Cart) Put(line CartLine) {
	id := line.Product.ID

	if line.Quantity <= 0 {
		c.Remove(id)
		return
	}

	if _, ok := c.lines[id]; !ok {
		c.order = append(c.order, id)
	}
	c.lines[id] = line
}

func (c *Cart) Remove(productID int64) {
	if _, ok := c.lines[productID]; !ok {
		return
	}

	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines は追加順の明細コピーを返す。呼び出し側が書き換えてもCartには影響しない。
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}
