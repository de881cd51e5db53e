package usecase

import (
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 保存値が壊れている（署名不一致・スキーマ不明・期限切れ）。空カートへ戻して回復する。
var ErrCartDecode = errors.New("cart decode failed")

// 保存ペイロードのスキーマ版。非互換変更で上げる。
const cartSchemaVersion = 1

type cartClaims struct {
	Version int             `json:"v"`
	Lines   []cartLineClaim `json:"lines"`
	jwt.RegisteredClaims
}

// 明細のスナップショット。priceは十進文字列で往復させる（floatに落とさない）。
type cartLineClaim struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int64  `json:"qty"`
}

// SignedCartCodec はカートをHS256署名つきトークンと往復変換する。
// クッキーはクライアント保持なので、署名で改ざんを検知する。
type SignedCartCodec struct {
	secret []byte
}

// DI
func NewSignedCartCodec(secret string) *SignedCartCodec {
	return &SignedCartCodec{secret: []byte(secret)}
}

func (c *SignedCartCodec) Encode(cart *model.Cart, expires time.Time) (string, error) {
	now := time.Now()
	claims := cartClaims{
		Version: cartSchemaVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	for _, l := range cart.Lines() {
		claims.Lines = append(claims.Lines, cartLineClaim{
			ID:       l.Product.ID,
			Name:     l.Product.Name,
			Price:    l.Product.Price.String(),
			Image:    l.Product.Image,
			Quantity: l.Quantity,
		})
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *SignedCartCodec) Decode(value string) (*model.Cart, error) {
	var claims cartClaims
	tok, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartDecode, err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrCartDecode)
	}
	if claims.Version != cartSchemaVersion {
		return nil, fmt.Errorf("%w: unknown schema version %d", ErrCartDecode, claims.Version)
	}

	cart := model.NewCart()
	for _, l := range claims.Lines {
		price, perr := decimal.NewFromString(l.Price)
		if perr != nil {
			return nil, fmt.Errorf("%w: bad price %q", ErrCartDecode, l.Price)
		}

		// 数量1未満の明細は保持しない
		if l.Quantity < 1 {
			continue
		}

		cart.Put(model.CartLine{
			Product: model.Product{
				ID:    l.ID,
				Name:  l.Name,
				Price: price,
				Image: l.Image,
			},
			Quantity: l.Quantity,
		})
	}

	return cart, nil
}
