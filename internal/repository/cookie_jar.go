package repository

import (
	"context"
	"errors"
	"time"
)

// 未保存（または期限切れ）。破損した値もインフラ側でこの扱いに寄せる。
var ErrCookieNotFound = errors.New("cookie not found")

// CookieJar はカートの永続化先（ブラウザクッキーの代役）。
// 値は1エントリのスカラーで、Writeは常に上書き。部分書き込みの回復は不要。
type CookieJar interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name string, value string, expires time.Time) error
}
