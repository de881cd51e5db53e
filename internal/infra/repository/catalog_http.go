package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"app/internal/domain/model"
)

// CatalogHTTPFetcher は既知のURLで配信される静的なJSON配列からカタログを取得する。
type CatalogHTTPFetcher struct {
	client *http.Client
	url    string
}

// DI
func NewCatalogHTTPFetcher(client *http.Client, url string) *CatalogHTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogHTTPFetcher{client: client, url: url}
}

func (f *CatalogHTTPFetcher) Fetch(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch: unexpected status %d", resp.StatusCode)
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog fetch: decode: %w", err)
	}

	// 価格が負の商品は形式不正として全体を捨てる
	for _, p := range products {
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog fetch: product %d has negative price", p.ID)
		}
	}

	return products, nil
}
