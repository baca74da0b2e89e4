package adapter

import (
	"context"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	catalogapp "github.com/geministore/storefront/internal/catalog/app"
)

// CatalogServiceReader adapts the catalog application service to the
// cart's CatalogReader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Product(ctx context.Context, id string) (cartapp.ProductInfo, error) {
	p, err := r.svc.Get(ctx, id)
	if err != nil {
		return cartapp.ProductInfo{}, err
	}
	return cartapp.ProductInfo{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price,
	}, nil
}
