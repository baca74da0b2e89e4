package app

import (
	"context"

	"github.com/geministore/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	All(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}
