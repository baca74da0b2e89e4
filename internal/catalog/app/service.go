package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Filter narrows the product listing. Zero values mean "no constraint";
// a nil PriceMin/PriceMax leaves that bound open.
type Filter struct {
	Category  string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	InStock   bool
	MinRating float64
}

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.All(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Product
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search matches a case-insensitive substring against name, description
// and the feature list.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return all, nil
	}

	var out []domain.Product
	for _, p := range all {
		if matchesTerm(p, term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchesTerm(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (s *Service) Filter(ctx context.Context, f Filter) ([]domain.Product, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Product
	for _, p := range all {
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		if f.InStock && !p.InStock {
			continue
		}
		if f.MinRating > 0 && p.Rating < f.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Sort returns a sorted copy; the input slice is never mutated. An
// unknown key returns the copy in its original order.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortName:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price.LessThan(sorted[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price.GreaterThan(sorted[j].Price) })
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	case SortReviews:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Reviews > sorted[j].Reviews })
	}
	return sorted
}

// Categories returns the distinct category tags in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

// PriceRange reports the cheapest and most expensive product prices.
func (s *Service) PriceRange(ctx context.Context) (min, max decimal.Decimal, err error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if len(all) == 0 {
		return decimal.Zero, decimal.Zero, nil
	}

	min, max = all[0].Price, all[0].Price
	for _, p := range all[1:] {
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return min, max, nil
}
