package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/cart/domain"
	"github.com/geministore/storefront/internal/cart/infra/storage"
	"github.com/geministore/storefront/pkg/logger"
)

type fakeCatalog struct {
	products map[string]ProductInfo
}

func (f fakeCatalog) Product(ctx context.Context, id string) (ProductInfo, error) {
	p, ok := f.products[id]
	if !ok {
		return ProductInfo{}, errors.New("unknown product")
	}
	return p, nil
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	catalog := fakeCatalog{products: map[string]ProductInfo{
		"watch": {ID: "watch", Name: "Watch", Price: decimal.RequireFromString("299.99")},
		"buds":  {ID: "buds", Name: "Earbuds", Price: decimal.RequireFromString("79.99")},
		"cable": {ID: "cable", Name: "Cable", Price: decimal.RequireFromString("10.00")},
	}}
	mem := storage.NewMemoryStore()
	return NewStore(catalog, mem, WithLogger(logger.Discard())), mem
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("same product and variant merges quantities", func(t *testing.T) {
		store, _ := newTestStore(t)
		variant := map[string]string{"color": "black", "size": "m"}

		if err := store.AddItem(ctx, "watch", 2, variant); err != nil {
			t.Fatal(err)
		}
		// Same axes in a map with different literal order is the same key.
		if err := store.AddItem(ctx, "watch", 3, map[string]string{"size": "m", "color": "black"}); err != nil {
			t.Fatal(err)
		}

		sum := store.Summary()
		if len(sum.Items) != 1 {
			t.Fatalf("expected 1 line item, got %d", len(sum.Items))
		}
		if sum.Items[0].Quantity != 5 {
			t.Fatalf("expected merged quantity 5, got %d", sum.Items[0].Quantity)
		}
	})

	t.Run("different variant is a separate row", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "watch", 1, map[string]string{"color": "black"})
		_ = store.AddItem(ctx, "watch", 1, map[string]string{"color": "silver"})

		if got := len(store.Summary().Items); got != 2 {
			t.Fatalf("expected 2 line items, got %d", got)
		}
	})

	t.Run("denormalizes name and price from the catalog", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "buds", 1, nil)

		li := store.Summary().Items[0]
		if li.Name != "Earbuds" || li.Price.String() != "79.99" {
			t.Fatalf("unexpected line item %+v", li)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		store, _ := newTestStore(t)
		if err := store.AddItem(ctx, "nope", 1, nil); !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("expected ErrInvalidProduct, got %v", err)
		}
	})

	t.Run("empty product id", func(t *testing.T) {
		store, _ := newTestStore(t)
		if err := store.AddItem(ctx, "", 1, nil); !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("expected ErrInvalidProduct, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		store, _ := newTestStore(t)
		if err := store.AddItem(ctx, "watch", 0, nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero quantity behaves like removal", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "watch", 2, nil)

		if err := store.UpdateQuantity(ctx, "watch", 0, nil); err != nil {
			t.Fatal(err)
		}
		if got := len(store.Summary().Items); got != 0 {
			t.Fatalf("expected empty cart, got %d items", got)
		}
	})

	t.Run("sets the quantity", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "watch", 2, nil)
		_ = store.UpdateQuantity(ctx, "watch", 7, nil)

		if got := store.Summary().Items[0].Quantity; got != 7 {
			t.Fatalf("expected quantity 7, got %d", got)
		}
	})

	t.Run("absent item is a no-op", func(t *testing.T) {
		store, _ := newTestStore(t)
		if err := store.UpdateQuantity(ctx, "watch", 3, nil); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_ = store.AddItem(ctx, "watch", 1, nil)
	_ = store.AddItem(ctx, "buds", 1, nil)

	if err := store.RemoveItem(ctx, "watch", nil); err != nil {
		t.Fatal(err)
	}
	sum := store.Summary()
	if len(sum.Items) != 1 || sum.Items[0].ProductID != "buds" {
		t.Fatalf("expected only buds left, got %+v", sum.Items)
	}

	// Removing again is a no-op, not an error.
	if err := store.RemoveItem(ctx, "watch", nil); err != nil {
		t.Fatal(err)
	}
}

func TestTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("single 299.99 item", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "watch", 1, nil)

		tot := store.Totals()
		if tot.Subtotal.String() != "299.99" {
			t.Fatalf("subtotal = %s", tot.Subtotal)
		}
		if tot.Tax.String() != "23.9992" {
			t.Fatalf("tax = %s, want exact 23.9992", tot.Tax)
		}
		if !tot.Shipping.IsZero() {
			t.Fatalf("shipping = %s, want free over threshold", tot.Shipping)
		}
		if tot.Total.String() != "323.9892" {
			t.Fatalf("total = %s, want exact 323.9892", tot.Total)
		}
		if got := tot.Total.StringFixed(2); got != "323.99" {
			t.Fatalf("presentation total = %s, want 323.99", got)
		}
	})

	t.Run("shipping charged at or below threshold", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "cable", 5, nil) // 50.00 exactly

		tot := store.Totals()
		if tot.Shipping.String() != "9.99" {
			t.Fatalf("shipping = %s, want 9.99 at exactly 50", tot.Shipping)
		}
	})

	t.Run("empty cart is all zeros", func(t *testing.T) {
		store, _ := newTestStore(t)
		tot := store.Totals()
		if !tot.Subtotal.IsZero() || !tot.Tax.IsZero() || !tot.Shipping.IsZero() || !tot.Total.IsZero() {
			t.Fatalf("expected zero totals, got %+v", tot)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "watch", 1, nil)
		a, b := store.Totals(), store.Totals()
		if !a.Total.Equal(b.Total) || a.ItemCount != b.ItemCount {
			t.Fatalf("totals changed between reads: %+v vs %+v", a, b)
		}
	})
}

func TestApplyDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("ten percent of a hundred", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "cable", 10, nil) // subtotal 100.00

		d, err := store.ApplyDiscount(ctx, "SAVE10", 10)
		if err != nil {
			t.Fatal(err)
		}
		if d.Amount.StringFixed(2) != "10.00" {
			t.Fatalf("discount amount = %s, want 10.00", d.Amount.StringFixed(2))
		}

		tot := store.Totals()
		// 100 + 8 tax + 0 shipping - 10 discount
		if tot.Total.StringFixed(2) != "98.00" {
			t.Fatalf("total = %s, want 98.00", tot.Total.StringFixed(2))
		}
	})

	t.Run("replaces a previous discount", func(t *testing.T) {
		store, _ := newTestStore(t)
		_ = store.AddItem(ctx, "cable", 10, nil)
		_, _ = store.ApplyDiscount(ctx, "SAVE10", 10)
		d, _ := store.ApplyDiscount(ctx, "WELCOME20", 20)

		sum := store.Summary()
		if sum.Discount == nil || sum.Discount.Code != "WELCOME20" {
			t.Fatalf("expected WELCOME20 active, got %+v", sum.Discount)
		}
		if d.Amount.StringFixed(2) != "20.00" {
			t.Fatalf("discount amount = %s, want 20.00", d.Amount.StringFixed(2))
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		store, _ := newTestStore(t)
		for _, tc := range []struct {
			code string
			pct  float64
		}{
			{"", 10},
			{"SAVE10", 0},
			{"SAVE10", -5},
			{"SAVE10", 101},
		} {
			if _, err := store.ApplyDiscount(ctx, tc.code, tc.pct); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ApplyDiscount(%q, %v): expected ErrInvalidInput, got %v", tc.code, tc.pct, err)
			}
		}
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_ = store.AddItem(ctx, "watch", 2, nil)
	_, _ = store.ApplyDiscount(ctx, "SAVE10", 10)

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	sum := store.Summary()
	if len(sum.Items) != 0 || sum.Discount != nil {
		t.Fatalf("expected empty cart without discount, got %+v", sum)
	}
}

func TestWriteThrough(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	_ = store.AddItem(ctx, "watch", 1, nil)
	_ = store.UpdateQuantity(ctx, "watch", 3, nil)
	_ = store.RemoveItem(ctx, "watch", nil)

	if got := mem.SaveCount(); got != 3 {
		t.Fatalf("expected 3 saves, got %d", got)
	}

	evs, err := mem.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"item_added", "quantity_updated", "item_removed"}
	if len(evs) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(evs))
	}
	for i, ev := range evs {
		if ev.Type != want[i] {
			t.Fatalf("event %d = %q, want %q", i, ev.Type, want[i])
		}
	}
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	catalog := fakeCatalog{products: map[string]ProductInfo{
		"watch": {ID: "watch", Name: "Watch", Price: decimal.RequireFromString("299.99")},
	}}
	store := NewStore(catalog, failingStorage{}, WithLogger(logger.Discard()))

	if err := store.AddItem(ctx, "watch", 1, nil); err != nil {
		t.Fatalf("mutation must survive a storage failure, got %v", err)
	}
	if got := store.Summary().Items[0].Quantity; got != 1 {
		t.Fatalf("in-memory state lost: quantity = %d", got)
	}
}

type failingStorage struct{}

func (failingStorage) LoadCart(ctx context.Context) (domain.Cart, error) {
	return domain.Cart{}, errors.New("disk gone")
}
func (failingStorage) SaveCart(ctx context.Context, c domain.Cart) error {
	return errors.New("disk gone")
}
func (failingStorage) AppendEvent(ctx context.Context, ev domain.Event) error {
	return errors.New("disk gone")
}
func (failingStorage) Events(ctx context.Context) ([]domain.Event, error) {
	return nil, errors.New("disk gone")
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var mu sync.Mutex
	var changes []Change
	store.Subscribe(func(c Change) {
		mu.Lock()
		changes = append(changes, c)
		mu.Unlock()
	})

	_ = store.AddItem(ctx, "buds", 2, nil)

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(changes))
	}
	if changes[0].ItemCount != 2 {
		t.Fatalf("notified count = %d, want 2", changes[0].ItemCount)
	}
	if changes[0].Total.StringFixed(2) != "172.78" {
		// 159.98 + 12.7984 tax + 0 shipping
		t.Fatalf("notified total = %s, want 172.78", changes[0].Total.StringFixed(2))
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	catalog := fakeCatalog{products: map[string]ProductInfo{
		"watch": {ID: "watch", Name: "Watch", Price: decimal.RequireFromString("299.99")},
	}}
	mem := storage.NewMemoryStore()
	_ = mem.SaveCart(ctx, domain.Cart{Items: []domain.LineItem{
		{ProductID: "watch", Name: "Watch", Price: decimal.RequireFromString("299.99"), Quantity: 4},
	}})

	store := NewStore(catalog, mem, WithLogger(logger.Discard()))
	store.Reload(ctx)

	sum := store.Summary()
	if len(sum.Items) != 1 || sum.Items[0].Quantity != 4 {
		t.Fatalf("expected hydrated cart with quantity 4, got %+v", sum.Items)
	}
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = store.AddItem(ctx, "cable", 1, nil)
		}()
	}
	wg.Wait()

	tot := store.Totals()
	if tot.ItemCount != workers {
		t.Fatalf("item count = %d, want %d", tot.ItemCount, workers)
	}
	if tot.Subtotal.StringFixed(2) != "160.00" {
		t.Fatalf("subtotal = %s, want 160.00", tot.Subtotal.StringFixed(2))
	}
}
