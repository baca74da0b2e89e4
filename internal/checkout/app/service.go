package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/checkout/domain"
)

var (
	ErrNotFound         = errors.New("draft not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrTermsNotAccepted = errors.New("terms must be accepted")
	ErrOrderInFlight    = errors.New("order placement already in progress")
	ErrPaymentDeclined  = errors.New("payment processing failed")
)

const deliveryDays = 5

// Confirmation is the record shown after a successful order. It is not
// persisted anywhere.
type Confirmation struct {
	OrderID           string
	Total             decimal.Decimal
	Items             []CartLine
	PlacedAt          time.Time
	EstimatedDelivery time.Time
}

// Service drives the 4-step wizard: Shipping -> Billing -> Payment ->
// Review. Drafts are in-memory only, keyed by id, and removed after a
// successful order.
type Service struct {
	cart      CartGateway
	processor Processor
	now       func() time.Time
	log       *slog.Logger

	mu       sync.Mutex
	drafts   map[string]*domain.Draft
	inflight map[string]bool
}

func NewService(cart CartGateway, processor Processor, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:      cart,
		processor: processor,
		now:       time.Now,
		log:       log,
		drafts:    make(map[string]*domain.Draft),
		inflight:  make(map[string]bool),
	}
}

func (s *Service) Start() domain.Draft {
	d := domain.NewDraft(uuid.NewString())

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()

	return *d
}

func (s *Service) Get(id string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, ErrNotFound
	}
	return *d, nil
}

// Next saves the submitted fields into the active step, validates it,
// and advances on success. Invalid fields block the transition and leave
// the step index unchanged.
func (s *Service) Next(id string, fields map[string]string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, ErrNotFound
	}

	d.Apply(fields)
	if verr := d.ValidateStep(); verr != nil {
		return *d, verr
	}
	if d.Step < domain.StepReview {
		d.Step++
	}
	return *d, nil
}

// Prev is unconditional, with a floor at the first step.
func (s *Service) Prev(id string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, ErrNotFound
	}
	if d.Step > domain.StepShipping {
		d.Step--
	}
	return *d, nil
}

// PlaceOrder runs the single asynchronous action of the wizard. While an
// attempt is in flight the draft is locked against re-entry; this is the
// disabled-button analog. On success the cart is cleared and the draft
// discarded; on failure both are left untouched so the user may retry.
func (s *Service) PlaceOrder(ctx context.Context, id string, termsAccepted bool) (Confirmation, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return Confirmation{}, ErrNotFound
	}
	if d.Step != domain.StepReview {
		s.mu.Unlock()
		return Confirmation{}, fmt.Errorf("%w: not at review step", ErrInvalidInput)
	}
	if !termsAccepted {
		s.mu.Unlock()
		return Confirmation{}, ErrTermsNotAccepted
	}
	if s.inflight[id] {
		s.mu.Unlock()
		return Confirmation{}, ErrOrderInFlight
	}
	s.inflight[id] = true
	d.TermsAccepted = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	sum, err := s.cart.Summary(ctx)
	if err != nil {
		return Confirmation{}, fmt.Errorf("read cart: %w", err)
	}
	if sum.ItemCount == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	if err := s.processor.Process(ctx, sum.Total); err != nil {
		s.log.Info("order attempt declined", slog.String("draft", id), slog.Any("err", err))
		return Confirmation{}, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order already succeeded; a failed clear is logged, not
		// surfaced as an order failure.
		s.log.Warn("cart clear after order failed", slog.Any("err", err))
	}

	now := s.now()
	conf := Confirmation{
		OrderID:           "ORD-" + uuid.NewString(),
		Total:             sum.Total,
		Items:             sum.Items,
		PlacedAt:          now,
		EstimatedDelivery: now.AddDate(0, 0, deliveryDays),
	}

	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	s.log.Info("order placed",
		slog.String("order_id", conf.OrderID),
		slog.String("total", conf.Total.StringFixed(2)),
	)
	return conf, nil
}
