// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
	"github.com/your-org/brightstore-backend/internal/infrastructure/storage"
)

const persistTimeout = 5 * time.Second

// CouponSource resolves a canonical coupon code to an active coupon row
type CouponSource interface {
	FetchActive(ctx context.Context, code string) (*coupon.Coupon, error)
}

// Store owns the mutable cart aggregate: the ordered line item sequence,
// the active coupon slot and the delivery-request flag. It is constructed
// once at application start and injected into its consumers; there is no
// ambient singleton. Line items are persisted to durable storage after
// every mutation; the coupon and the delivery flag are session-scoped.
type Store struct {
	mu                sync.Mutex
	items             []LineItem
	coupon            *coupon.Coupon
	deliveryRequested bool

	storage    storage.KeyValue
	storageKey string
	coupons    CouponSource
	logger     logrus.FieldLogger

	// writes carries serialized cart payloads to a single persister
	// goroutine, so writes land in mutation order. pending tracks
	// queued writes so shutdown can wait for the last one to land.
	writes  chan string
	pending sync.WaitGroup
}

// NewStore creates a cart store backed by the given storage and coupon source
func NewStore(kv storage.KeyValue, storageKey string, coupons CouponSource, logger logrus.FieldLogger) *Store {
	s := &Store{
		storage:    kv,
		storageKey: storageKey,
		coupons:    coupons,
		logger:     logger,
		writes:     make(chan string, 16),
	}
	go s.persistLoop()
	return s
}

// Load restores the persisted line item sequence. A missing key or
// malformed payload yields an empty cart; corrupt saved data must never
// prevent startup.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.storage.Get(ctx, s.storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load saved cart, starting empty")
		return
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WithError(err).Warn("Saved cart is corrupt, starting empty")
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddToCart adds a product with the given variant selection to the cart.
// If a line with the same identity key already exists its quantity is
// incremented; otherwise a new line is appended, preserving insertion
// order. The effective unit price is snapshotted now. Stock checks are a
// display concern applied before this call.
func (s *Store) AddToCart(p *product.Product, quantity int, selected map[string]product.VariantOption) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	key := LineKey(p.ID, selected)
	unitPrice := EffectiveUnitPrice(p, selected)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items[i].Quantity += quantity
			line := s.items[i]
			s.persistLocked()
			return line
		}
	}

	line := LineItem{
		Key:              key,
		ProductID:        p.ID,
		Name:             p.Name,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		SelectedVariants: copyVariants(selected),
		AddedAt:          time.Now().UTC(),
	}
	s.items = append(s.items, line)
	s.persistLocked()
	return line
}

// RemoveFromCart deletes the line with the given identity key.
// Removing an absent key is a no-op, not an error.
func (s *Store) RemoveFromCart(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 are
// silently ignored; removal only ever happens through RemoveFromCart.
func (s *Store) UpdateQuantity(key string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items[i].Quantity = quantity
			s.persistLocked()
			return
		}
	}
}

// Clear empties the line sequence and drops the active coupon.
// The delivery-request flag is untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.coupon = nil
	s.persistLocked()
}

// SetDeliveryRequested sets the delivery-request flag
func (s *Store) SetDeliveryRequested(requested bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveryRequested = requested
}

// DeliveryRequested reports the delivery-request flag
func (s *Store) DeliveryRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deliveryRequested
}

// Items returns a copy of the line item sequence in insertion order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Coupon returns the active coupon, or nil
func (s *Store) Coupon() *coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// Totals computes the current subtotal, discount and payable total
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

// ApplyResult reports the outcome of a coupon application. A rejection is
// an expected condition, not an error; the caller owns user-facing
// messaging and may use Message as a starting point.
type ApplyResult struct {
	Applied bool           `json:"applied"`
	Message string         `json:"message,omitempty"`
	Coupon  *coupon.Coupon `json:"coupon,omitempty"`
}

// ApplyCoupon validates a coupon code against the coupon source and the
// current subtotal. On success the active coupon is replaced; on any
// failure the active coupon slot is left unchanged.
func (s *Store) ApplyCoupon(ctx context.Context, code string) ApplyResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return ApplyResult{Message: "Coupon code is required"}
	}

	fetched, err := s.coupons.FetchActive(ctx, strings.ToUpper(code))
	if errors.Is(err, coupon.ErrNotFound) {
		return ApplyResult{Message: "Invalid or inactive coupon code"}
	}
	if err != nil {
		s.logger.WithError(err).WithField("code", code).Error("Coupon lookup failed")
		return ApplyResult{Message: "Could not validate coupon, please try again"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := Subtotal(s.items)
	if subtotal.LessThan(fetched.MinOrderAmount) {
		return ApplyResult{
			Message: fmt.Sprintf("Minimum order amount for this coupon is ₹%s", fetched.MinOrderAmount.String()),
		}
	}

	s.coupon = fetched
	return ApplyResult{Applied: true, Coupon: fetched}
}

// RemoveCoupon clears the active coupon slot. Always succeeds, idempotent.
func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = nil
}

// Snapshot returns a consistent view of the whole aggregate for checkout
type Snapshot struct {
	Items             []LineItem
	Coupon            *coupon.Coupon
	Totals            Totals
	DeliveryRequested bool
}

// Snapshot captures items, coupon, totals and the delivery flag atomically
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Items:             s.itemsLocked(),
		Totals:            s.totalsLocked(),
		DeliveryRequested: s.deliveryRequested,
	}
	if s.coupon != nil {
		c := *s.coupon
		snap.Coupon = &c
	}
	return snap
}

// Flush blocks until all in-flight persistence writes have completed.
// Called on graceful shutdown.
func (s *Store) Flush() {
	s.pending.Wait()
}

func (s *Store) itemsLocked() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) totalsLocked() Totals {
	subtotal := Subtotal(s.items)
	discount := DiscountAmount(subtotal, s.coupon)

	totals := Totals{
		ItemCount:      len(s.items),
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          Total(subtotal, discount),
	}
	for i := range s.items {
		totals.TotalQuantity += s.items[i].Quantity
	}
	return totals
}

// persistLocked serializes the full line sequence and queues it for the
// persister goroutine. Mutation callers never wait on the storage write
// and a failed write is logged, not surfaced; the contract is eventual
// consistency with the latest mutation winning on the storage key.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize cart")
		return
	}

	s.pending.Add(1)
	s.writes <- string(data)
}

func (s *Store) persistLoop() {
	for data := range s.writes {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.storage.Set(ctx, s.storageKey, data); err != nil {
			s.logger.WithError(err).Error("Failed to save cart")
		}
		cancel()
		s.pending.Done()
	}
}

func copyVariants(selected map[string]product.VariantOption) map[string]product.VariantOption {
	if len(selected) == 0 {
		return nil
	}
	out := make(map[string]product.VariantOption, len(selected))
	for name, opt := range selected {
		out[name] = opt
	}
	return out
}
