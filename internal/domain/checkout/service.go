// internal/domain/checkout/service.go
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/user"
	"github.com/your-org/brightstore-backend/internal/pkg/whatsapp"
)

// ErrCheckoutInFlight is returned when a checkout is started while a
// previous one has not finished. Rapid double submission would otherwise
// record the order twice and open two messaging links.
var ErrCheckoutInFlight = errors.New("a checkout is already in progress")

// ErrSchemeUnsupported is returned by a LinkOpener that cannot handle the
// native messaging URI scheme; the orchestrator then falls back to the
// web link.
var ErrSchemeUnsupported = errors.New("uri scheme not supported")

// LinkOpener opens a messaging deep link on behalf of the user
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}

// ProfileSource resolves the current user's profile for checkout details
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*user.Profile, error)
}

// Service orchestrates checkout: remote order submission (best effort)
// followed by the WhatsApp fallback message, which is the guaranteed
// completion signal and always runs.
type Service struct {
	config     *config.Config
	store      *cart.Store
	profiles   ProfileSource
	httpClient *http.Client
	opener     LinkOpener
	logger     logrus.FieldLogger

	inFlight atomic.Bool
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, store *cart.Store, profiles ProfileSource, opener LinkOpener, logger logrus.FieldLogger) *Service {
	if opener == nil {
		opener = &LogOpener{Logger: logger}
	}
	return &Service{
		config:     cfg,
		store:      store,
		profiles:   profiles,
		httpClient: &http.Client{Timeout: cfg.Checkout.APITimeout},
		opener:     opener,
		logger:     logger,
	}
}

// Request carries the caller-supplied checkout inputs
type Request struct {
	UserID          string        `json:"-"`
	UserEmail       string        `json:"-"`
	SessionToken    string        `json:"-"`
	ShippingAddress *user.Address `json:"shipping_address,omitempty"`
}

// Result reports what the checkout produced. The deep links are returned
// to the client, which opens the native one and falls back to the web one.
type Result struct {
	OrderRef        string `json:"order_ref"`
	Message         string `json:"message"`
	NativeLink      string `json:"native_link"`
	WebLink         string `json:"web_link"`
	OpenedLink      string `json:"opened_link,omitempty"`
	RemoteSubmitted bool   `json:"remote_submitted"`
	Outstation      bool   `json:"outstation"`
}

// payload is the remote checkout API request body
type payload struct {
	OrderRef          string          `json:"order_ref"`
	Items             []cart.LineItem `json:"items"`
	Total             decimal.Decimal `json:"total"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	CouponCode        string          `json:"coupon_code,omitempty"`
	User              *payloadUser    `json:"user,omitempty"`
	Profile           *user.Profile   `json:"profile,omitempty"`
	ShippingAddress   *user.Address   `json:"shippingAddress,omitempty"`
	DeliveryRequested bool            `json:"deliveryRequested"`
}

type payloadUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Checkout runs the full checkout flow against the current cart snapshot.
// Remote submission failures are logged and never abort the flow; only a
// concurrent checkout attempt is an error.
func (s *Service) Checkout(ctx context.Context, req *Request) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer s.inFlight.Store(false)

	snap := s.store.Snapshot()

	profile := s.resolveProfile(ctx, req.UserID)

	// Effective address: the explicit shipping address wins, else the
	// profile address. Neither resolving is a degraded but non-fatal
	// path: the order details block is simply omitted.
	hasAddress := req.ShippingAddress != nil || profile.HasAddress()

	pincode := resolvePincode(req.ShippingAddress, profile)
	outstation := pincode != "" && !s.isLocalPincode(pincode)

	result := &Result{
		OrderRef:   uuid.New().String(),
		Outstation: outstation,
	}

	if hasAddress {
		result.RemoteSubmitted = s.submitOrder(ctx, result.OrderRef, snap, profile, req)
	}

	result.Message = buildMessage(messageInput{
		StoreName:         s.config.Checkout.StoreName,
		Profile:           profile,
		ShippingAddress:   req.ShippingAddress,
		Snapshot:          snap,
		DeliveryRequested: snap.DeliveryRequested,
		Outstation:        outstation,
	})

	phone := s.config.Checkout.WhatsAppPhone
	result.NativeLink = whatsapp.NativeLink(phone, result.Message)
	result.WebLink = whatsapp.WebLink(phone, result.Message)
	result.OpenedLink = s.openLink(ctx, result.NativeLink, result.WebLink)

	return result, nil
}

// submitOrder posts the order to the remote checkout API. Any failure is
// logged and reported as not-submitted; the messaging fallback is the
// primary UX and the remote API is best-effort order recording.
func (s *Service) submitOrder(ctx context.Context, orderRef string, snap cart.Snapshot, profile *user.Profile, req *Request) bool {
	body := payload{
		OrderRef:          orderRef,
		Items:             snap.Items,
		Total:             snap.Totals.Total,
		Subtotal:          snap.Totals.Subtotal,
		Discount:          snap.Totals.DiscountAmount,
		Profile:           profile,
		ShippingAddress:   req.ShippingAddress,
		DeliveryRequested: snap.DeliveryRequested,
	}
	if snap.Coupon != nil {
		body.CouponCode = snap.Coupon.Code
	}
	if req.UserID != "" {
		body.User = &payloadUser{ID: req.UserID, Email: req.UserEmail}
	}

	data, err := json.Marshal(body)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode checkout payload")
		return false
	}

	url := s.config.Checkout.APIURL + "/api/checkout"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		s.logger.WithError(err).Error("Failed to build checkout request")
		return false
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if req.SessionToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.SessionToken)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.WithError(err).Error("Checkout API call failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("Checkout API rejected the order")
		return false
	}

	return true
}

// openLink tries the native deep link first and falls back to the web
// link when the opener cannot handle the native scheme. This step always
// runs, whatever happened to the remote submission.
func (s *Service) openLink(ctx context.Context, nativeLink, webLink string) string {
	err := s.opener.Open(ctx, nativeLink)
	if err == nil {
		return nativeLink
	}

	if !errors.Is(err, ErrSchemeUnsupported) {
		s.logger.WithError(err).Warn("Failed to open native messaging link")
	}

	if err := s.opener.Open(ctx, webLink); err != nil {
		s.logger.WithError(err).Error("Failed to open fallback messaging link")
		return ""
	}
	return webLink
}

func (s *Service) resolveProfile(ctx context.Context, userID string) *user.Profile {
	if userID == "" || s.profiles == nil {
		return nil
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, user.ErrProfileNotFound) {
		return nil
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load profile for checkout")
		return nil
	}
	return profile
}

func (s *Service) isLocalPincode(pincode string) bool {
	for _, local := range s.config.Checkout.LocalPincodes {
		if local == pincode {
			return true
		}
	}
	return false
}

func resolvePincode(addr *user.Address, profile *user.Profile) string {
	if addr != nil {
		return addr.Pincode
	}
	if profile != nil {
		return profile.Pincode
	}
	return ""
}

// LogOpener is the server-side LinkOpener: the backend cannot open a URI
// on the customer's device, so it records the link and reports the native
// scheme as unsupported, steering the result to the web link the client
// can always follow.
type LogOpener struct {
	Logger logrus.FieldLogger
}

// Open implements LinkOpener
func (o *LogOpener) Open(ctx context.Context, link string) error {
	if strings.HasPrefix(link, "whatsapp://") {
		return ErrSchemeUnsupported
	}
	if o.Logger != nil {
		o.Logger.WithField("link", link).Info("Order message link ready")
	}
	return nil
}
