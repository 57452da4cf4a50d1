package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/brightstore-backend/internal/config"
	"github.com/your-org/brightstore-backend/internal/domain/cart"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
	"github.com/your-org/brightstore-backend/internal/domain/user"
	"github.com/your-org/brightstore-backend/internal/infrastructure/storage"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type stubCoupons struct{}

func (stubCoupons) FetchActive(_ context.Context, _ string) (*coupon.Coupon, error) {
	return nil, coupon.ErrNotFound
}

type stubProfiles struct {
	profile *user.Profile
	err     error
}

func (s *stubProfiles) GetProfile(_ context.Context, _ string) (*user.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

// recordingOpener records every link it is asked to open and can reject
// the native scheme the way LogOpener does.
type recordingOpener struct {
	rejectNative bool
	opened       []string
}

func (o *recordingOpener) Open(_ context.Context, link string) error {
	if o.rejectNative && strings.HasPrefix(link, "whatsapp://") {
		return ErrSchemeUnsupported
	}
	o.opened = append(o.opened, link)
	return nil
}

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			APIURL:        apiURL,
			APITimeout:    2 * time.Second,
			WhatsAppPhone: "918939479296",
			LocalPincodes: []string{"600001", "600002", "600003", "600004", "600005"},
			StoreName:     "Bright Store",
		},
	}
}

func testCartStore(t *testing.T) *cart.Store {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	store := cart.NewStore(newMemoryKV(), "cart", stubCoupons{}, logger)
	store.AddToCart(&product.Product{
		ID:    "rice-ponni",
		Name:  "Ponni Rice",
		Price: decimal.NewFromInt(90),
	}, 2, map[string]product.VariantOption{
		"Pack Size": {Label: "5 kg", PriceModifier: decimal.NewFromInt(260)},
	})
	return store
}

func localProfile() *user.Profile {
	return &user.Profile{
		ID:           "user-1",
		FullName:     "Anitha Raman",
		Phone:        "9876543210",
		AddressLine1: "12 North Usman Road",
		City:         "Chennai",
		Pincode:      "600004",
	}
}

func TestCheckoutSubmitsOrderWithAddress(t *testing.T) {
	var got payload
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/checkout", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	profiles := &stubProfiles{profile: localProfile()}
	service := NewService(testConfig(server.URL), store, profiles, nil, logger)

	result, err := service.Checkout(context.Background(), &Request{
		UserID:       "user-1",
		UserEmail:    "anitha@example.com",
		SessionToken: "session-token",
	})
	require.NoError(t, err)

	assert.True(t, result.RemoteSubmitted)
	assert.False(t, result.Outstation)
	assert.Equal(t, result.OrderRef, got.OrderRef)
	assert.Equal(t, "Bearer session-token", auth)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(700)))
	require.NotNil(t, got.User)
	assert.Equal(t, "user-1", got.User.ID)
}

func TestCheckoutWithoutAddressSkipsRemoteSubmission(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("checkout API must not be called without an address")
	}))
	defer server.Close()

	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	service := NewService(testConfig(server.URL), store, &stubProfiles{}, nil, logger)

	result, err := service.Checkout(context.Background(), &Request{})
	require.NoError(t, err)

	assert.False(t, result.RemoteSubmitted)
	assert.NotContains(t, result.Message, "*Customer Details:*")
	assert.Contains(t, result.Message, "*Order Items:*")
	assert.Contains(t, result.Message, "*Total Amount: ₹700*")
	assert.NotEmpty(t, result.NativeLink)
	assert.NotEmpty(t, result.WebLink)
}

func TestCheckoutRemoteFailureIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	profiles := &stubProfiles{profile: localProfile()}
	service := NewService(testConfig(server.URL), store, profiles, nil, logger)

	result, err := service.Checkout(context.Background(), &Request{UserID: "user-1"})
	require.NoError(t, err)

	assert.False(t, result.RemoteSubmitted)
	assert.Contains(t, result.Message, "*Customer Details:*")
	assert.NotEmpty(t, result.WebLink)
}

func TestCheckoutWithoutBearerTokenForAnonymousUser(t *testing.T) {
	var auth string
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	service := NewService(testConfig(server.URL), store, &stubProfiles{}, nil, logger)

	result, err := service.Checkout(context.Background(), &Request{
		ShippingAddress: &user.Address{
			FullName:     "Walk In",
			Phone:        "9000000000",
			AddressLine1: "5 Beach Road",
			City:         "Chennai",
			Pincode:      "600001",
		},
	})
	require.NoError(t, err)

	assert.True(t, result.RemoteSubmitted)
	assert.False(t, sawAuth)
	assert.Empty(t, auth)
}

func TestCheckoutOutstationPincode(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	store.SetDeliveryRequested(true)

	profile := localProfile()
	profile.Pincode = "641001"
	service := NewService(testConfig("http://127.0.0.1:0"), store, &stubProfiles{profile: profile}, nil, logger)

	result, err := service.Checkout(context.Background(), &Request{UserID: "user-1"})
	require.NoError(t, err)

	assert.True(t, result.Outstation)
	assert.Contains(t, result.Message, "Extra shipping charges may apply")
	assert.Contains(t, result.Message, "(Plus Shipping Charges)")
	assert.Contains(t, result.Message, "🚚 Delivery Requested")
}

func TestCheckoutFallsBackToWebLink(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	opener := &recordingOpener{rejectNative: true}
	service := NewService(testConfig("http://127.0.0.1:0"), store, &stubProfiles{}, opener, logger)

	result, err := service.Checkout(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, result.WebLink, result.OpenedLink)
	require.Len(t, opener.opened, 1)
	assert.Equal(t, result.WebLink, opener.opened[0])
}

func TestCheckoutOpensNativeLinkWhenSupported(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	opener := &recordingOpener{}
	service := NewService(testConfig("http://127.0.0.1:0"), store, &stubProfiles{}, opener, logger)

	result, err := service.Checkout(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, result.NativeLink, result.OpenedLink)
}

// gateOpener blocks the first Open call until released, holding the
// checkout guard so a concurrent attempt can be observed.
type gateOpener struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (o *gateOpener) Open(_ context.Context, _ string) error {
	o.once.Do(func() {
		close(o.entered)
		<-o.release
	})
	return nil
}

func TestCheckoutRejectsConcurrentAttempt(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	store := testCartStore(t)
	opener := &gateOpener{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := NewService(testConfig("http://127.0.0.1:0"), store, &stubProfiles{}, opener, logger)

	done := make(chan error, 1)
	go func() {
		_, err := service.Checkout(context.Background(), &Request{})
		done <- err
	}()

	<-opener.entered

	_, err := service.Checkout(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(opener.release)
	require.NoError(t, <-done)

	// Once the first attempt finishes the guard resets.
	_, err = service.Checkout(context.Background(), &Request{})
	require.NoError(t, err)
}

func TestLogOpenerRejectsNativeScheme(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	opener := &LogOpener{Logger: logger}

	err := opener.Open(context.Background(), "whatsapp://send?phone=1&text=hi")
	assert.ErrorIs(t, err, ErrSchemeUnsupported)

	err = opener.Open(context.Background(), "https://wa.me/1?text=hi")
	assert.NoError(t, err)
}
