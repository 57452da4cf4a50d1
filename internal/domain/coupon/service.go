// internal/domain/coupon/service.go
package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/brightstore-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no active coupon matches a code
var ErrNotFound = errors.New("coupon not found")

// Service resolves coupon codes against the database
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new coupon service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// FetchActive looks up a coupon by its canonical (uppercase) code,
// filtered to active coupons only. Inactive and unknown codes both
// yield ErrNotFound.
func (s *Service) FetchActive(ctx context.Context, code string) (*Coupon, error) {
	canonical := strings.ToUpper(code)

	var c Coupon
	err := s.db.WithContext(ctx).
		Where("code = ? AND active = ?", canonical, true).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coupon: %w", err)
	}

	return &c, nil
}
