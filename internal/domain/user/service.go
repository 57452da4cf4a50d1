// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/brightstore-backend/internal/config"
	"gorm.io/gorm"
)

// ErrProfileNotFound is returned when no profile exists for a user id
var ErrProfileNotFound = errors.New("profile not found")

// Service handles customer profile reads
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetProfile retrieves the profile for a user id
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}
