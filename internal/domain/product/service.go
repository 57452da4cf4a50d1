// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/brightstore-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product does not exist
var ErrNotFound = errors.New("product not found")

// Service handles product catalog reads
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=50"`
}

// List retrieves catalog products, newest first
func (s *Service) List(ctx context.Context, req *ProductListRequest) ([]Product, error) {
	query := s.db.WithContext(ctx).Model(&Product{})

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ?", "%"+req.Search+"%")
	}
	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}

	var products []Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Get retrieves a single product by id
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var prod Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &prod, nil
}
