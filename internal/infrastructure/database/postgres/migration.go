// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/brightstore-backend/internal/domain/coupon"
	"github.com/your-org/brightstore-backend/internal/domain/product"
	"github.com/your-org/brightstore-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&user.Profile{},
		&product.Product{},
		&coupon.Coupon{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedInitialData seeds catalog and coupon data for development
func (m *Migration) SeedInitialData() error {
	var productCount int64
	if err := m.db.Model(&product.Product{}).Count(&productCount).Error; err != nil {
		return err
	}

	if productCount == 0 {
		stock := 40
		products := []product.Product{
			{
				ID:                   "rice-ponni",
				Name:                 "Ponni Rice",
				Description:          "Premium aged ponni rice",
				Price:                decimal.NewFromInt(68),
				WholesalePrice:       decimal.NewFromInt(62),
				MinWholesaleQuantity: 25,
				Category:             "Rice",
				StockQuantity:        &stock,
				Variants: product.VariantList{
					{
						Name: "Pack Size",
						Options: []product.VariantOption{
							{Label: "1 kg", PriceModifier: decimal.Zero},
							{Label: "5 kg", PriceModifier: decimal.NewFromInt(260)},
							{Label: "10 kg", PriceModifier: decimal.NewFromInt(540)},
						},
					},
				},
			},
			{
				ID:             "oil-groundnut",
				Name:           "Groundnut Oil",
				Description:    "Cold pressed groundnut oil",
				Price:          decimal.NewFromInt(220),
				WholesalePrice: decimal.NewFromInt(205),
				Category:       "Oil",
			},
		}
		if err := m.db.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	var couponCount int64
	if err := m.db.Model(&coupon.Coupon{}).Count(&couponCount).Error; err != nil {
		return err
	}

	if couponCount == 0 {
		coupons := []coupon.Coupon{
			{
				Code:           "SAVE10",
				DiscountType:   coupon.DiscountTypePercentage,
				Value:          decimal.NewFromInt(10),
				MinOrderAmount: decimal.NewFromInt(500),
				Active:         true,
			},
			{
				Code:           "FLAT100",
				DiscountType:   coupon.DiscountTypeFixed,
				Value:          decimal.NewFromInt(100),
				MinOrderAmount: decimal.NewFromInt(999),
				Active:         true,
			},
		}
		if err := m.db.Create(&coupons).Error; err != nil {
			return fmt.Errorf("failed to seed coupons: %w", err)
		}
	}

	log.Println("✅ Initial data seeded")
	return nil
}
