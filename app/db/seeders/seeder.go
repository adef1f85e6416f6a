package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/vendoz/app/db/fakers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultTestimonials = 5

type Seeder struct {
	Seeder interface{}
}

func SeedersRegister(products, testimonials int) []Seeder {
	seeders := make([]Seeder, 0, products+testimonials)
	for i := 0; i < products; i++ {
		seeders = append(seeders, Seeder{Seeder: fakers.ProductFaker()})
	}
	for i := 0; i < testimonials; i++ {
		seeders = append(seeders, Seeder{Seeder: fakers.TestimonialFaker()})
	}
	return seeders
}

// DBSeed inserts fake products and testimonials in a single transaction.
func DBSeed(ctx context.Context, db *gorm.DB, products, testimonials int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seeder := range SeedersRegister(products, testimonials) {
			if err := tx.Create(seeder.Seeder).Error; err != nil {
				return fmt.Errorf("seed %T: %w", seeder.Seeder, err)
			}
		}
		zap.S().Infof("Seeded %d products and %d testimonials", products, testimonials)
		return nil
	})
}
