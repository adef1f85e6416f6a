package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryMen   = "men"
	CategoryWomen = "women"
	CategoryKids  = "kids"
)

// UploadURLPrefix is where stored images are served from.
const UploadURLPrefix = "/uploads/"

type Product struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Cost      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"cost"`
	Stock     int             `gorm:"not null;default:0;index" json:"stock"`
	Image     string          `gorm:"size:255" json:"image"`
	ImageURL  string          `gorm:"-" json:"imageUrl,omitempty"`
	Category  string          `gorm:"size:20;not null;default:'men'" json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Category == "" {
		p.Category = CategoryMen
	}
	return
}

func (p *Product) AfterFind(tx *gorm.DB) (err error) {
	p.ImageURL = ImageURL(p.Image)
	return
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

// ImageURL maps a stored filename to its public path.
func ImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return UploadURLPrefix + filename
}
