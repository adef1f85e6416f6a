package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Image     string    `gorm:"size:255" json:"image"`
	ImageURL  string    `gorm:"-" json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

func (t *Testimonial) AfterFind(tx *gorm.DB) (err error) {
	t.ImageURL = ImageURL(t.Image)
	return
}
