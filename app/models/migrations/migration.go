package migrations

import (
	"github.com/Rakhulsr/vendoz/app/models"
	"gorm.io/gorm"
)

func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Message{},
		&models.MessageReply{},
		&models.Testimonial{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
