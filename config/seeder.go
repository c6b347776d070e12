package config

import (
	"errors"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedUsers creates a couple of demo accounts for a fresh install.
func SeedUsers(db *gorm.DB, cfg *Config, log *zap.Logger) {
	password, _ := utils.HashPassword("password123", cfg.BcryptCost)

	users := []models.User{
		{
			Email:    "seller@example.com",
			Password: password,
			Name:     "Demo Seller",
			Role:     "seller",
		},
		{
			Email:    "buyer@example.com",
			Password: password,
			Name:     "Demo Buyer",
			Role:     "user",
		},
		{
			Email:    "admin@example.com",
			Password: password,
			Name:     "Admin",
			Role:     "admin",
		},
	}

	for i := range users {
		user := &users[i]
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(user).Error; err != nil {
				log.Warn("failed to seed user", zap.String("email", user.Email), zap.Error(err))
			}
		}
	}
}

// SeedProducts gives the marketplace a few starter listings owned by the
// demo seller.
func SeedProducts(db *gorm.DB, log *zap.Logger) {
	var seller models.User
	if err := db.Where("email = ?", "seller@example.com").First(&seller).Error; err != nil {
		return
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	products := []models.Product{
		{SellerID: seller.ID, Title: "Standing desk", Price: 120, Category: "furniture", Location: "Berlin", Description: "Height adjustable, barely used"},
		{SellerID: seller.ID, Title: "Road bike", Price: 340, Category: "sports", Location: "Hamburg", Description: "Aluminium frame, 28 inch"},
		{SellerID: seller.ID, Title: "Espresso machine", Price: 85, Category: "kitchen", Location: "Berlin"},
	}

	if err := db.Create(&products).Error; err != nil {
		log.Warn("failed to seed products", zap.Error(err))
	}
}
