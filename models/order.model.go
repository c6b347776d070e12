package models

import (
	"time"
)

// Valid order statuses. Any participant (or an admin) may set any of these
// at any time; there is no transition graph.
var OrderStatuses = []string{"pending", "confirmed", "completed", "cancelled"}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	BuyerID   uint   `gorm:"index;not null" json:"buyer_id"`
	SellerID  uint   `gorm:"index;not null" json:"seller_id"` // product owner at creation time
	Status    string `gorm:"default:'pending';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Buyer   User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
