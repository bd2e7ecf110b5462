package models

import "time"

type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Address     string `gorm:"size:255" json:"address"`
	Phone       string `gorm:"size:20" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Instagram   string `gorm:"size:100" json:"instagram"`
	Website     string `gorm:"size:255" json:"website"`

	LogoURL       string `gorm:"size:255" json:"logo_url"`
	CoverImageURL string `gorm:"size:255" json:"cover_image_url"`

	OpeningHours OpeningHours `gorm:"type:jsonb" json:"opening_hours"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopBarber links a barber (users.role = 'barber') to a shop.
type ShopBarber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"not null;uniqueIndex:idx_shop_barber" json:"shop_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_shop_barber" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}
