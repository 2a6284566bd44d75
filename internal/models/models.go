package models

import "time"

type Admin struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime"           json:"created_at"`
}

// Product prices are minor currency units, no decimals.
type Product struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       int64     `gorm:"not null"                 json:"price"`
	Quantity    int64     `gorm:"not null;default:0"       json:"quantity"`
	ImagePath   *string   `json:"image_path"`
	CreatedAt   time.Time `gorm:"autoCreateTime"           json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"           json:"updated_at"`
}
