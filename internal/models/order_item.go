package models

import "gorm.io/gorm"

type OrderItem struct {
	gorm.Model

	OrderID   uint    `gorm:"not null;index"`
	Quantity  int     `gorm:"not null"`
	Flavor    string  `gorm:"not null"`
	Size      string  `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
}
