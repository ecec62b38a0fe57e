package models

import "gorm.io/gorm"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

type Order struct {
	gorm.Model

	UserID uint        `gorm:"not null;index"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`

	// Total is derived from the current items; it is only ever written by
	// the ledger's recompute, never set directly.
	Total float64 `gorm:"not null;default:0"`

	// Relationships
	Owner User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
