package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory record status
const (
	StockAvailable  = "available"
	StockReserved   = "reserved"
	StockExpired    = "expired"
	StockOutOfStock = "out_of_stock"
)

// Movement types
const (
	MovementReceipt = "receipt"
	MovementManual  = "manual"
)

// InventoryRecord is the stock of one batch of a product in one warehouse.
// AvailableStock always equals CurrentStock - ReservedStock.
type InventoryRecord struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_batch" json:"product_id"`
	Product         *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	WarehouseID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_batch" json:"warehouse_id"`
	Warehouse       *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	BatchNumber     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_batch" json:"batch_number"`
	CurrentStock    int        `gorm:"type:int;not null;default:0" json:"current_stock"`
	ReservedStock   int        `gorm:"type:int;not null;default:0" json:"reserved_stock"`
	AvailableStock  int        `gorm:"type:int;not null;default:0" json:"available_stock"`
	Unit            string     `gorm:"type:varchar(30)" json:"unit"`
	ExpiryDate      *time.Time `gorm:"index" json:"expiry_date,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	StorageLocation string     `gorm:"type:varchar(100)" json:"storage_location"`
	LastReceivedAt  *time.Time `json:"last_received_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// InventoryMovement records every stock change. PostingKey makes postings idempotent.
type InventoryMovement struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InventoryRecordID uuid.UUID  `gorm:"type:uuid;not null;index" json:"inventory_record_id"`
	PostingKey        *string    `gorm:"type:varchar(150);uniqueIndex" json:"posting_key,omitempty"`
	MovementType      string     `gorm:"type:varchar(20);not null" json:"movement_type"`
	Quantity          int        `gorm:"type:int;not null" json:"quantity"`
	StockAfter        int        `gorm:"type:int;not null" json:"stock_after"`
	ReferenceType     string     `gorm:"type:varchar(50)" json:"reference_type,omitempty"`
	ReferenceID       *uuid.UUID `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	CreatedBy         *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
