package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice receiving QC status
const (
	InvoiceQCPending    = "pending"
	InvoiceQCInProgress = "in_progress"
	InvoiceQCCompleted  = "completed"
	InvoiceQCRejected   = "rejected"
)

// InvoiceLine is one delivered product batch on a receiving invoice
type InvoiceLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Unit        string          `json:"unit"`
	ReceivedQty int             `json:"received_qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InvoiceReceiving records goods physically received from a supplier; it is the QC source
type InvoiceReceiving struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier      *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Warehouse     *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	ReceivedBy    uuid.UUID       `gorm:"type:uuid;not null" json:"received_by"`
	ReceivedAt    time.Time       `gorm:"not null" json:"received_at"`
	QCStatus      string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"qc_status"`
	Products      []InvoiceLine   `gorm:"type:jsonb;serializer:json" json:"products"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
