package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotifyQCAssignment = "qc_assignment"
	NotifyQCSubmitted  = "qc_submitted"
	NotifyQCApproved   = "qc_approved"
	NotifyQCRejected   = "qc_rejected"

	NotifyWAAssignment = "warehouse_approval_assignment"
	NotifyWASubmitted  = "warehouse_approval_submitted"
	NotifyWAApproved   = "warehouse_approval_approved"
	NotifyWARejected   = "warehouse_approval_rejected"
)

// Notification is addressed to a single recipient
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_notification_recipient" json:"recipient_id"`
	Type          string     `gorm:"type:varchar(50);not null" json:"type"`
	ReferenceType string     `gorm:"type:varchar(50);not null" json:"reference_type"`
	ReferenceID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"reference_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Message       string     `gorm:"type:text" json:"message"`
	IsRead        bool       `gorm:"default:false;index:idx_notification_recipient" json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
}
