package model

import (
	"time"

	"github.com/google/uuid"
)

// Audited entity types
const (
	EntityQualityControl    = "quality_control"
	EntityWarehouseApproval = "warehouse_approval"
	EntityInventory         = "inventory"
	EntityInvoiceReceiving  = "invoice_receiving"
	EntityUser              = "user"
)

// Audit actions for inspection stages are "<entity>_<verb>"
const (
	AuditVerbCreate  = "create"
	AuditVerbStart   = "start"
	AuditVerbUpdate  = "update"
	AuditVerbSubmit  = "submit"
	AuditVerbApprove = "approve"
	AuditVerbReject  = "reject"
	AuditVerbAssign  = "assign"

	ActionInventoryPost   = "inventory_post"
	ActionInventoryCreate = "inventory_create"
	ActionInvoiceReceive  = "invoice_receiving_create"
	ActionUserCreate      = "user_create"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(60);not null;index" json:"action"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   string     `gorm:"type:varchar(50);index:idx_audit_entity" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

// AuditAction composes a stage action name such as "quality_control_approve"
func AuditAction(entityType, verb string) string {
	return entityType + "_" + verb
}
