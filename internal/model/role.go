package model

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names
const (
	RoleAdmin            = "admin"
	RoleQCManager        = "qc_manager"
	RoleQCInspector      = "qc_inspector"
	RoleWarehouseManager = "warehouse_manager"
	RoleWarehouseStaff   = "warehouse_staff"
	RoleViewer           = "viewer"
)

// Permission codes follow the resource:action convention.
const (
	PermQCCreate  = "quality_control:create"
	PermQCRead    = "quality_control:read"
	PermQCUpdate  = "quality_control:update"
	PermQCApprove = "quality_control:approve"
	PermQCAssign  = "quality_control:assign"

	PermWACreate  = "warehouse_approval:create"
	PermWARead    = "warehouse_approval:read"
	PermWAUpdate  = "warehouse_approval:update"
	PermWAApprove = "warehouse_approval:approve"
	PermWAAssign  = "warehouse_approval:assign"

	PermInventoryRead   = "inventory:read"
	PermInventoryCreate = "inventory:create"
	PermInventoryExport = "inventory:export"

	PermInvoiceRead   = "invoice_receiving:read"
	PermInvoiceCreate = "invoice_receiving:create"

	PermCatalogRead  = "catalog:read"
	PermCatalogWrite = "catalog:write"

	PermUsersRead   = "users:read"
	PermUsersCreate = "users:create"

	PermAuditRead = "audit_logs:read"
)

// Role represents a user role with associated permissions
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	IsSystem    bool         `gorm:"default:false" json:"is_system"` // Prevent deletion of built-in roles
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Permission represents a single permission that can be assigned to roles
type Permission struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"` // e.g. "quality_control:approve"
	Name  string    `gorm:"type:varchar(255);not null" json:"name"`
	Group string    `gorm:"type:varchar(50);not null;index" json:"group"`
}
