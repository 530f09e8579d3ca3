package model

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseApproval confirms storage placement of QC-approved goods
type WarehouseApproval struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ApprovalNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"approval_number"`
	QualityControlID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wa_active_qc,where:status <> 'rejected'" json:"quality_control_id"`
	QualityControl   *QualityControl `gorm:"foreignKey:QualityControlID" json:"quality_control,omitempty"`
	WarehouseID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Warehouse        *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	AssignedTo       *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_to"`
	Assignee         *User           `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	CreatedBy        uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority         string          `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	Products         []WALine        `gorm:"type:jsonb;serializer:json" json:"products"`
	StartedAt        *time.Time      `json:"started_at,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	SubmittedBy      *uuid.UUID      `gorm:"type:uuid" json:"submitted_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy       *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovalRemarks  string          `gorm:"type:text" json:"approval_remarks,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy       *uuid.UUID      `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectionReason  string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	GeneralRemarks   string          `gorm:"type:text" json:"general_remarks,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (WarehouseApproval) TableName() string { return "warehouse_approvals" }
