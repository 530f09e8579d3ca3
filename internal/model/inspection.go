package model

import (
	"time"

	"github.com/google/uuid"
)

// Inspection record status, shared by quality control and warehouse approval
const (
	InspectionPending    = "pending"
	InspectionInProgress = "in_progress"
	InspectionSubmitted  = "submitted"
	InspectionApproved   = "approved"
	InspectionRejected   = "rejected"
)

// Inspection priority
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Per-line quality control result
const (
	QCResultPending = "pending"
	QCResultPassed  = "passed"
	QCResultFailed  = "failed"
)

// Per-line warehouse approval result
const (
	ApprovalResultPending  = "pending"
	ApprovalResultApproved = "approved"
	ApprovalResultRejected = "rejected"
)

// Unit-level item inspection status
const (
	ItemPending = "pending"
	ItemPassed  = "passed"
	ItemFailed  = "failed"
)

// ItemDetail is a unit-level inspection entry inside a line item
type ItemDetail struct {
	ItemID          string `json:"item_id"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	InspectionNotes string `json:"inspection_notes,omitempty"`
}

// QCLine is one product batch under quality control inspection
type QCLine struct {
	ProductID   uuid.UUID    `json:"product_id"`
	BatchNumber string       `json:"batch_number"`
	ExpiryDate  *time.Time   `json:"expiry_date,omitempty"`
	Unit        string       `json:"unit"`
	ReceivedQty int          `json:"received_qty"`
	PassedQty   *int         `json:"passed_qty"`
	FailedQty   int          `json:"failed_qty"`
	QCResult    string       `json:"qc_result"`
	ItemDetails []ItemDetail `json:"item_details"`
	Remarks     string       `json:"remarks,omitempty"`
}

// WALine is one product batch under storage-placement inspection
type WALine struct {
	ProductID             uuid.UUID    `json:"product_id"`
	BatchNumber           string       `json:"batch_number"`
	ExpiryDate            *time.Time   `json:"expiry_date,omitempty"`
	Unit                  string       `json:"unit"`
	QCPassedQty           int          `json:"qc_passed_qty"`
	ApprovedQty           *int         `json:"approved_qty"`
	StorageLocation       string       `json:"storage_location"`
	ApprovalResult        string       `json:"approval_result"`
	ItemDetails           []ItemDetail `json:"item_details"`
	Remarks               string       `json:"remarks,omitempty"`
	InventoryIntegrated   bool         `json:"inventory_integrated"`
	InventoryIntegratedAt *time.Time   `json:"inventory_integrated_at,omitempty"`
	InventoryRecordID     *uuid.UUID   `json:"inventory_record_id,omitempty"`
}

// PassedQuantity is the recorded passed count, or what remains of the received
// units after failures when none was recorded.
func (l QCLine) PassedQuantity() int {
	if l.PassedQty != nil {
		return *l.PassedQty
	}
	if n := l.ReceivedQty - l.FailedQty; n > 0 {
		return n
	}
	return 0
}

// PostQuantity is the amount a line contributes to stock on approval.
// An explicit approved quantity of zero posts nothing.
func (l WALine) PostQuantity() int {
	if l.ApprovedQty != nil {
		return *l.ApprovedQty
	}
	return l.QCPassedQty
}
