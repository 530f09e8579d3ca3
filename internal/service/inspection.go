package service

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/model"
	"warehouse/internal/workflow"
	"warehouse/pkg/apperror"

	"github.com/google/uuid"
)

// stage names the permissions and notification types of one inspection stage.
type stage struct {
	entity       string
	label        string
	numberPrefix string

	permUpdate  string
	permApprove string
	permAssign  string

	notifyAssignment string
	notifySubmitted  string
	notifyApproved   string
	notifyRejected   string
}

var qualityControlStage = stage{
	entity:           model.EntityQualityControl,
	label:            "Quality control",
	numberPrefix:     "QC",
	permUpdate:       model.PermQCUpdate,
	permApprove:      model.PermQCApprove,
	permAssign:       model.PermQCAssign,
	notifyAssignment: model.NotifyQCAssignment,
	notifySubmitted:  model.NotifyQCSubmitted,
	notifyApproved:   model.NotifyQCApproved,
	notifyRejected:   model.NotifyQCRejected,
}

var warehouseApprovalStage = stage{
	entity:           model.EntityWarehouseApproval,
	label:            "Warehouse approval",
	numberPrefix:     "WA",
	permUpdate:       model.PermWAUpdate,
	permApprove:      model.PermWAApprove,
	permAssign:       model.PermWAAssign,
	notifyAssignment: model.NotifyWAAssignment,
	notifySubmitted:  model.NotifyWASubmitted,
	notifyApproved:   model.NotifyWAApproved,
	notifyRejected:   model.NotifyWARejected,
}

// roles derives what the actor is to a record of this stage.
func (st stage) roles(actor Actor, assignedTo *uuid.UUID) []workflow.Role {
	var roles []workflow.Role
	if assignedTo != nil && *assignedTo == actor.UserID {
		roles = append(roles, workflow.RoleAssignee)
	}
	if actor.Can(st.permUpdate) {
		roles = append(roles, workflow.RoleEditor)
	}
	if actor.Can(st.permApprove) {
		roles = append(roles, workflow.RoleApprover)
	}
	if actor.Can(st.permAssign) {
		roles = append(roles, workflow.RoleSupervisor)
	}
	return roles
}

func (st stage) auditAction(verb string) string {
	return model.AuditAction(st.entity, verb)
}

func (st stage) notification(kind string, recipient, ref uuid.UUID, number, message string) NotificationInput {
	var title string
	switch kind {
	case st.notifyAssignment:
		title = fmt.Sprintf("%s %s assigned to you", st.label, number)
	case st.notifySubmitted:
		title = fmt.Sprintf("%s %s submitted", st.label, number)
	case st.notifyApproved:
		title = fmt.Sprintf("%s %s approved", st.label, number)
	case st.notifyRejected:
		title = fmt.Sprintf("%s %s rejected", st.label, number)
	}
	return NotificationInput{
		RecipientID:   recipient,
		Type:          kind,
		ReferenceType: st.entity,
		ReferenceID:   ref,
		Title:         title,
		Message:       message,
	}
}

// outcomeRecipients are notified of approval and rejection.
func outcomeRecipients(assignedTo *uuid.UUID, createdBy uuid.UUID) []uuid.UUID {
	recipients := []uuid.UUID{createdBy}
	if assignedTo != nil && *assignedTo != createdBy {
		recipients = append(recipients, *assignedTo)
	}
	return recipients
}

// nextNumber returns PREFIX-YYYYMMDD-NNNNN for the day of now.
func nextNumber(ctx context.Context, prefix string, now time.Time, count func(context.Context, string) (int64, error)) (string, error) {
	dayPrefix := prefix + "-" + now.Format("20060102") + "-"
	n, err := count(ctx, dayPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", prefix, err)
	}
	return fmt.Sprintf("%s%05d", dayPrefix, n+1), nil
}

// matchLine finds the single line with productID, narrowed by batch when given.
func matchLine(n int, keyAt func(int) (uuid.UUID, string), productID uuid.UUID, batch string) (int, error) {
	found := -1
	for i := 0; i < n; i++ {
		pid, b := keyAt(i)
		if pid != productID || (batch != "" && b != batch) {
			continue
		}
		if found >= 0 {
			return -1, apperror.Validation("product %s matches more than one line, batch_number is required", productID)
		}
		found = i
	}
	if found < 0 {
		if batch != "" {
			return -1, apperror.Validation("no line for product %s batch %s", productID, batch)
		}
		return -1, apperror.Validation("no line for product %s", productID)
	}
	return found, nil
}

type ItemDetailInput struct {
	// ItemID selects the unit to update. New records an extra unit and must
	// come without an id.
	ItemID          string `json:"item_id" binding:"required_without=New,excluded_with=New"`
	New             bool   `json:"new"`
	Status          string `json:"status" binding:"required,oneof=pending passed failed"`
	Reason          string `json:"reason" binding:"max=500"`
	InspectionNotes string `json:"inspection_notes" binding:"max=1000"`
}

// mergeItemDetails applies patches by item id. Unknown ids are rejected.
func mergeItemDetails(existing []model.ItemDetail, patches []ItemDetailInput) ([]model.ItemDetail, error) {
	merged := make([]model.ItemDetail, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.ItemID] = i
	}

	for _, p := range patches {
		if p.New {
			if p.ItemID != "" {
				return nil, apperror.Validation("item_id %q cannot be combined with new", p.ItemID)
			}
			merged = append(merged, model.ItemDetail{
				ItemID:          uuid.NewString(),
				Status:          p.Status,
				Reason:          p.Reason,
				InspectionNotes: p.InspectionNotes,
			})
			continue
		}
		if p.ItemID == "" {
			return nil, apperror.Validation("item_id is required unless new is set")
		}
		i, ok := index[p.ItemID]
		if !ok {
			return nil, apperror.Validation("unknown item_id %q", p.ItemID)
		}
		merged[i].Status = p.Status
		merged[i].Reason = p.Reason
		merged[i].InspectionNotes = p.InspectionNotes
	}
	return merged, nil
}

type SubmitRequest struct {
	GeneralRemarks string `json:"general_remarks" binding:"max=2000"`
}

type ApproveRequest struct {
	ApprovalRemarks string `json:"approval_remarks" binding:"max=2000"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=2000"`
}

type AssignRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required,uuid"`
}

type BulkAssignRequest struct {
	IDs        []string `json:"ids" binding:"required,min=1,max=100,dive,required"`
	AssignedTo string   `json:"assigned_to" binding:"required,uuid"`
}

type BulkAssignOutcome struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BulkAssignResult reports each record independently.
type BulkAssignResult struct {
	Requested int                 `json:"requested"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BulkAssignOutcome `json:"results"`
}

// bulkAssign runs assign once per distinct id and collects the outcomes.
func bulkAssign(ctx context.Context, ids []string, assign func(ctx context.Context, id string) error) *BulkAssignResult {
	seen := make(map[string]bool, len(ids))
	res := &BulkAssignResult{Results: make([]BulkAssignOutcome, 0, len(ids))}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		res.Requested++

		if err := assign(ctx, id); err != nil {
			res.Failed++
			res.Results = append(res.Results, BulkAssignOutcome{ID: id, Message: err.Error()})
			continue
		}
		res.Succeeded++
		res.Results = append(res.Results, BulkAssignOutcome{ID: id, Success: true})
	}
	return res
}
