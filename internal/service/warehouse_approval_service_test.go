package service_test

import (
	"errors"
	"fmt"
	"testing"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceivingToInventoryEndToEnd(t *testing.T) {
	f := newFixture(t)

	qc := f.approvedQC(t, "BATCH-E2E", 100)
	invoice, err := f.invoices.Get(f.ctx, qc.InvoiceReceivingID.String())
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceQCCompleted, invoice.QCStatus)

	wa := f.submittedWA(t, qc, "A-01-03")
	require.Len(t, wa.Products, 1)
	assert.Equal(t, 100, wa.Products[0].QCPassedQty)

	approved, err := f.wa.Approve(f.ctx, f.whManager, wa.ID.String(), service.ApproveRequest{ApprovalRemarks: "stored"})
	require.NoError(t, err)
	assert.Equal(t, model.InspectionApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	line := approved.Products[0]
	assert.True(t, line.InventoryIntegrated)
	assert.NotNil(t, line.InventoryIntegratedAt)
	require.NotNil(t, line.InventoryRecordID)

	records, total, err := f.inventory.List(f.ctx, repository.InventoryFilter{ProductID: &f.product.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	rec := records[0]
	assert.Equal(t, *line.InventoryRecordID, rec.ID)
	assert.Equal(t, "BATCH-E2E", rec.BatchNumber)
	assert.Equal(t, 100, rec.CurrentStock)
	assert.Equal(t, 100, rec.AvailableStock)
	assert.Equal(t, 0, rec.ReservedStock)
	assert.Equal(t, model.StockAvailable, rec.Status)
	assert.Equal(t, "A-01-03", rec.StorageLocation)
	assert.Equal(t, "box", rec.Unit)

	movements, err := f.inventory.Movements(f.ctx, rec.ID.String())
	require.NoError(t, err)
	require.Len(t, movements, 1)
	require.NotNil(t, movements[0].PostingKey)
	assert.Equal(t, fmt.Sprintf("warehouse_approval:%s:0", wa.ID), *movements[0].PostingKey)

	assert.Equal(t, 1, f.countNotifications(t, f.whStaff.UserID, model.NotifyWAApproved))
	assert.Equal(t, 1, f.countNotifications(t, f.whManager.UserID, model.NotifyWAApproved))

	logs, _, err := f.audit.GetAuditLogs(f.ctx, repository.AuditFilter{Action: model.ActionInventoryPost, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, rec.ID.String(), logs[0].EntityID)
	assert.Equal(t, "wh.manager", logs[0].Username)
}

func TestWarehouseApprovalRejectPostsNothing(t *testing.T) {
	f := newFixture(t)
	wa := f.submittedWA(t, f.approvedQC(t, "LOT-R", 30), "B-02")

	rejected, err := f.wa.Reject(f.ctx, f.whManager, wa.ID.String(), service.RejectRequest{RejectionReason: "cold chain broken"})
	require.NoError(t, err)
	assert.Equal(t, model.InspectionRejected, rejected.Status)
	assert.Equal(t, "cold chain broken", rejected.RejectionReason)
	assert.False(t, rejected.Products[0].InventoryIntegrated)

	_, total, err := f.inventory.List(f.ctx, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = f.wa.Approve(f.ctx, f.whManager, wa.ID.String(), service.ApproveRequest{})
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestWarehouseApprovalsMergeIntoSameBatch(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []int{50, 25} {
		wa := f.submittedWA(t, f.approvedQC(t, "BATCH001", qty), "C-01")
		_, err := f.wa.Approve(f.ctx, f.whManager, wa.ID.String(), service.ApproveRequest{})
		require.NoError(t, err)
	}

	records, total, err := f.inventory.List(f.ctx, repository.InventoryFilter{BatchNumber: "BATCH001"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, 75, records[0].CurrentStock)
	assert.Equal(t, 75, records[0].AvailableStock)
}

func TestWarehouseApprovalRequiresApprovedQC(t *testing.T) {
	f := newFixture(t)
	qc := f.newQC(t, f.newInvoice(t, "LOT-P", 10))

	_, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{QualityControlID: qc.ID.String()})
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "got %v", err)
}

func TestWarehouseApprovalDuplicateCreate(t *testing.T) {
	f := newFixture(t)
	qc := f.approvedQC(t, "LOT-D", 10)
	f.newWA(t, qc)

	_, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{QualityControlID: qc.ID.String()})
	assert.True(t, errors.Is(err, apperror.ErrDuplicateRecord), "got %v", err)
}

func TestWarehouseApprovalExplicitLines(t *testing.T) {
	f := newFixture(t)
	qc := f.approvedQC(t, "LOT-X", 20)

	_, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{
		QualityControlID: qc.ID.String(),
		Products: []service.WALineInput{{
			ProductID:   f.product.ID.String(),
			BatchNumber: "LOT-X",
			QCPassedQty: 21,
		}},
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

	wa, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{
		QualityControlID: qc.ID.String(),
		Products: []service.WALineInput{{
			ProductID:       f.product.ID.String(),
			BatchNumber:     "LOT-X",
			QCPassedQty:     15,
			StorageLocation: "D-04",
		}},
	})
	require.NoError(t, err)
	require.Len(t, wa.Products, 1)
	assert.Equal(t, 15, wa.Products[0].QCPassedQty)
	assert.Equal(t, "box", wa.Products[0].Unit)
}

func TestWarehouseApprovalPostsApprovedQuantity(t *testing.T) {
	f := newFixture(t)
	wa := f.newWA(t, f.approvedQC(t, "LOT-Q", 40))
	id := wa.ID.String()

	tooMany := 41
	_, err := f.wa.UpdateLineResults(f.ctx, f.whStaff, id, service.UpdateWarehouseApprovalRequest{
		Products: []service.WALinePatch{{ProductID: f.product.ID.String(), ApprovedQty: &tooMany}},
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	approvedQty := 32
	_, err = f.wa.UpdateLineResults(f.ctx, f.whStaff, id, service.UpdateWarehouseApprovalRequest{
		Products: []service.WALinePatch{{
			ProductID:      f.product.ID.String(),
			BatchNumber:    "LOT-Q",
			ApprovedQty:    &approvedQty,
			ApprovalResult: model.ApprovalResultApproved,
		}},
	})
	require.NoError(t, err)
	_, err = f.wa.Submit(f.ctx, f.whStaff, id, service.SubmitRequest{})
	require.NoError(t, err)
	_, err = f.wa.Approve(f.ctx, f.whManager, id, service.ApproveRequest{})
	require.NoError(t, err)

	records, _, err := f.inventory.List(f.ctx, repository.InventoryFilter{BatchNumber: "LOT-Q"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 32, records[0].CurrentStock)
}

func TestWarehouseApprovalSkipsRejectedLines(t *testing.T) {
	f := newFixture(t)
	wa := f.newWA(t, f.approvedQC(t, "LOT-S", 12))
	id := wa.ID.String()

	_, err := f.wa.UpdateLineResults(f.ctx, f.whStaff, id, service.UpdateWarehouseApprovalRequest{
		Products: []service.WALinePatch{{ProductID: f.product.ID.String(), ApprovalResult: model.ApprovalResultRejected}},
	})
	require.NoError(t, err)
	_, err = f.wa.Submit(f.ctx, f.whStaff, id, service.SubmitRequest{})
	require.NoError(t, err)

	approved, err := f.wa.Approve(f.ctx, f.whManager, id, service.ApproveRequest{})
	require.NoError(t, err)
	assert.False(t, approved.Products[0].InventoryIntegrated)

	_, total, err := f.inventory.List(f.ctx, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestWarehouseApprovalBulkAssign(t *testing.T) {
	f := newFixture(t)
	var ids []string
	for _, batch := range []string{"L1", "L2"} {
		ids = append(ids, f.newWA(t, f.approvedQC(t, batch, 5)).ID.String())
	}

	res, err := f.wa.BulkAssign(f.ctx, f.whManager, service.BulkAssignRequest{IDs: ids, AssignedTo: f.whManager.UserID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, f.countNotifications(t, f.whManager.UserID, model.NotifyWAAssignment))

	dash, err := f.wa.Dashboard(f.ctx, f.whManager)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.AssignedToMe)
}

func TestWarehouseApprovalZeroApprovedQuantityPostsNothing(t *testing.T) {
	f := newFixture(t)
	wa := f.newWA(t, f.approvedQC(t, "LOT-Z", 40))
	id := wa.ID.String()

	zero := 0
	_, err := f.wa.UpdateLineResults(f.ctx, f.whStaff, id, service.UpdateWarehouseApprovalRequest{
		Products: []service.WALinePatch{{
			ProductID:      f.product.ID.String(),
			ApprovedQty:    &zero,
			ApprovalResult: model.ApprovalResultApproved,
		}},
	})
	require.NoError(t, err)
	_, err = f.wa.Submit(f.ctx, f.whStaff, id, service.SubmitRequest{})
	require.NoError(t, err)

	approved, err := f.wa.Approve(f.ctx, f.whManager, id, service.ApproveRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.InspectionApproved, approved.Status)
	require.NotNil(t, approved.Products[0].ApprovedQty)
	assert.Equal(t, 0, *approved.Products[0].ApprovedQty)
	assert.False(t, approved.Products[0].InventoryIntegrated)

	_, total, err := f.inventory.List(f.ctx, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

// inspectedQC approves a quality control record whose single line carries the given counts.
func (f *fixture) inspectedQC(t *testing.T, batch string, received int, passed *int, failed int) *model.QualityControl {
	t.Helper()
	qc := f.newQC(t, f.newInvoice(t, batch, received))
	id := qc.ID.String()

	_, err := f.qc.UpdateLineResults(f.ctx, f.inspector, id, service.UpdateQualityControlRequest{
		Products: []service.QCLinePatch{{
			ProductID: f.product.ID.String(),
			PassedQty: passed,
			FailedQty: &failed,
			QCResult:  model.QCResultPassed,
		}},
	})
	require.NoError(t, err)
	_, err = f.qc.Submit(f.ctx, f.inspector, id, service.SubmitRequest{})
	require.NoError(t, err)
	qc, err = f.qc.Approve(f.ctx, f.qcManager, id, service.ApproveRequest{})
	require.NoError(t, err)
	return qc
}

func TestWarehouseApprovalLinesExcludeFailedUnits(t *testing.T) {
	f := newFixture(t)

	t.Run("zero passed", func(t *testing.T) {
		zero := 0
		qc := f.inspectedQC(t, "LOT-F0", 10, &zero, 10)

		_, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{QualityControlID: qc.ID.String()})
		assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

		_, err = f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{
			QualityControlID: qc.ID.String(),
			Products: []service.WALineInput{{
				ProductID:   f.product.ID.String(),
				BatchNumber: "LOT-F0",
				QCPassedQty: 10,
			}},
		})
		assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)
	})

	t.Run("passed derived from failures", func(t *testing.T) {
		qc := f.inspectedQC(t, "LOT-F4", 10, nil, 4)

		wa := f.newWA(t, qc)
		require.Len(t, wa.Products, 1)
		assert.Equal(t, 6, wa.Products[0].QCPassedQty)
	})
}

func TestWarehouseApprovalPostingFailureAbortsApproval(t *testing.T) {
	f := newFixture(t)
	wa := f.submittedWA(t, f.approvedQC(t, "LOT-PF", 20), "E-01")
	require.NoError(t, f.db.Migrator().DropTable(&model.InventoryMovement{}))

	_, err := f.wa.Approve(f.ctx, f.whManager, wa.ID.String(), service.ApproveRequest{})
	require.Error(t, err)

	stored, err := f.wa.Get(f.ctx, wa.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.InspectionSubmitted, stored.Status)
	assert.Nil(t, stored.ApprovedAt)
	assert.False(t, stored.Products[0].InventoryIntegrated)

	var rows int64
	require.NoError(t, f.db.Model(&model.InventoryRecord{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestWarehouseApprovalSurvivesSideEffectFailures(t *testing.T) {
	f := newFixture(t)
	wa := f.submittedWA(t, f.approvedQC(t, "LOT-SE", 15), "E-02")
	require.NoError(t, f.db.Migrator().DropTable(&model.Notification{}, &model.AuditLog{}))

	approved, err := f.wa.Approve(f.ctx, f.whManager, wa.ID.String(), service.ApproveRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.InspectionApproved, approved.Status)
	assert.True(t, approved.Products[0].InventoryIntegrated)

	rec, err := f.inventory.Get(f.ctx, approved.Products[0].InventoryRecordID.String())
	require.NoError(t, err)
	assert.Equal(t, 15, rec.CurrentStock)
}
