package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"warehouse/internal/database/dbtest"
	"warehouse/internal/logger"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPusher struct {
	mu   sync.Mutex
	sent map[uuid.UUID]int
}

func (p *recordingPusher) SendToUser(userID uuid.UUID, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sent == nil {
		p.sent = make(map[uuid.UUID]int)
	}
	p.sent[userID]++
	return nil
}

func (p *recordingPusher) count(userID uuid.UUID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[userID]
}

type fixture struct {
	db  *gorm.DB
	ctx context.Context

	qc            service.QualityControlService
	wa            service.WarehouseApprovalService
	inventory     service.InventoryService
	invoices      service.InvoiceReceivingService
	notifications service.NotificationService
	audit         service.AuditService
	pusher        *recordingPusher

	product   model.Product
	warehouse model.Warehouse
	supplier  model.Supplier

	qcManager  service.Actor
	inspector  service.Actor
	whManager  service.Actor
	whStaff    service.Actor
	viewer     service.Actor
	invoiceSeq int
}

var (
	qcManagerPerms = []string{model.PermQCCreate, model.PermQCRead, model.PermQCUpdate, model.PermQCApprove, model.PermQCAssign}
	inspectorPerms = []string{model.PermQCRead, model.PermQCUpdate}
	whManagerPerms = []string{model.PermWACreate, model.PermWARead, model.PermWAUpdate, model.PermWAApprove, model.PermWAAssign, model.PermInvoiceCreate, model.PermInventoryCreate}
	whStaffPerms   = []string{model.PermWARead, model.PermWAUpdate}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	log := logger.Discard()

	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceReceivingRepository(db)
	qcRepo := repository.NewQualityControlRepository(db)

	pusher := &recordingPusher{}
	audit := service.NewAuditService(repository.NewAuditRepository(db), log)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), pusher, log)
	inventory := service.NewInventoryService(repository.NewInventoryRepository(db), productRepo, warehouseRepo, txManager, audit, log)

	f := &fixture{
		db:            db,
		ctx:           context.Background(),
		inventory:     inventory,
		notifications: notifications,
		audit:         audit,
		pusher:        pusher,
		invoices:      service.NewInvoiceReceivingService(invoiceRepo, productRepo, supplierRepo, warehouseRepo, txManager, audit),
		qc: service.NewQualityControlService(
			qcRepo, repository.NewQualityControlStatsRepository(db), invoiceRepo, productRepo, userRepo,
			txManager, audit, notifications, log,
		),
		wa: service.NewWarehouseApprovalService(
			repository.NewWarehouseApprovalRepository(db), repository.NewWarehouseApprovalStatsRepository(db),
			qcRepo, userRepo, inventory, txManager, audit, notifications, log,
		),
	}

	f.product = model.Product{SKU: "GLV-NIT-M", Name: "Nitrile gloves M", Unit: "box"}
	f.warehouse = model.Warehouse{Code: "WH-HCM", Name: "Ho Chi Minh DC"}
	f.supplier = model.Supplier{Name: "MedSupply Co"}
	require.NoError(t, db.Create(&f.product).Error)
	require.NoError(t, db.Create(&f.warehouse).Error)
	require.NoError(t, db.Create(&f.supplier).Error)

	f.qcManager = f.newActor(t, "qc.manager", model.RoleQCManager, qcManagerPerms)
	f.inspector = f.newActor(t, "qc.inspector", model.RoleQCInspector, inspectorPerms)
	f.whManager = f.newActor(t, "wh.manager", model.RoleWarehouseManager, whManagerPerms)
	f.whStaff = f.newActor(t, "wh.staff", model.RoleWarehouseStaff, whStaffPerms)
	f.viewer = f.newActor(t, "viewer", model.RoleViewer, []string{model.PermQCRead, model.PermWARead})
	return f
}

func (f *fixture) newActor(t *testing.T, username, role string, perms []string) service.Actor {
	t.Helper()
	user := model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return service.Actor{UserID: user.ID, Role: role, Permissions: perms}
}

func (f *fixture) newInvoice(t *testing.T, batch string, qty int) *model.InvoiceReceiving {
	t.Helper()
	f.invoiceSeq++
	invoice, err := f.invoices.Create(f.ctx, f.whManager, service.CreateInvoiceReceivingRequest{
		InvoiceNumber: fmt.Sprintf("INV-%04d", f.invoiceSeq),
		SupplierID:    f.supplier.ID.String(),
		WarehouseID:   f.warehouse.ID.String(),
		Products: []service.InvoiceLineInput{{
			ProductID:   f.product.ID.String(),
			BatchNumber: batch,
			ReceivedQty: qty,
			UnitPrice:   "12.50",
		}},
	})
	require.NoError(t, err)
	return invoice
}

func (f *fixture) newQC(t *testing.T, invoice *model.InvoiceReceiving) *model.QualityControl {
	t.Helper()
	assignee := f.inspector.UserID.String()
	qc, err := f.qc.Create(f.ctx, f.qcManager, service.CreateQualityControlRequest{
		InvoiceReceivingID: invoice.ID.String(),
		AssignedTo:         &assignee,
	})
	require.NoError(t, err)
	return qc
}

// approvedQC drives a new invoice through quality control with every unit passed.
func (f *fixture) approvedQC(t *testing.T, batch string, qty int) *model.QualityControl {
	t.Helper()
	qc := f.newQC(t, f.newInvoice(t, batch, qty))
	id := qc.ID.String()

	_, err := f.qc.UpdateLineResults(f.ctx, f.inspector, id, service.UpdateQualityControlRequest{
		Products: []service.QCLinePatch{{ProductID: f.product.ID.String(), PassedQty: &qty, QCResult: model.QCResultPassed}},
	})
	require.NoError(t, err)
	_, err = f.qc.Submit(f.ctx, f.inspector, id, service.SubmitRequest{})
	require.NoError(t, err)
	qc, err = f.qc.Approve(f.ctx, f.qcManager, id, service.ApproveRequest{ApprovalRemarks: "ok"})
	require.NoError(t, err)
	return qc
}

func (f *fixture) newWA(t *testing.T, qc *model.QualityControl) *model.WarehouseApproval {
	t.Helper()
	assignee := f.whStaff.UserID.String()
	wa, err := f.wa.Create(f.ctx, f.whManager, service.CreateWarehouseApprovalRequest{
		QualityControlID: qc.ID.String(),
		AssignedTo:       &assignee,
	})
	require.NoError(t, err)
	return wa
}

// submittedWA creates a warehouse approval for qc and submits it with every line approved.
func (f *fixture) submittedWA(t *testing.T, qc *model.QualityControl, location string) *model.WarehouseApproval {
	t.Helper()
	wa := f.newWA(t, qc)
	id := wa.ID.String()

	_, err := f.wa.UpdateLineResults(f.ctx, f.whStaff, id, service.UpdateWarehouseApprovalRequest{
		Products: []service.WALinePatch{{
			ProductID:       f.product.ID.String(),
			ApprovalResult:  model.ApprovalResultApproved,
			StorageLocation: &location,
		}},
	})
	require.NoError(t, err)
	wa, err = f.wa.Submit(f.ctx, f.whStaff, id, service.SubmitRequest{GeneralRemarks: "shelved"})
	require.NoError(t, err)
	return wa
}

func (f *fixture) countNotifications(t *testing.T, recipient uuid.UUID, kind string) int {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND type = ?", recipient, kind).
		Count(&n).Error)
	return int(n)
}

func repositoryFilterAssignedTo(userID uuid.UUID) repository.InspectionFilter {
	return repository.InspectionFilter{AssignedTo: &userID, Page: 1, Limit: 50}
}
