package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/database/dbtest"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (model.Product, model.Warehouse) {
	t.Helper()
	product := model.Product{SKU: "SYR-5ML", Name: "Syringe 5ml", Unit: "box"}
	warehouse := model.Warehouse{Code: "WH-01", Name: "Main"}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&warehouse).Error)
	return product, warehouse
}

func TestUpsertStockMergesIntoSameBatch(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewInventoryRepository(db)
	ctx := context.Background()
	product, warehouse := seedCatalog(t, db)

	post := func(qty int) {
		now := time.Now()
		require.NoError(t, repo.UpsertStock(ctx, &model.InventoryRecord{
			ProductID:      product.ID,
			WarehouseID:    warehouse.ID,
			BatchNumber:    "BATCH001",
			CurrentStock:   qty,
			AvailableStock: qty,
			Status:         model.StockAvailable,
			LastReceivedAt: &now,
		}))
	}
	post(50)
	post(25)

	rec, err := repo.FindByKey(ctx, product.ID, warehouse.ID, "BATCH001")
	require.NoError(t, err)
	assert.Equal(t, 75, rec.CurrentStock)
	assert.Equal(t, 75, rec.AvailableStock)
	assert.Equal(t, 0, rec.ReservedStock)

	_, total, err := repo.List(ctx, repository.InventoryFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFindByKeyNotFound(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewInventoryRepository(db)

	_, err := repo.FindByKey(context.Background(), uuid.New(), uuid.New(), "NOPE")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestActiveInspectionUniquePerSource(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewQualityControlRepository(db)
	ctx := context.Background()
	_, warehouse := seedCatalog(t, db)
	invoiceID := uuid.New()

	first := &model.QualityControl{QCNumber: "QC-1", InvoiceReceivingID: invoiceID, WarehouseID: warehouse.ID, CreatedBy: uuid.New(), Status: model.InspectionPending, Priority: model.PriorityMedium}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.QualityControl{QCNumber: "QC-2", InvoiceReceivingID: invoiceID, WarehouseID: warehouse.ID, CreatedBy: uuid.New(), Status: model.InspectionPending, Priority: model.PriorityMedium}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, apperror.ErrDuplicateRecord)

	first.Status = model.InspectionRejected
	require.NoError(t, repo.Save(ctx, first))

	third := &model.QualityControl{QCNumber: "QC-3", InvoiceReceivingID: invoiceID, WarehouseID: warehouse.ID, CreatedBy: uuid.New(), Status: model.InspectionPending, Priority: model.PriorityMedium}
	require.NoError(t, repo.Create(ctx, third))

	active, err := repo.CountActiveBySource(ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	count, err := repo.CountByNumberPrefix(ctx, "QC-")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestInspectionLinesRoundTrip(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewWarehouseApprovalRepository(db)
	ctx := context.Background()
	product, warehouse := seedCatalog(t, db)

	wa := &model.WarehouseApproval{
		ApprovalNumber:   "WA-1",
		QualityControlID: uuid.New(),
		WarehouseID:      warehouse.ID,
		CreatedBy:        uuid.New(),
		Status:           model.InspectionPending,
		Priority:         model.PriorityHigh,
		Products: []model.WALine{{
			ProductID:      product.ID,
			BatchNumber:    "B1",
			QCPassedQty:    10,
			ApprovalResult: model.ApprovalResultPending,
			ItemDetails:    []model.ItemDetail{{ItemID: "u-1", Status: model.ItemPending}},
		}},
	}
	require.NoError(t, repo.Create(ctx, wa))

	loaded, err := repo.FindByID(ctx, wa.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, 10, loaded.Products[0].QCPassedQty)
	assert.Equal(t, "u-1", loaded.Products[0].ItemDetails[0].ItemID)
	require.NotNil(t, loaded.Warehouse)
	assert.Equal(t, "WH-01", loaded.Warehouse.Code)

	list, total, err := repo.List(ctx, repository.InspectionFilter{Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestRunInTxRollsBackAndJoins(t *testing.T) {
	db := dbtest.Open(t)
	txm := repository.NewTransactionManager(db)
	audit := repository.NewAuditRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := txm.RunInTx(ctx, func(txCtx context.Context) error {
		require.True(t, repository.InTx(txCtx))
		require.NoError(t, audit.Log(txCtx, &model.AuditLog{Action: "a", EntityType: "t", Details: "{}"}))
		// nested call joins the outer transaction
		return txm.RunInTx(txCtx, func(inner context.Context) error {
			require.NoError(t, audit.Log(inner, &model.AuditLog{Action: "b", EntityType: "t", Details: "{}"}))
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	_, total, err := audit.List(ctx, repository.AuditFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestNotificationsMarkRead(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	batch := []model.Notification{
		{RecipientID: alice, Type: model.NotifyQCAssignment, ReferenceType: model.EntityQualityControl, ReferenceID: uuid.New(), Title: "t1"},
		{RecipientID: alice, Type: model.NotifyQCApproved, ReferenceType: model.EntityQualityControl, ReferenceID: uuid.New(), Title: "t2"},
		{RecipientID: bob, Type: model.NotifyQCAssignment, ReferenceType: model.EntityQualityControl, ReferenceID: uuid.New(), Title: "t3"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	assert.ErrorIs(t, repo.MarkRead(ctx, batch[0].ID, bob), apperror.ErrNotFound)
	require.NoError(t, repo.MarkRead(ctx, batch[0].ID, alice))

	unread, err := repo.CountUnread(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	n, err := repo.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, total, err := repo.ListForRecipient(ctx, bob, true, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "t3", list[0].Title)
}
