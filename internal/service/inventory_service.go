package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/metrics"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// PostStockInput is one stock receipt into a (product, warehouse, batch) key.
// A non-empty PostingKey makes the posting idempotent.
type PostStockInput struct {
	ProductID       uuid.UUID
	WarehouseID     uuid.UUID
	BatchNumber     string `binding:"required,max=100"`
	Quantity        int    `binding:"gt=0"`
	Unit            string
	ExpiryDate      *time.Time
	StorageLocation string `binding:"max=100"`
	PostingKey      string `binding:"max=150"`
	ReferenceType   string
	ReferenceID     *uuid.UUID
	ActorID         *uuid.UUID
}

type PostResult struct {
	Record        *model.InventoryRecord
	Created       bool
	AlreadyPosted bool
}

type CreateInventoryRequest struct {
	ProductID       string     `json:"product_id" binding:"required,uuid"`
	WarehouseID     string     `json:"warehouse_id" binding:"required,uuid"`
	BatchNumber     string     `json:"batch_number" binding:"required,max=100"`
	CurrentStock    int        `json:"current_stock" binding:"gte=0"`
	ReservedStock   int        `json:"reserved_stock" binding:"gte=0,ltefield=CurrentStock"`
	Unit            string     `json:"unit" binding:"max=30"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	StorageLocation string     `json:"storage_location" binding:"max=100"`
}

// InventoryLedger posts received stock.
type InventoryLedger interface {
	Post(ctx context.Context, in PostStockInput) (*PostResult, error)
}

type InventoryService interface {
	InventoryLedger
	List(ctx context.Context, filter repository.InventoryFilter) ([]model.InventoryRecord, int64, error)
	Get(ctx context.Context, id string) (*model.InventoryRecord, error)
	Movements(ctx context.Context, id string) ([]model.InventoryMovement, error)
	Create(ctx context.Context, actor Actor, req CreateInventoryRequest) (*model.InventoryRecord, error)
	Export(ctx context.Context, filter repository.InventoryFilter) ([]byte, error)
}

type inventoryService struct {
	repo          repository.InventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	txManager     repository.TransactionManager
	audit         AuditRecorder
	log           *logrus.Logger
	validate      *validator.Validate
	now           func() time.Time
}

func NewInventoryService(
	repo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	txManager repository.TransactionManager,
	audit AuditRecorder,
	log *logrus.Logger,
) InventoryService {
	return &inventoryService{
		repo:          repo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		txManager:     txManager,
		audit:         audit,
		log:           log,
		validate:      newValidator(),
		now:           time.Now,
	}
}

// Post increments the batch's current and available stock, creating the
// record when the key is new. Reserved stock is never touched. A posting key
// that was already used returns the existing record without changing it.
func (s *inventoryService) Post(ctx context.Context, in PostStockInput) (*PostResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if in.ProductID == uuid.Nil || in.WarehouseID == uuid.Nil {
		return nil, apperror.Validation("product and warehouse are required")
	}

	var result PostResult
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var key *string
		if in.PostingKey != "" {
			key = &in.PostingKey
			prev, err := s.repo.FindMovementByKey(txCtx, in.PostingKey)
			if err == nil {
				rec, err := s.repo.FindByID(txCtx, prev.InventoryRecordID)
				if err != nil {
					return err
				}
				result = PostResult{Record: rec, AlreadyPosted: true}
				return nil
			}
			if !errors.Is(err, apperror.ErrNotFound) {
				return err
			}
		}

		_, err := s.repo.FindByKey(txCtx, in.ProductID, in.WarehouseID, in.BatchNumber)
		created := errors.Is(err, apperror.ErrNotFound)
		if err != nil && !created {
			return err
		}

		now := s.now()
		if err := s.repo.UpsertStock(txCtx, &model.InventoryRecord{
			ProductID:       in.ProductID,
			WarehouseID:     in.WarehouseID,
			BatchNumber:     in.BatchNumber,
			CurrentStock:    in.Quantity,
			AvailableStock:  in.Quantity,
			Unit:            in.Unit,
			ExpiryDate:      in.ExpiryDate,
			Status:          model.StockAvailable,
			StorageLocation: in.StorageLocation,
			LastReceivedAt:  &now,
		}); err != nil {
			return fmt.Errorf("failed to post stock for batch %s: %w", in.BatchNumber, err)
		}

		stored, err := s.repo.FindByKey(txCtx, in.ProductID, in.WarehouseID, in.BatchNumber)
		if err != nil {
			return err
		}

		if err := s.repo.CreateMovement(txCtx, &model.InventoryMovement{
			InventoryRecordID: stored.ID,
			PostingKey:        key,
			MovementType:      model.MovementReceipt,
			Quantity:          in.Quantity,
			StockAfter:        stored.CurrentStock,
			ReferenceType:     in.ReferenceType,
			ReferenceID:       in.ReferenceID,
			CreatedBy:         in.ActorID,
		}); err != nil {
			return err
		}

		result = PostResult{Record: stored, Created: created}
		return nil
	})

	switch {
	case err != nil:
		metrics.RecordPosting("failed")
		return nil, err
	case result.AlreadyPosted:
		metrics.RecordPosting("duplicate")
	case result.Created:
		metrics.RecordPosting("created")
	default:
		metrics.RecordPosting("merged")
	}
	return &result, nil
}

func (s *inventoryService) List(ctx context.Context, filter repository.InventoryFilter) ([]model.InventoryRecord, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *inventoryService) Get(ctx context.Context, id string) (*model.InventoryRecord, error) {
	recordID, err := parseID(id, "inventory record")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, recordID)
}

func (s *inventoryService) Movements(ctx context.Context, id string) ([]model.InventoryMovement, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMovements(ctx, rec.ID)
}

// Create seeds a stock record directly, outside the approval workflow.
func (s *inventoryService) Create(ctx context.Context, actor Actor, req CreateInventoryRequest) (*model.InventoryRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	productID, _ := uuid.Parse(req.ProductID)
	warehouseID, _ := uuid.Parse(req.WarehouseID)

	status := model.StockAvailable
	if req.CurrentStock == 0 {
		status = model.StockOutOfStock
	}
	rec := &model.InventoryRecord{
		ProductID:       productID,
		WarehouseID:     warehouseID,
		BatchNumber:     req.BatchNumber,
		CurrentStock:    req.CurrentStock,
		ReservedStock:   req.ReservedStock,
		AvailableStock:  req.CurrentStock - req.ReservedStock,
		Unit:            req.Unit,
		ExpiryDate:      req.ExpiryDate,
		Status:          status,
		StorageLocation: req.StorageLocation,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByID(txCtx, productID)
		if err != nil {
			return err
		}
		if _, err := s.warehouseRepo.FindByID(txCtx, warehouseID); err != nil {
			return err
		}
		if rec.Unit == "" {
			rec.Unit = product.Unit
		}
		if err := s.repo.Create(txCtx, rec); err != nil {
			return err
		}
		return s.repo.CreateMovement(txCtx, &model.InventoryMovement{
			InventoryRecordID: rec.ID,
			MovementType:      model.MovementManual,
			Quantity:          rec.CurrentStock,
			StockAfter:        rec.CurrentStock,
			CreatedBy:         uuidPtr(actor.UserID),
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.UserID,
		Action:     model.ActionInventoryCreate,
		EntityType: model.EntityInventory,
		EntityID:   rec.ID.String(),
		EntityName: rec.BatchNumber,
		Details: map[string]interface{}{
			"product_id":    rec.ProductID,
			"warehouse_id":  rec.WarehouseID,
			"current_stock": rec.CurrentStock,
		},
	})

	return s.repo.FindByID(ctx, rec.ID)
}

var exportHeader = []interface{}{
	"SKU", "Product", "Warehouse", "Batch", "Expiry date", "Current stock",
	"Reserved stock", "Available stock", "Unit", "Status", "Storage location",
}

// Export renders every matching inventory record as an xlsx workbook.
func (s *inventoryService) Export(ctx context.Context, filter repository.InventoryFilter) ([]byte, error) {
	filter.Limit = 0
	records, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.WithError(err).Warn("failed to close inventory workbook")
		}
	}()

	const sheet = "Inventory"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, rec := range records {
		var sku, productName, warehouseName, expiry string
		if rec.Product != nil {
			sku, productName = rec.Product.SKU, rec.Product.Name
		}
		if rec.Warehouse != nil {
			warehouseName = rec.Warehouse.Name
		}
		if rec.ExpiryDate != nil {
			expiry = rec.ExpiryDate.Format("2006-01-02")
		}
		row := []interface{}{
			sku, productName, warehouseName, rec.BatchNumber, expiry, rec.CurrentStock,
			rec.ReservedStock, rec.AvailableStock, rec.Unit, rec.Status, rec.StorageLocation,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write inventory workbook: %w", err)
	}
	return buf.Bytes(), nil
}
