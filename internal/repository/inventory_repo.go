package repository

import (
	"context"

	"warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryFilter narrows inventory listings
type InventoryFilter struct {
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	BatchNumber string
	Status      string
	Page        int
	Limit       int // zero returns every match
}

type InventoryRepository interface {
	// UpsertStock adds rec's quantities to the (product, warehouse, batch) row or inserts it.
	UpsertStock(ctx context.Context, rec *model.InventoryRecord) error
	Create(ctx context.Context, rec *model.InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, error)
	FindByKey(ctx context.Context, productID, warehouseID uuid.UUID, batchNumber string) (*model.InventoryRecord, error)
	List(ctx context.Context, filter InventoryFilter) ([]model.InventoryRecord, int64, error)
	FindMovementByKey(ctx context.Context, postingKey string) (*model.InventoryMovement, error)
	CreateMovement(ctx context.Context, movement *model.InventoryMovement) error
	ListMovements(ctx context.Context, recordID uuid.UUID) ([]model.InventoryMovement, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) UpsertStock(ctx context.Context, rec *model.InventoryRecord) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}, {Name: "batch_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"current_stock":    gorm.Expr("inventory_records.current_stock + excluded.current_stock"),
			"available_stock":  gorm.Expr("inventory_records.available_stock + excluded.current_stock"),
			"expiry_date":      gorm.Expr("COALESCE(inventory_records.expiry_date, excluded.expiry_date)"),
			"storage_location": gorm.Expr("CASE WHEN excluded.storage_location <> '' THEN excluded.storage_location ELSE inventory_records.storage_location END"),
			"status":           gorm.Expr("CASE WHEN inventory_records.status = ? THEN ? ELSE inventory_records.status END", model.StockOutOfStock, model.StockAvailable),
			"last_received_at": gorm.Expr("excluded.last_received_at"),
			"updated_at":       gorm.Expr("excluded.updated_at"),
		}),
	}).Create(rec).Error
}

func (r *inventoryRepository) Create(ctx context.Context, rec *model.InventoryRecord) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Create(rec).Error, "inventory record")
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err, "inventory record")
	}
	return &rec, nil
}

func (r *inventoryRepository) FindByKey(ctx context.Context, productID, warehouseID uuid.UUID, batchNumber string) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	if err := GetDB(ctx, r.db).
		Where("product_id = ? AND warehouse_id = ? AND batch_number = ?", productID, warehouseID, batchNumber).
		First(&rec).Error; err != nil {
		return nil, translate(err, "inventory record")
	}
	return &rec, nil
}

func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]model.InventoryRecord, int64, error) {
	var records []model.InventoryRecord
	var total int64

	db := GetDB(ctx, r.db).Model(&model.InventoryRecord{})
	if filter.ProductID != nil {
		db = db.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		db = db.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.BatchNumber != "" {
		db = db.Where("batch_number = ?", filter.BatchNumber)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	fetch := db.Preload("Product").Preload("Warehouse").Order("expiry_date asc, batch_number asc")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		fetch = fetch.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := fetch.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *inventoryRepository) FindMovementByKey(ctx context.Context, postingKey string) (*model.InventoryMovement, error) {
	var movement model.InventoryMovement
	if err := GetDB(ctx, r.db).Where("posting_key = ?", postingKey).First(&movement).Error; err != nil {
		return nil, translate(err, "inventory movement")
	}
	return &movement, nil
}

func (r *inventoryRepository) CreateMovement(ctx context.Context, movement *model.InventoryMovement) error {
	return translate(GetDB(ctx, r.db).Create(movement).Error, "inventory movement")
}

func (r *inventoryRepository) ListMovements(ctx context.Context, recordID uuid.UUID) ([]model.InventoryMovement, error) {
	var movements []model.InventoryMovement
	if err := GetDB(ctx, r.db).Where("inventory_record_id = ?", recordID).Order("created_at asc").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
