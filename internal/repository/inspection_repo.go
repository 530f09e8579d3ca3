package repository

import (
	"context"

	"warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InspectionFilter narrows inspection record listings
type InspectionFilter struct {
	Status      string
	Priority    string
	AssignedTo  *uuid.UUID
	WarehouseID *uuid.UUID
	Page        int
	Limit       int
}

// InspectionRepository persists one stage of inspection records.
type InspectionRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, record *T) error
	// CountActiveBySource counts records of the source that are not rejected.
	CountActiveBySource(ctx context.Context, sourceID uuid.UUID) (int64, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	List(ctx context.Context, filter InspectionFilter) ([]T, int64, error)
}

type inspectionRepository[T any] struct {
	db           *gorm.DB
	entity       string
	sourceColumn string
	numberColumn string
	preloads     []string
}

type (
	QualityControlRepository    = InspectionRepository[model.QualityControl]
	WarehouseApprovalRepository = InspectionRepository[model.WarehouseApproval]
)

func NewQualityControlRepository(db *gorm.DB) QualityControlRepository {
	return &inspectionRepository[model.QualityControl]{
		db:           db,
		entity:       "quality control record",
		sourceColumn: "invoice_receiving_id",
		numberColumn: "qc_number",
		preloads:     []string{"InvoiceReceiving", "Warehouse", "Assignee"},
	}
}

func NewWarehouseApprovalRepository(db *gorm.DB) WarehouseApprovalRepository {
	return &inspectionRepository[model.WarehouseApproval]{
		db:           db,
		entity:       "warehouse approval record",
		sourceColumn: "quality_control_id",
		numberColumn: "approval_number",
		preloads:     []string{"QualityControl", "Warehouse", "Assignee"},
	}
}

func (r *inspectionRepository[T]) Create(ctx context.Context, record *T) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Create(record).Error, r.entity)
}

func (r *inspectionRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	db := GetDB(ctx, r.db)
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	return &record, nil
}

func (r *inspectionRepository[T]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := forUpdate(GetDB(ctx, r.db)).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	return &record, nil
}

// Save writes the whole record back; associations are never cascaded.
func (r *inspectionRepository[T]) Save(ctx context.Context, record *T) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Save(record).Error, r.entity)
}

func (r *inspectionRepository[T]) CountActiveBySource(ctx context.Context, sourceID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(new(T)).
		Where(r.sourceColumn+" = ? AND status <> ?", sourceID, model.InspectionRejected).
		Count(&count).Error
	return count, err
}

func (r *inspectionRepository[T]) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(new(T)).Where(r.numberColumn+" LIKE ?", prefix+"%").Count(&count).Error
	return count, err
}

func (r *inspectionRepository[T]) List(ctx context.Context, filter InspectionFilter) ([]T, int64, error) {
	var records []T
	var total int64

	db := GetDB(ctx, r.db).Model(new(T))
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != nil {
		db = db.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.WarehouseID != nil {
		db = db.Where("warehouse_id = ?", *filter.WarehouseID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	fetch := db
	for _, p := range r.preloads {
		fetch = fetch.Preload(p)
	}
	if err := fetch.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
