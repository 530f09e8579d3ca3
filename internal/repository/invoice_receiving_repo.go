package repository

import (
	"context"

	"warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceReceivingRepository interface {
	Create(ctx context.Context, invoice *model.InvoiceReceiving) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InvoiceReceiving, error)
	List(ctx context.Context, qcStatus string, page, limit int) ([]model.InvoiceReceiving, int64, error)
	UpdateQCStatus(ctx context.Context, id uuid.UUID, status string) error
}

type invoiceReceivingRepository struct {
	db *gorm.DB
}

func NewInvoiceReceivingRepository(db *gorm.DB) InvoiceReceivingRepository {
	return &invoiceReceivingRepository{db: db}
}

func (r *invoiceReceivingRepository) Create(ctx context.Context, invoice *model.InvoiceReceiving) error {
	return translate(GetDB(ctx, r.db).Create(invoice).Error, "invoice receiving")
}

func (r *invoiceReceivingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InvoiceReceiving, error) {
	var invoice model.InvoiceReceiving
	if err := GetDB(ctx, r.db).Preload("Supplier").Preload("Warehouse").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, translate(err, "invoice receiving")
	}
	return &invoice, nil
}

func (r *invoiceReceivingRepository) List(ctx context.Context, qcStatus string, page, limit int) ([]model.InvoiceReceiving, int64, error) {
	var invoices []model.InvoiceReceiving
	var total int64

	db := GetDB(ctx, r.db).Model(&model.InvoiceReceiving{})
	if qcStatus != "" {
		db = db.Where("qc_status = ?", qcStatus)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Supplier").Preload("Warehouse").
		Order("received_at desc").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceReceivingRepository) UpdateQCStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := GetDB(ctx, r.db).Model(&model.InvoiceReceiving{}).Where("id = ?", id).Update("qc_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "invoice receiving")
	}
	return nil
}
