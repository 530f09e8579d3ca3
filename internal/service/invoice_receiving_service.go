package service

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type InvoiceLineInput struct {
	ProductID   string     `json:"product_id" binding:"required,uuid"`
	BatchNumber string     `json:"batch_number" binding:"required,max=100"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Unit        string     `json:"unit" binding:"max=30"`
	ReceivedQty int        `json:"received_qty" binding:"gt=0"`
	UnitPrice   string     `json:"unit_price" binding:"omitempty,numeric"`
}

type CreateInvoiceReceivingRequest struct {
	InvoiceNumber string             `json:"invoice_number" binding:"required,max=100"`
	SupplierID    string             `json:"supplier_id" binding:"required,uuid"`
	WarehouseID   string             `json:"warehouse_id" binding:"required,uuid"`
	ReceivedAt    *time.Time         `json:"received_at"`
	Products      []InvoiceLineInput `json:"products" binding:"required,min=1,dive"`
	Notes         string             `json:"notes" binding:"max=2000"`
}

type InvoiceReceivingService interface {
	Create(ctx context.Context, actor Actor, req CreateInvoiceReceivingRequest) (*model.InvoiceReceiving, error)
	Get(ctx context.Context, id string) (*model.InvoiceReceiving, error)
	List(ctx context.Context, qcStatus string, page, limit int) ([]model.InvoiceReceiving, int64, error)
}

type invoiceReceivingService struct {
	repo          repository.InvoiceReceivingRepository
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	txManager     repository.TransactionManager
	audit         AuditRecorder
	validate      *validator.Validate
	now           func() time.Time
}

func NewInvoiceReceivingService(
	repo repository.InvoiceReceivingRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	txManager repository.TransactionManager,
	audit AuditRecorder,
) InvoiceReceivingService {
	return &invoiceReceivingService{
		repo:          repo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		txManager:     txManager,
		audit:         audit,
		validate:      newValidator(),
		now:           time.Now,
	}
}

func (s *invoiceReceivingService) Create(ctx context.Context, actor Actor, req CreateInvoiceReceivingRequest) (*model.InvoiceReceiving, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	supplierID, err := parseID(req.SupplierID, "supplier")
	if err != nil {
		return nil, err
	}
	warehouseID, err := parseID(req.WarehouseID, "warehouse")
	if err != nil {
		return nil, err
	}

	receivedAt := s.now()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	invoice := &model.InvoiceReceiving{
		InvoiceNumber: req.InvoiceNumber,
		SupplierID:    supplierID,
		WarehouseID:   warehouseID,
		ReceivedBy:    actor.UserID,
		ReceivedAt:    receivedAt,
		QCStatus:      model.InvoiceQCPending,
		Notes:         req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.supplierRepo.FindByID(txCtx, supplierID); err != nil {
			return err
		}
		if _, err := s.warehouseRepo.FindByID(txCtx, warehouseID); err != nil {
			return err
		}

		total := decimal.Zero
		lines := make([]model.InvoiceLine, 0, len(req.Products))
		seen := make(map[string]bool, len(req.Products))
		for _, in := range req.Products {
			productID, err := parseID(in.ProductID, "product")
			if err != nil {
				return err
			}
			key := productID.String() + "/" + in.BatchNumber
			if seen[key] {
				return apperror.Validation("product %s batch %s is listed twice", productID, in.BatchNumber)
			}
			seen[key] = true

			product, err := s.productRepo.FindByID(txCtx, productID)
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.Validation("product %s does not exist", productID)
			}
			if err != nil {
				return err
			}

			price := decimal.Zero
			if in.UnitPrice != "" {
				if price, err = decimal.NewFromString(in.UnitPrice); err != nil {
					return apperror.Validation("invalid unit_price %q", in.UnitPrice)
				}
			}
			unit := in.Unit
			if unit == "" {
				unit = product.Unit
			}

			lines = append(lines, model.InvoiceLine{
				ProductID:   productID,
				BatchNumber: in.BatchNumber,
				ExpiryDate:  in.ExpiryDate,
				Unit:        unit,
				ReceivedQty: in.ReceivedQty,
				UnitPrice:   price,
			})
			total = total.Add(price.Mul(decimal.NewFromInt(int64(in.ReceivedQty))))
		}

		invoice.Products = lines
		invoice.TotalAmount = total.Round(2)
		return s.repo.Create(txCtx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.UserID,
		Action:     model.ActionInvoiceReceive,
		EntityType: model.EntityInvoiceReceiving,
		EntityID:   invoice.ID.String(),
		EntityName: invoice.InvoiceNumber,
		Details: map[string]interface{}{
			"lines":        len(invoice.Products),
			"total_amount": invoice.TotalAmount.StringFixed(2),
		},
	})

	return s.repo.FindByID(ctx, invoice.ID)
}

func (s *invoiceReceivingService) Get(ctx context.Context, id string) (*model.InvoiceReceiving, error) {
	invoiceID, err := parseID(id, "invoice receiving")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, invoiceID)
}

func (s *invoiceReceivingService) List(ctx context.Context, qcStatus string, page, limit int) ([]model.InvoiceReceiving, int64, error) {
	return s.repo.List(ctx, qcStatus, page, limit)
}
