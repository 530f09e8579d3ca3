package service

import (
	"context"

	"warehouse/internal/model"
	"warehouse/internal/repository"

	"github.com/go-playground/validator/v10"
)

type CreateProductRequest struct {
	SKU          string `json:"sku" binding:"required,max=100"`
	Name         string `json:"name" binding:"required,max=255"`
	Unit         string `json:"unit" binding:"required,max=30"`
	Manufacturer string `json:"manufacturer" binding:"max=255"`
	Description  string `json:"description"`
}

type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required,max=50"`
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	TaxCode       string `json:"tax_code" binding:"max=50"`
	CompanyName   string `json:"company_name" binding:"max=255"`
	ContactPerson string `json:"contact_person" binding:"max=255"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
}

// CatalogService manages the reference data the workflow points at.
type CatalogService interface {
	ListProducts(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*model.Warehouse, error)
	ListSuppliers(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error)
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*model.Supplier, error)
}

type catalogService struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	validate      *validator.Validate
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		validate:      newValidator(),
	}
}

func (s *catalogService) ListProducts(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, page, limit, search)
}

func (s *catalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	product := &model.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Unit:         req.Unit,
		Manufacturer: req.Manufacturer,
		Description:  req.Description,
		IsActive:     true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	return s.warehouseRepo.List(ctx)
}

func (s *catalogService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*model.Warehouse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	warehouse := &model.Warehouse{Code: req.Code, Name: req.Name, Address: req.Address, IsActive: true}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *catalogService) ListSuppliers(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, search, page, limit)
}

func (s *catalogService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*model.Supplier, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	supplier := &model.Supplier{
		Name:          req.Name,
		TaxCode:       req.TaxCode,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}
