package handler

import (
	"fmt"
	"net/http"
	"time"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/pkg/pagination"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authenticator) {
	inventory := router.Group("/api/inventory")
	{
		inventory.GET("", auth.RequirePermission(model.PermInventoryRead), h.ListInventory)
		inventory.POST("", auth.RequirePermission(model.PermInventoryCreate), h.CreateInventory)
		inventory.GET("/export", auth.RequirePermission(model.PermInventoryExport), h.ExportInventory)
		inventory.GET("/:id", auth.RequirePermission(model.PermInventoryRead), h.GetInventory)
		inventory.GET("/:id/movements", auth.RequirePermission(model.PermInventoryRead), h.ListMovements)
	}
}

func inventoryFilter(c *gin.Context) (repository.InventoryFilter, error) {
	filter := repository.InventoryFilter{
		BatchNumber: c.Query("batch_number"),
		Status:      c.Query("status"),
	}
	var err error
	if filter.ProductID, err = optionalUUID(c, "product_id"); err != nil {
		return filter, fmt.Errorf("invalid product_id")
	}
	if filter.WarehouseID, err = optionalUUID(c, "warehouse_id"); err != nil {
		return filter, fmt.Errorf("invalid warehouse_id")
	}
	return filter, nil
}

// ListInventory handles retrieving paginated stock records
// @Summary      List inventory
// @Description  Retrieves stock records per product, warehouse and batch
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        product_id    query  string  false  "Product ID"
// @Param        warehouse_id  query  string  false  "Warehouse ID"
// @Param        batch_number  query  string  false  "Batch number"
// @Param        status        query  string  false  "available, out_of_stock"
// @Param        page          query  int     false  "Page number (default 1)"
// @Param        limit         query  int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]model.InventoryRecord}
// @Failure      400  {object}  response.Response
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	filter, err := inventoryFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	p := pagination.Parse(c)
	filter.Page, filter.Limit = p.Page, p.Limit

	records, total, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	paged(c, http.StatusOK, records, p.Page, p.Limit, total)
}

// GetInventory returns one stock record
// @Summary      Get inventory record
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Inventory record ID"
// @Success      200  {object}  response.Response{data=model.InventoryRecord}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	rec, err := h.inventoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// ListMovements returns the stock movements of one record in posting order
// @Summary      List inventory movements
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Inventory record ID"
// @Success      200  {object}  response.Response{data=[]model.InventoryMovement}
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	movements, err := h.inventoryService.Movements(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, movements))
}

// CreateInventory seeds a stock record outside the approval workflow
// @Summary      Create inventory record
// @Description  Seeds opening stock for a product batch
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInventoryRequest  true  "Inventory record"
// @Success      201      {object}  response.Response{data=model.InventoryRecord}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	rec, err := h.inventoryService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// ExportInventory streams matching stock records as an xlsx workbook
// @Summary      Export inventory
// @Tags         inventory
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_id  query  string  false  "Warehouse ID"
// @Param        status        query  string  false  "Status"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) ExportInventory(c *gin.Context) {
	filter, err := inventoryFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	data, err := h.inventoryService.Export(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
