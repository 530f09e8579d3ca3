package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"
	"warehouse/pkg/pagination"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceReceivingHandler struct {
	invoiceService service.InvoiceReceivingService
}

func NewInvoiceReceivingHandler(invoiceService service.InvoiceReceivingService) *InvoiceReceivingHandler {
	return &InvoiceReceivingHandler{invoiceService: invoiceService}
}

func (h *InvoiceReceivingHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authenticator) {
	invoices := router.Group("/api/invoice-receiving")
	{
		invoices.GET("", auth.RequirePermission(model.PermInvoiceRead), h.ListInvoices)
		invoices.POST("", auth.RequirePermission(model.PermInvoiceCreate), h.CreateInvoice)
		invoices.GET("/:id", auth.RequirePermission(model.PermInvoiceRead), h.GetInvoice)
	}
}

// CreateInvoice records goods received against a supplier invoice
// @Summary      Create invoice receiving
// @Tags         invoice-receiving
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceReceivingRequest  true  "Received goods"
// @Success      201      {object}  response.Response{data=model.InvoiceReceiving}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoice-receiving [post]
func (h *InvoiceReceivingHandler) CreateInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.CreateInvoiceReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// ListInvoices
// @Summary      List invoice receivings
// @Tags         invoice-receiving
// @Security     BearerAuth
// @Produce      json
// @Param        qc_status  query  string  false  "pending, in_progress, completed, rejected"
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        limit      query  int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]model.InvoiceReceiving}
// @Router       /api/invoice-receiving [get]
func (h *InvoiceReceivingHandler) ListInvoices(c *gin.Context) {
	p := pagination.Parse(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), c.Query("qc_status"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	paged(c, http.StatusOK, invoices, p.Page, p.Limit, total)
}

// GetInvoice
// @Summary      Get invoice receiving
// @Tags         invoice-receiving
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice receiving ID"
// @Success      200  {object}  response.Response{data=model.InvoiceReceiving}
// @Failure      404  {object}  response.Response
// @Router       /api/invoice-receiving/{id} [get]
func (h *InvoiceReceivingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}
