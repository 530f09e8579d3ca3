package handler

import (
	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type QualityControlHandler struct {
	routes inspectionRoutes[model.QualityControl, service.CreateQualityControlRequest, service.UpdateQualityControlRequest]
}

func NewQualityControlHandler(qcService service.QualityControlService) *QualityControlHandler {
	return &QualityControlHandler{routes: inspectionRoutes[model.QualityControl, service.CreateQualityControlRequest, service.UpdateQualityControlRequest]{svc: qcService}}
}

// RegisterRoutes mounts the quality control inspection endpoints. Transitions only require read
// access here; the workflow decides per record whether the caller may act.
func (h *QualityControlHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authenticator) {
	group := router.Group("/api/quality-control")
	{
		group.GET("", auth.RequirePermission(model.PermQCRead), h.List)
		group.POST("", auth.RequirePermission(model.PermQCCreate), h.Create)
		group.POST("/bulk-assign", auth.RequirePermission(model.PermQCAssign), h.BulkAssign)
		group.GET("/dashboard", auth.RequirePermission(model.PermQCRead), h.Dashboard)
		group.GET("/workload", auth.RequirePermission(model.PermQCRead), h.Workload)
		group.GET("/statistics", auth.RequirePermission(model.PermQCRead), h.Statistics)
		group.GET("/:id", auth.RequirePermission(model.PermQCRead), h.Get)
		group.GET("/:id/actions", auth.RequirePermission(model.PermQCRead), h.Actions)
		group.PUT("/:id", auth.RequirePermission(model.PermQCRead), h.Update)
		group.POST("/:id/start", auth.RequirePermission(model.PermQCRead), h.Start)
		group.POST("/:id/submit", auth.RequirePermission(model.PermQCRead), h.Submit)
		group.POST("/:id/approve", auth.RequirePermission(model.PermQCApprove), h.Approve)
		group.POST("/:id/reject", auth.RequirePermission(model.PermQCApprove), h.Reject)
		group.POST("/:id/assign", auth.RequirePermission(model.PermQCAssign), h.Assign)
	}
}

// List handles GET /api/quality-control
// @Summary      List QC inspections
// @Description  Paginated QC inspections filtered by status, priority, assignee and warehouse
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Param        status    query     string  false  "Status"
// @Param        priority  query     string  false  "Priority"
// @Param        assigned_to  query  string  false  "Assignee user ID"
// @Param        warehouse_id query  string  false  "Warehouse ID"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]model.QualityControl}
// @Failure      400  {object}  response.Response
// @Router       /api/quality-control [get]
func (h *QualityControlHandler) List(c *gin.Context) { h.routes.list(c) }

// Create handles POST /api/quality-control
// @Summary      Create QC inspection
// @Description  Creates a pending QC inspection; the assignee defaults to the caller
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateQualityControlRequest  true  "Create payload"
// @Success      201  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control [post]
func (h *QualityControlHandler) Create(c *gin.Context) { h.routes.create(c) }

// Get handles GET /api/quality-control/{id}
// @Summary      Get QC inspection
// @Description  Returns one QC inspection with its lines
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id} [get]
func (h *QualityControlHandler) Get(c *gin.Context) { h.routes.get(c) }

// Update handles PUT /api/quality-control/{id}
// @Summary      Record line results
// @Description  Updates line results and item details while the record is pending or in progress
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.UpdateQualityControlRequest  true  "Line results"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id} [put]
func (h *QualityControlHandler) Update(c *gin.Context) { h.routes.update(c) }

// Start handles POST /api/quality-control/{id}/start
// @Summary      Start QC inspection
// @Description  Moves a pending record to in_progress; assignee only
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/start [post]
func (h *QualityControlHandler) Start(c *gin.Context) { h.routes.start(c) }

// Submit handles POST /api/quality-control/{id}/submit
// @Summary      Submit QC inspection
// @Description  Submits the record for approval; assignee only
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.SubmitRequest  false  "Remarks"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/submit [post]
func (h *QualityControlHandler) Submit(c *gin.Context) { h.routes.submit(c) }

// Approve handles POST /api/quality-control/{id}/approve
// @Summary      Approve QC inspection
// @Description  Approves a submitted record
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.ApproveRequest  false  "Remarks"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/approve [post]
func (h *QualityControlHandler) Approve(c *gin.Context) { h.routes.approve(c) }

// Reject handles POST /api/quality-control/{id}/reject
// @Summary      Reject QC inspection
// @Description  Rejects a submitted record with a reason
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.RejectRequest  true  "Reason"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/reject [post]
func (h *QualityControlHandler) Reject(c *gin.Context) { h.routes.reject(c) }

// Assign handles POST /api/quality-control/{id}/assign
// @Summary      Assign QC inspection
// @Description  Reassigns an open record
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.AssignRequest  true  "Assignee"
// @Success      200  {object}  response.Response{data=model.QualityControl}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/assign [post]
func (h *QualityControlHandler) Assign(c *gin.Context) { h.routes.assign(c) }

// BulkAssign handles POST /api/quality-control/bulk-assign
// @Summary      Bulk assign QC inspections
// @Description  Assigns each record independently and reports per-record outcomes
// @Tags         quality-control
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.BulkAssignRequest  true  "Records and assignee"
// @Success      200  {object}  response.Response{data=service.BulkAssignResult}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/quality-control/bulk-assign [post]
func (h *QualityControlHandler) BulkAssign(c *gin.Context) { h.routes.bulkAssign(c) }

// Dashboard handles GET /api/quality-control/dashboard
// @Summary      QC dashboard
// @Description  Counts per status and priority, the caller's open work and the latest records
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/quality-control/dashboard [get]
func (h *QualityControlHandler) Dashboard(c *gin.Context) { h.routes.dashboard(c) }

// Workload handles GET /api/quality-control/workload
// @Summary      QC workload
// @Description  Open records per assignee split by status
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.WorkloadEntry}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/quality-control/workload [get]
func (h *QualityControlHandler) Workload(c *gin.Context) { h.routes.workload(c) }

// Statistics handles GET /api/quality-control/statistics
// @Summary      QC statistics
// @Description  Created, approved and rejected totals with approval rate for a period (default last 30 days)
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query  string  false  "RFC3339 start"
// @Param        end_date    query  string  false  "RFC3339 end"
// @Success      200  {object}  response.Response{data=service.Statistics}
// @Failure      400  {object}  response.Response
// @Router       /api/quality-control/statistics [get]
func (h *QualityControlHandler) Statistics(c *gin.Context) { h.routes.statistics(c) }

// Actions handles GET /api/quality-control/{id}/actions
// @Summary      Allowed transitions
// @Description  Lists the workflow actions the caller may take on the QC inspection in its current status
// @Tags         quality-control
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/quality-control/{id}/actions [get]
func (h *QualityControlHandler) Actions(c *gin.Context) { h.routes.actions(c) }
