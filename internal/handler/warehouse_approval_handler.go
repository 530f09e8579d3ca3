package handler

import (
	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type WarehouseApprovalHandler struct {
	routes inspectionRoutes[model.WarehouseApproval, service.CreateWarehouseApprovalRequest, service.UpdateWarehouseApprovalRequest]
}

func NewWarehouseApprovalHandler(waService service.WarehouseApprovalService) *WarehouseApprovalHandler {
	return &WarehouseApprovalHandler{routes: inspectionRoutes[model.WarehouseApproval, service.CreateWarehouseApprovalRequest, service.UpdateWarehouseApprovalRequest]{svc: waService}}
}

// RegisterRoutes mounts the warehouse approval endpoints. Transitions only require read
// access here; the workflow decides per record whether the caller may act.
func (h *WarehouseApprovalHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authenticator) {
	group := router.Group("/api/warehouse-approval")
	{
		group.GET("", auth.RequirePermission(model.PermWARead), h.List)
		group.POST("", auth.RequirePermission(model.PermWACreate), h.Create)
		group.POST("/bulk-assign", auth.RequirePermission(model.PermWAAssign), h.BulkAssign)
		group.GET("/dashboard", auth.RequirePermission(model.PermWARead), h.Dashboard)
		group.GET("/workload", auth.RequirePermission(model.PermWARead), h.Workload)
		group.GET("/statistics", auth.RequirePermission(model.PermWARead), h.Statistics)
		group.GET("/:id", auth.RequirePermission(model.PermWARead), h.Get)
		group.GET("/:id/actions", auth.RequirePermission(model.PermWARead), h.Actions)
		group.PUT("/:id", auth.RequirePermission(model.PermWARead), h.Update)
		group.POST("/:id/start", auth.RequirePermission(model.PermWARead), h.Start)
		group.POST("/:id/submit", auth.RequirePermission(model.PermWARead), h.Submit)
		group.POST("/:id/approve", auth.RequirePermission(model.PermWAApprove), h.Approve)
		group.POST("/:id/reject", auth.RequirePermission(model.PermWAApprove), h.Reject)
		group.POST("/:id/assign", auth.RequirePermission(model.PermWAAssign), h.Assign)
	}
}

// List handles GET /api/warehouse-approval
// @Summary      List warehouse approvals
// @Description  Paginated warehouse approvals filtered by status, priority, assignee and warehouse
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Param        status    query     string  false  "Status"
// @Param        priority  query     string  false  "Priority"
// @Param        assigned_to  query  string  false  "Assignee user ID"
// @Param        warehouse_id query  string  false  "Warehouse ID"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Router       /api/warehouse-approval [get]
func (h *WarehouseApprovalHandler) List(c *gin.Context) { h.routes.list(c) }

// Create handles POST /api/warehouse-approval
// @Summary      Create warehouse approval
// @Description  Creates a pending warehouse approval; the assignee defaults to the caller
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateWarehouseApprovalRequest  true  "Create payload"
// @Success      201  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval [post]
func (h *WarehouseApprovalHandler) Create(c *gin.Context) { h.routes.create(c) }

// Get handles GET /api/warehouse-approval/{id}
// @Summary      Get warehouse approval
// @Description  Returns one warehouse approval with its lines
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id} [get]
func (h *WarehouseApprovalHandler) Get(c *gin.Context) { h.routes.get(c) }

// Update handles PUT /api/warehouse-approval/{id}
// @Summary      Record line results
// @Description  Updates line results and item details while the record is pending or in progress
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.UpdateWarehouseApprovalRequest  true  "Line results"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id} [put]
func (h *WarehouseApprovalHandler) Update(c *gin.Context) { h.routes.update(c) }

// Start handles POST /api/warehouse-approval/{id}/start
// @Summary      Start warehouse approval
// @Description  Moves a pending record to in_progress; assignee only
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/start [post]
func (h *WarehouseApprovalHandler) Start(c *gin.Context) { h.routes.start(c) }

// Submit handles POST /api/warehouse-approval/{id}/submit
// @Summary      Submit warehouse approval
// @Description  Submits the record for approval; assignee only
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.SubmitRequest  false  "Remarks"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/submit [post]
func (h *WarehouseApprovalHandler) Submit(c *gin.Context) { h.routes.submit(c) }

// Approve handles POST /api/warehouse-approval/{id}/approve
// @Summary      Approve warehouse approval
// @Description  Approves a submitted record
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.ApproveRequest  false  "Remarks"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/approve [post]
func (h *WarehouseApprovalHandler) Approve(c *gin.Context) { h.routes.approve(c) }

// Reject handles POST /api/warehouse-approval/{id}/reject
// @Summary      Reject warehouse approval
// @Description  Rejects a submitted record with a reason
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.RejectRequest  true  "Reason"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/reject [post]
func (h *WarehouseApprovalHandler) Reject(c *gin.Context) { h.routes.reject(c) }

// Assign handles POST /api/warehouse-approval/{id}/assign
// @Summary      Assign warehouse approval
// @Description  Reassigns an open record
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Param        payload  body  service.AssignRequest  true  "Assignee"
// @Success      200  {object}  response.Response{data=model.WarehouseApproval}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/assign [post]
func (h *WarehouseApprovalHandler) Assign(c *gin.Context) { h.routes.assign(c) }

// BulkAssign handles POST /api/warehouse-approval/bulk-assign
// @Summary      Bulk assign warehouse approvals
// @Description  Assigns each record independently and reports per-record outcomes
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.BulkAssignRequest  true  "Records and assignee"
// @Success      200  {object}  response.Response{data=service.BulkAssignResult}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/warehouse-approval/bulk-assign [post]
func (h *WarehouseApprovalHandler) BulkAssign(c *gin.Context) { h.routes.bulkAssign(c) }

// Dashboard handles GET /api/warehouse-approval/dashboard
// @Summary      Warehouse approval dashboard
// @Description  Counts per status and priority, the caller's open work and the latest records
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/warehouse-approval/dashboard [get]
func (h *WarehouseApprovalHandler) Dashboard(c *gin.Context) { h.routes.dashboard(c) }

// Workload handles GET /api/warehouse-approval/workload
// @Summary      Warehouse approval workload
// @Description  Open records per assignee split by status
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.WorkloadEntry}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/warehouse-approval/workload [get]
func (h *WarehouseApprovalHandler) Workload(c *gin.Context) { h.routes.workload(c) }

// Statistics handles GET /api/warehouse-approval/statistics
// @Summary      Warehouse approval statistics
// @Description  Created, approved and rejected totals with approval rate for a period (default last 30 days)
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query  string  false  "RFC3339 start"
// @Param        end_date    query  string  false  "RFC3339 end"
// @Success      200  {object}  response.Response{data=service.Statistics}
// @Failure      400  {object}  response.Response
// @Router       /api/warehouse-approval/statistics [get]
func (h *WarehouseApprovalHandler) Statistics(c *gin.Context) { h.routes.statistics(c) }

// Actions handles GET /api/warehouse-approval/{id}/actions
// @Summary      Allowed transitions
// @Description  Lists the workflow actions the caller may take on the warehouse approval in its current status
// @Tags         warehouse-approval
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse-approval/{id}/actions [get]
func (h *WarehouseApprovalHandler) Actions(c *gin.Context) { h.routes.actions(c) }
