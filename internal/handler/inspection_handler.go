package handler

import (
	"context"
	"net/http"
	"time"

	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/internal/workflow"
	"warehouse/pkg/pagination"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// inspectionService is the workflow surface shared by quality control and
// warehouse approval. T is the record, C the create request, U the line update request.
type inspectionService[T, C, U any] interface {
	Create(ctx context.Context, actor service.Actor, req C) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter repository.InspectionFilter) ([]T, int64, error)
	Actions(ctx context.Context, actor service.Actor, id string) ([]workflow.Action, error)
	UpdateLineResults(ctx context.Context, actor service.Actor, id string, req U) (*T, error)
	Start(ctx context.Context, actor service.Actor, id string) (*T, error)
	Submit(ctx context.Context, actor service.Actor, id string, req service.SubmitRequest) (*T, error)
	Approve(ctx context.Context, actor service.Actor, id string, req service.ApproveRequest) (*T, error)
	Reject(ctx context.Context, actor service.Actor, id string, req service.RejectRequest) (*T, error)
	Assign(ctx context.Context, actor service.Actor, id string, req service.AssignRequest) (*T, error)
	BulkAssign(ctx context.Context, actor service.Actor, req service.BulkAssignRequest) (*service.BulkAssignResult, error)
	Dashboard(ctx context.Context, actor service.Actor) (*service.Dashboard[T], error)
	Workload(ctx context.Context) ([]service.WorkloadEntry, error)
	Statistics(ctx context.Context, start, end time.Time) (*service.Statistics, error)
}

type inspectionRoutes[T, C, U any] struct {
	svc inspectionService[T, C, U]
}

func (r inspectionRoutes[T, C, U]) create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	record, err := r.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

func (r inspectionRoutes[T, C, U]) get(c *gin.Context) {
	record, err := r.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

func (r inspectionRoutes[T, C, U]) actions(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	actions, err := r.svc.Actions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if actions == nil {
		actions = []workflow.Action{}
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"actions": actions}))
}

func (r inspectionRoutes[T, C, U]) list(c *gin.Context) {
	p := pagination.Parse(c)
	filter := repository.InspectionFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     p.Page,
		Limit:    p.Limit,
	}
	var err error
	if filter.AssignedTo, err = optionalUUID(c, "assigned_to"); err != nil {
		badRequest(c, "Invalid assigned_to")
		return
	}
	if filter.WarehouseID, err = optionalUUID(c, "warehouse_id"); err != nil {
		badRequest(c, "Invalid warehouse_id")
		return
	}

	records, total, err := r.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	paged(c, http.StatusOK, records, p.Page, p.Limit, total)
}

func (r inspectionRoutes[T, C, U]) update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	record, err := r.svc.UpdateLineResults(c.Request.Context(), actor, c.Param("id"), req)
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) start(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	record, err := r.svc.Start(c.Request.Context(), actor, c.Param("id"))
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.SubmitRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	record, err := r.svc.Submit(c.Request.Context(), actor, c.Param("id"), req)
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) approve(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.ApproveRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	record, err := r.svc.Approve(c.Request.Context(), actor, c.Param("id"), req)
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) reject(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	record, err := r.svc.Reject(c.Request.Context(), actor, c.Param("id"), req)
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) assign(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	record, err := r.svc.Assign(c.Request.Context(), actor, c.Param("id"), req)
	r.respond(c, record, err)
}

func (r inspectionRoutes[T, C, U]) bulkAssign(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req service.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := r.svc.BulkAssign(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

func (r inspectionRoutes[T, C, U]) dashboard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	dash, err := r.svc.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dash))
}

func (r inspectionRoutes[T, C, U]) workload(c *gin.Context) {
	entries, err := r.svc.Workload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

func (r inspectionRoutes[T, C, U]) statistics(c *gin.Context) {
	start, err := optionalTime(c, "start_date")
	if err != nil {
		badRequest(c, "start_date must be RFC3339")
		return
	}
	end, err := optionalTime(c, "end_date")
	if err != nil {
		badRequest(c, "end_date must be RFC3339")
		return
	}

	stats, err := r.svc.Statistics(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

func (r inspectionRoutes[T, C, U]) respond(c *gin.Context, record *T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// bindOptionalJSON binds the body when one was sent.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTime(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
