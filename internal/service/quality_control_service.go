package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/metrics"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/workflow"
	"warehouse/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type QCLineInput struct {
	ProductID   string     `json:"product_id" binding:"required,uuid"`
	BatchNumber string     `json:"batch_number" binding:"required,max=100"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Unit        string     `json:"unit" binding:"max=30"`
	ReceivedQty int        `json:"received_qty" binding:"gt=0"`
}

// CreateQualityControlRequest opens an inspection of an invoice receiving.
// Products defaults to the invoice lines when empty.
type CreateQualityControlRequest struct {
	InvoiceReceivingID string        `json:"invoice_receiving_id" binding:"required,uuid"`
	AssignedTo         *string       `json:"assigned_to" binding:"omitempty,uuid"`
	Priority           string        `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate            *time.Time    `json:"due_date"`
	Products           []QCLineInput `json:"products" binding:"omitempty,dive"`
	GeneralRemarks     string        `json:"general_remarks" binding:"max=2000"`
}

// QCLinePatch updates the line with ProductID. BatchNumber is only needed
// when the product appears on more than one line.
type QCLinePatch struct {
	ProductID   string            `json:"product_id" binding:"required,uuid"`
	BatchNumber string            `json:"batch_number"`
	PassedQty   *int              `json:"passed_qty" binding:"omitempty,gte=0"`
	FailedQty   *int              `json:"failed_qty" binding:"omitempty,gte=0"`
	QCResult    string            `json:"qc_result" binding:"omitempty,oneof=pending passed failed"`
	ItemDetails []ItemDetailInput `json:"item_details" binding:"omitempty,dive"`
	Remarks     *string           `json:"remarks" binding:"omitempty,max=1000"`
}

type UpdateQualityControlRequest struct {
	Products       []QCLinePatch `json:"products" binding:"required,min=1,dive"`
	GeneralRemarks *string       `json:"general_remarks" binding:"omitempty,max=2000"`
}

type QualityControlService interface {
	Create(ctx context.Context, actor Actor, req CreateQualityControlRequest) (*model.QualityControl, error)
	Get(ctx context.Context, id string) (*model.QualityControl, error)
	List(ctx context.Context, filter repository.InspectionFilter) ([]model.QualityControl, int64, error)
	Actions(ctx context.Context, actor Actor, id string) ([]workflow.Action, error)
	UpdateLineResults(ctx context.Context, actor Actor, id string, req UpdateQualityControlRequest) (*model.QualityControl, error)
	Start(ctx context.Context, actor Actor, id string) (*model.QualityControl, error)
	Submit(ctx context.Context, actor Actor, id string, req SubmitRequest) (*model.QualityControl, error)
	Approve(ctx context.Context, actor Actor, id string, req ApproveRequest) (*model.QualityControl, error)
	Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (*model.QualityControl, error)
	Assign(ctx context.Context, actor Actor, id string, req AssignRequest) (*model.QualityControl, error)
	BulkAssign(ctx context.Context, actor Actor, req BulkAssignRequest) (*BulkAssignResult, error)
	Dashboard(ctx context.Context, actor Actor) (*Dashboard[model.QualityControl], error)
	Workload(ctx context.Context) ([]WorkloadEntry, error)
	Statistics(ctx context.Context, start, end time.Time) (*Statistics, error)
}

type qualityControlService struct {
	repo        repository.QualityControlRepository
	invoiceRepo repository.InvoiceReceivingRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	txManager   repository.TransactionManager
	audit       AuditRecorder
	notifier    Notifier
	stats       *inspectionStats
	log         *logrus.Logger
	validate    *validator.Validate
	now         func() time.Time
}

func NewQualityControlService(
	repo repository.QualityControlRepository,
	statsRepo repository.InspectionStatsRepository,
	invoiceRepo repository.InvoiceReceivingRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	audit AuditRecorder,
	notifier Notifier,
	log *logrus.Logger,
) QualityControlService {
	return &qualityControlService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		audit:       audit,
		notifier:    notifier,
		stats:       newInspectionStats(statsRepo),
		log:         log,
		validate:    newValidator(),
		now:         time.Now,
	}
}

func (s *qualityControlService) Create(ctx context.Context, actor Actor, req CreateQualityControlRequest) (*model.QualityControl, error) {
	if err := actor.require(model.PermQCCreate); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	invoiceID, err := parseID(req.InvoiceReceivingID, "invoice receiving")
	if err != nil {
		return nil, err
	}
	assignee, err := parseOptionalID(req.AssignedTo, "user")
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		assignee = uuidPtr(actor.UserID)
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	qc := &model.QualityControl{
		InvoiceReceivingID: invoiceID,
		AssignedTo:         assignee,
		CreatedBy:          actor.UserID,
		Status:             model.InspectionPending,
		Priority:           priority,
		DueDate:            req.DueDate,
		GeneralRemarks:     req.GeneralRemarks,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.invoiceRepo.FindByID(txCtx, invoiceID)
		if err != nil {
			return err
		}

		active, err := s.repo.CountActiveBySource(txCtx, invoiceID)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("invoice %s already has an active quality control record: %w", invoice.InvoiceNumber, apperror.ErrDuplicateRecord)
		}

		lines, err := s.buildLines(txCtx, invoice, req.Products)
		if err != nil {
			return err
		}
		if err := requireActiveUser(txCtx, s.userRepo, *assignee); err != nil {
			return err
		}

		number, err := nextNumber(txCtx, qualityControlStage.numberPrefix, s.now(), s.repo.CountByNumberPrefix)
		if err != nil {
			return err
		}

		qc.QCNumber = number
		qc.WarehouseID = invoice.WarehouseID
		qc.Products = lines
		if err := s.repo.Create(txCtx, qc); err != nil {
			return err
		}
		return s.invoiceRepo.UpdateQCStatus(txCtx, invoiceID, model.InvoiceQCInProgress)
	})
	if err != nil {
		return nil, err
	}

	st := qualityControlStage
	metrics.RecordTransition(st.entity, model.AuditVerbCreate)
	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.UserID,
		Action:     st.auditAction(model.AuditVerbCreate),
		EntityType: st.entity,
		EntityID:   qc.ID.String(),
		EntityName: qc.QCNumber,
		Details: map[string]interface{}{
			"invoice_receiving_id": qc.InvoiceReceivingID,
			"assigned_to":          qc.AssignedTo,
			"priority":             qc.Priority,
			"lines":                len(qc.Products),
		},
	})
	s.notifier.Dispatch(ctx, st.notification(st.notifyAssignment, *qc.AssignedTo, qc.ID, qc.QCNumber, "A new quality control inspection is waiting for you"))

	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) buildLines(ctx context.Context, invoice *model.InvoiceReceiving, inputs []QCLineInput) ([]model.QCLine, error) {
	var lines []model.QCLine
	if len(inputs) == 0 {
		for _, l := range invoice.Products {
			lines = append(lines, model.QCLine{
				ProductID:   l.ProductID,
				BatchNumber: l.BatchNumber,
				ExpiryDate:  l.ExpiryDate,
				Unit:        l.Unit,
				ReceivedQty: l.ReceivedQty,
				QCResult:    model.QCResultPending,
				ItemDetails: []model.ItemDetail{},
			})
		}
	} else {
		for _, in := range inputs {
			productID, err := parseID(in.ProductID, "product")
			if err != nil {
				return nil, err
			}
			lines = append(lines, model.QCLine{
				ProductID:   productID,
				BatchNumber: in.BatchNumber,
				ExpiryDate:  in.ExpiryDate,
				Unit:        in.Unit,
				ReceivedQty: in.ReceivedQty,
				QCResult:    model.QCResultPending,
				ItemDetails: []model.ItemDetail{},
			})
		}
	}
	if len(lines) == 0 {
		return nil, apperror.Validation("at least one product line is required")
	}

	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		key := l.ProductID.String() + "/" + l.BatchNumber
		if seen[key] {
			return nil, apperror.Validation("product %s batch %s is listed twice", l.ProductID, l.BatchNumber)
		}
		seen[key] = true
		ids = append(ids, l.ProductID)
	}
	if err := requireProducts(ctx, s.productRepo, ids); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *qualityControlService) Get(ctx context.Context, id string) (*model.QualityControl, error) {
	qcID, err := parseID(id, "quality control")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, qcID)
}

func (s *qualityControlService) List(ctx context.Context, filter repository.InspectionFilter) ([]model.QualityControl, int64, error) {
	return s.repo.List(ctx, filter)
}

// Actions lists the transitions the actor may take on the record right now.
func (s *qualityControlService) Actions(ctx context.Context, actor Actor, id string) ([]workflow.Action, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.Allowed(workflow.State(record.Status), qualityControlStage.roles(actor, record.AssignedTo)...), nil
}

// transition locks the record, checks the action against the state machine and
// saves whatever apply changed. It returns the saved record and its prior status.
func (s *qualityControlService) transition(
	ctx context.Context,
	actor Actor,
	id string,
	action workflow.Action,
	apply func(txCtx context.Context, qc *model.QualityControl) error,
) (*model.QualityControl, workflow.State, error) {
	qcID, err := parseID(id, "quality control")
	if err != nil {
		return nil, "", err
	}

	var saved *model.QualityControl
	var from workflow.State
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		qc, err := s.repo.FindByIDForUpdate(txCtx, qcID)
		if err != nil {
			return err
		}

		from = workflow.State(qc.Status)
		next, err := workflow.Next(from, action, qualityControlStage.roles(actor, qc.AssignedTo)...)
		if err != nil {
			return fmt.Errorf("quality control %s: %w", qc.QCNumber, err)
		}
		if err := apply(txCtx, qc); err != nil {
			return err
		}

		qc.Status = string(next)
		saved = qc
		return s.repo.Save(txCtx, qc)
	})
	if err != nil {
		return nil, from, err
	}

	metrics.RecordTransition(qualityControlStage.entity, string(action))
	return saved, from, nil
}

func (s *qualityControlService) UpdateLineResults(ctx context.Context, actor Actor, id string, req UpdateQualityControlRequest) (*model.QualityControl, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	qc, _, err := s.transition(ctx, actor, id, workflow.ActionUpdateLines, func(_ context.Context, qc *model.QualityControl) error {
		lines := make([]model.QCLine, len(qc.Products))
		copy(lines, qc.Products)

		for _, p := range req.Products {
			productID, err := parseID(p.ProductID, "product")
			if err != nil {
				return err
			}
			i, err := matchLine(len(lines), func(i int) (uuid.UUID, string) {
				return lines[i].ProductID, lines[i].BatchNumber
			}, productID, p.BatchNumber)
			if err != nil {
				return err
			}
			if err := applyQCPatch(&lines[i], p); err != nil {
				return err
			}
		}

		qc.Products = lines
		if req.GeneralRemarks != nil {
			qc.GeneralRemarks = *req.GeneralRemarks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, qc, model.AuditVerbUpdate, map[string]interface{}{"lines": len(req.Products)})
	return s.repo.FindByID(ctx, qc.ID)
}

func applyQCPatch(line *model.QCLine, p QCLinePatch) error {
	if p.PassedQty != nil {
		line.PassedQty = intPtr(*p.PassedQty)
	}
	if p.FailedQty != nil {
		line.FailedQty = *p.FailedQty
	}
	passed := 0
	if line.PassedQty != nil {
		passed = *line.PassedQty
	}
	if passed+line.FailedQty > line.ReceivedQty {
		return apperror.Validation("passed and failed quantities of product %s exceed the received %d", line.ProductID, line.ReceivedQty)
	}
	if p.QCResult != "" {
		line.QCResult = p.QCResult
	}
	if p.Remarks != nil {
		line.Remarks = *p.Remarks
	}
	if len(p.ItemDetails) > 0 {
		details, err := mergeItemDetails(line.ItemDetails, p.ItemDetails)
		if err != nil {
			return err
		}
		line.ItemDetails = details
	}
	return nil
}

func (s *qualityControlService) Start(ctx context.Context, actor Actor, id string) (*model.QualityControl, error) {
	qc, _, err := s.transition(ctx, actor, id, workflow.ActionStart, func(_ context.Context, qc *model.QualityControl) error {
		qc.StartedAt = timePtr(s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, qc, model.AuditVerbStart, nil)
	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) Submit(ctx context.Context, actor Actor, id string, req SubmitRequest) (*model.QualityControl, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	qc, from, err := s.transition(ctx, actor, id, workflow.ActionSubmit, func(_ context.Context, qc *model.QualityControl) error {
		qc.SubmittedAt = timePtr(s.now())
		qc.SubmittedBy = uuidPtr(actor.UserID)
		if req.GeneralRemarks != "" {
			qc.GeneralRemarks = req.GeneralRemarks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := qualityControlStage
	s.recordAudit(ctx, actor, qc, model.AuditVerbSubmit, map[string]interface{}{"from": from})
	s.notifier.Dispatch(ctx, st.notification(st.notifySubmitted, qc.CreatedBy, qc.ID, qc.QCNumber, "Inspection results are ready for review"))
	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) Approve(ctx context.Context, actor Actor, id string, req ApproveRequest) (*model.QualityControl, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	qc, _, err := s.transition(ctx, actor, id, workflow.ActionApprove, func(txCtx context.Context, qc *model.QualityControl) error {
		qc.ApprovedAt = timePtr(s.now())
		qc.ApprovedBy = uuidPtr(actor.UserID)
		qc.ApprovalRemarks = req.ApprovalRemarks
		return s.invoiceRepo.UpdateQCStatus(txCtx, qc.InvoiceReceivingID, model.InvoiceQCCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"qc_number":   qc.QCNumber,
		"approved_by": actor.UserID,
	}).Info("quality control approved")

	st := qualityControlStage
	s.recordAudit(ctx, actor, qc, model.AuditVerbApprove, map[string]interface{}{"approval_remarks": req.ApprovalRemarks})
	s.notifyOutcome(ctx, qc, st.notifyApproved, "Quality control was approved")
	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (*model.QualityControl, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	qc, _, err := s.transition(ctx, actor, id, workflow.ActionReject, func(txCtx context.Context, qc *model.QualityControl) error {
		qc.RejectedAt = timePtr(s.now())
		qc.RejectedBy = uuidPtr(actor.UserID)
		qc.RejectionReason = req.RejectionReason
		return s.invoiceRepo.UpdateQCStatus(txCtx, qc.InvoiceReceivingID, model.InvoiceQCRejected)
	})
	if err != nil {
		return nil, err
	}

	st := qualityControlStage
	s.recordAudit(ctx, actor, qc, model.AuditVerbReject, map[string]interface{}{"rejection_reason": req.RejectionReason})
	s.notifyOutcome(ctx, qc, st.notifyRejected, req.RejectionReason)
	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) Assign(ctx context.Context, actor Actor, id string, req AssignRequest) (*model.QualityControl, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	assigneeID, err := parseID(req.AssignedTo, "user")
	if err != nil {
		return nil, err
	}

	var previous *uuid.UUID
	qc, _, err := s.transition(ctx, actor, id, workflow.ActionAssign, func(txCtx context.Context, qc *model.QualityControl) error {
		if err := requireActiveUser(txCtx, s.userRepo, assigneeID); err != nil {
			return err
		}
		previous = qc.AssignedTo
		qc.AssignedTo = uuidPtr(assigneeID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := qualityControlStage
	s.recordAudit(ctx, actor, qc, model.AuditVerbAssign, map[string]interface{}{
		"previous_assignee": previous,
		"assigned_to":       assigneeID,
	})
	s.notifier.Dispatch(ctx, st.notification(st.notifyAssignment, assigneeID, qc.ID, qc.QCNumber, "A quality control inspection was assigned to you"))
	return s.repo.FindByID(ctx, qc.ID)
}

func (s *qualityControlService) BulkAssign(ctx context.Context, actor Actor, req BulkAssignRequest) (*BulkAssignResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := actor.require(model.PermQCAssign); err != nil {
		return nil, err
	}

	return bulkAssign(ctx, req.IDs, func(ctx context.Context, id string) error {
		_, err := s.Assign(ctx, actor, id, AssignRequest{AssignedTo: req.AssignedTo})
		return err
	}), nil
}

func (s *qualityControlService) Dashboard(ctx context.Context, actor Actor) (*Dashboard[model.QualityControl], error) {
	counts, err := s.stats.counts(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.List(ctx, repository.InspectionFilter{Page: 1, Limit: dashboardRecentLimit})
	if err != nil {
		return nil, err
	}
	return &Dashboard[model.QualityControl]{
		Total:        counts.total,
		ByStatus:     counts.byStatus,
		ByPriority:   counts.byPriority,
		AssignedToMe: counts.assignedToMe,
		Recent:       recent,
	}, nil
}

func (s *qualityControlService) Workload(ctx context.Context) ([]WorkloadEntry, error) {
	return s.stats.workload(ctx)
}

func (s *qualityControlService) Statistics(ctx context.Context, start, end time.Time) (*Statistics, error) {
	return s.stats.statistics(ctx, start, end)
}

func (s *qualityControlService) recordAudit(ctx context.Context, actor Actor, qc *model.QualityControl, verb string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["status"] = qc.Status
	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.UserID,
		Action:     qualityControlStage.auditAction(verb),
		EntityType: qualityControlStage.entity,
		EntityID:   qc.ID.String(),
		EntityName: qc.QCNumber,
		Details:    details,
	})
}

func (s *qualityControlService) notifyOutcome(ctx context.Context, qc *model.QualityControl, kind, message string) {
	var inputs []NotificationInput
	for _, r := range outcomeRecipients(qc.AssignedTo, qc.CreatedBy) {
		inputs = append(inputs, qualityControlStage.notification(kind, r, qc.ID, qc.QCNumber, message))
	}
	s.notifier.Dispatch(ctx, inputs...)
}

func requireActiveUser(ctx context.Context, users repository.UserRepository, id uuid.UUID) error {
	user, err := users.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.Validation("assignee %s does not exist", id)
	}
	if err != nil {
		return err
	}
	if !user.IsActive {
		return apperror.Validation("assignee %s is inactive", user.Username)
	}
	return nil
}

func requireProducts(ctx context.Context, products repository.ProductRepository, ids []uuid.UUID) error {
	existing, err := products.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !existing[id] {
			return apperror.Validation("product %s does not exist", id)
		}
	}
	return nil
}
