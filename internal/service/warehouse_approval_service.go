package service

import (
	"context"
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

type WALineInput struct {
	ProductID       string     `json:"product_id" binding:"required,uuid"`
	BatchNumber     string     `json:"batch_number" binding:"required,max=100"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	Unit            string     `json:"unit" binding:"max=30"`
	QCPassedQty     int        `json:"qc_passed_qty" binding:"gt=0"`
	StorageLocation string     `json:"storage_location" binding:"max=100"`
}

// CreateWarehouseApprovalRequest opens a storage inspection of an approved
// quality control record. Products defaults to its passed lines when empty.
type CreateWarehouseApprovalRequest struct {
	QualityControlID string        `json:"quality_control_id" binding:"required,uuid"`
	AssignedTo       *string       `json:"assigned_to" binding:"omitempty,uuid"`
	Priority         string        `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate          *time.Time    `json:"due_date"`
	Products         []WALineInput `json:"products" binding:"omitempty,dive"`
	GeneralRemarks   string        `json:"general_remarks" binding:"max=2000"`
}

type WALinePatch struct {
	ProductID       string            `json:"product_id" binding:"required,uuid"`
	BatchNumber     string            `json:"batch_number"`
	ApprovedQty     *int              `json:"approved_qty" binding:"omitempty,gte=0"`
	StorageLocation *string           `json:"storage_location" binding:"omitempty,max=100"`
	ApprovalResult  string            `json:"approval_result" binding:"omitempty,oneof=pending approved rejected"`
	ItemDetails     []ItemDetailInput `json:"item_details" binding:"omitempty,dive"`
	Remarks         *string           `json:"remarks" binding:"omitempty,max=1000"`
}

type UpdateWarehouseApprovalRequest struct {
	Products       []WALinePatch `json:"products" binding:"required,min=1,dive"`
	GeneralRemarks *string       `json:"general_remarks" binding:"omitempty,max=2000"`
}

type WarehouseApprovalService interface {
	Create(ctx context.Context, actor Actor, req CreateWarehouseApprovalRequest) (*model.WarehouseApproval, error)
	Get(ctx context.Context, id string) (*model.WarehouseApproval, error)
	List(ctx context.Context, filter repository.InspectionFilter) ([]model.WarehouseApproval, int64, error)
	Actions(ctx context.Context, actor Actor, id string) ([]workflow.Action, error)
	UpdateLineResults(ctx context.Context, actor Actor, id string, req UpdateWarehouseApprovalRequest) (*model.WarehouseApproval, error)
	Start(ctx context.Context, actor Actor, id string) (*model.WarehouseApproval, error)
	Submit(ctx context.Context, actor Actor, id string, req SubmitRequest) (*model.WarehouseApproval, error)
	Approve(ctx context.Context, actor Actor, id string, req ApproveRequest) (*model.WarehouseApproval, error)
	Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (*model.WarehouseApproval, error)
	Assign(ctx context.Context, actor Actor, id string, req AssignRequest) (*model.WarehouseApproval, error)
	BulkAssign(ctx context.Context, actor Actor, req BulkAssignRequest) (*BulkAssignResult, error)
	Dashboard(ctx context.Context, actor Actor) (*Dashboard[model.WarehouseApproval], error)
	Workload(ctx context.Context) ([]WorkloadEntry, error)
	Statistics(ctx context.Context, start, end time.Time) (*Statistics, error)
}

type warehouseApprovalService struct {
	repo      repository.WarehouseApprovalRepository
	qcRepo    repository.QualityControlRepository
	userRepo  repository.UserRepository
	ledger    InventoryLedger
	txManager repository.TransactionManager
	audit     AuditRecorder
	notifier  Notifier
	stats     *inspectionStats
	log       *logrus.Logger
	validate  *validator.Validate
	now       func() time.Time
}

func NewWarehouseApprovalService(
	repo repository.WarehouseApprovalRepository,
	statsRepo repository.InspectionStatsRepository,
	qcRepo repository.QualityControlRepository,
	userRepo repository.UserRepository,
	ledger InventoryLedger,
	txManager repository.TransactionManager,
	audit AuditRecorder,
	notifier Notifier,
	log *logrus.Logger,
) WarehouseApprovalService {
	return &warehouseApprovalService{
		repo:      repo,
		qcRepo:    qcRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		txManager: txManager,
		audit:     audit,
		notifier:  notifier,
		stats:     newInspectionStats(statsRepo),
		log:       log,
		validate:  newValidator(),
		now:       time.Now,
	}
}

func (s *warehouseApprovalService) Create(ctx context.Context, actor Actor, req CreateWarehouseApprovalRequest) (*model.WarehouseApproval, error) {
	if err := actor.require(model.PermWACreate); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	qcID, err := parseID(req.QualityControlID, "quality control")
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

	wa := &model.WarehouseApproval{
		QualityControlID: qcID,
		AssignedTo:       assignee,
		CreatedBy:        actor.UserID,
		Status:           model.InspectionPending,
		Priority:         priority,
		DueDate:          req.DueDate,
		GeneralRemarks:   req.GeneralRemarks,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		qc, err := s.qcRepo.FindByID(txCtx, qcID)
		if err != nil {
			return err
		}
		if qc.Status != model.InspectionApproved {
			return fmt.Errorf("quality control %s is %s, not approved: %w", qc.QCNumber, qc.Status, apperror.ErrInvalidTransition)
		}

		active, err := s.repo.CountActiveBySource(txCtx, qcID)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("quality control %s already has an active warehouse approval: %w", qc.QCNumber, apperror.ErrDuplicateRecord)
		}

		lines, err := deriveWALines(qc, req.Products)
		if err != nil {
			return err
		}
		if err := requireActiveUser(txCtx, s.userRepo, *assignee); err != nil {
			return err
		}

		number, err := nextNumber(txCtx, warehouseApprovalStage.numberPrefix, s.now(), s.repo.CountByNumberPrefix)
		if err != nil {
			return err
		}

		wa.ApprovalNumber = number
		wa.WarehouseID = qc.WarehouseID
		wa.Products = lines
		return s.repo.Create(txCtx, wa)
	})
	if err != nil {
		return nil, err
	}

	st := warehouseApprovalStage
	metrics.RecordTransition(st.entity, model.AuditVerbCreate)
	s.recordAudit(ctx, actor, wa, model.AuditVerbCreate, map[string]interface{}{
		"quality_control_id": wa.QualityControlID,
		"assigned_to":        wa.AssignedTo,
		"priority":           wa.Priority,
		"lines":              len(wa.Products),
	})
	s.notifier.Dispatch(ctx, st.notification(st.notifyAssignment, *wa.AssignedTo, wa.ID, wa.ApprovalNumber, "Goods are waiting for storage approval"))

	return s.repo.FindByID(ctx, wa.ID)
}

// deriveWALines takes the passed QC lines, or checks explicit lines against them.
func deriveWALines(qc *model.QualityControl, inputs []WALineInput) ([]model.WALine, error) {
	var passed []model.QCLine
	for _, l := range qc.Products {
		if l.QCResult == model.QCResultPassed && l.PassedQuantity() > 0 {
			passed = append(passed, l)
		}
	}
	if len(passed) == 0 {
		return nil, apperror.Validation("quality control %s has no passed lines", qc.QCNumber)
	}

	if len(inputs) == 0 {
		lines := make([]model.WALine, 0, len(passed))
		for _, l := range passed {
			lines = append(lines, model.WALine{
				ProductID:      l.ProductID,
				BatchNumber:    l.BatchNumber,
				ExpiryDate:     l.ExpiryDate,
				Unit:           l.Unit,
				QCPassedQty:    l.PassedQuantity(),
				ApprovalResult: model.ApprovalResultPending,
				ItemDetails:    []model.ItemDetail{},
			})
		}
		return lines, nil
	}

	lines := make([]model.WALine, 0, len(inputs))
	seen := make(map[int]bool, len(inputs))
	for _, in := range inputs {
		productID, err := parseID(in.ProductID, "product")
		if err != nil {
			return nil, err
		}
		i, err := matchLine(len(passed), func(i int) (uuid.UUID, string) {
			return passed[i].ProductID, passed[i].BatchNumber
		}, productID, in.BatchNumber)
		if err != nil {
			return nil, err
		}
		if seen[i] {
			return nil, apperror.Validation("product %s batch %s is listed twice", productID, in.BatchNumber)
		}
		seen[i] = true
		if limit := passed[i].PassedQuantity(); in.QCPassedQty > limit {
			return nil, apperror.Validation("product %s batch %s passed only %d units", productID, in.BatchNumber, limit)
		}

		expiry := in.ExpiryDate
		if expiry == nil {
			expiry = passed[i].ExpiryDate
		}
		unit := in.Unit
		if unit == "" {
			unit = passed[i].Unit
		}
		lines = append(lines, model.WALine{
			ProductID:       productID,
			BatchNumber:     in.BatchNumber,
			ExpiryDate:      expiry,
			Unit:            unit,
			QCPassedQty:     in.QCPassedQty,
			StorageLocation: in.StorageLocation,
			ApprovalResult:  model.ApprovalResultPending,
			ItemDetails:     []model.ItemDetail{},
		})
	}
	return lines, nil
}

func (s *warehouseApprovalService) Get(ctx context.Context, id string) (*model.WarehouseApproval, error) {
	waID, err := parseID(id, "warehouse approval")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, waID)
}

func (s *warehouseApprovalService) List(ctx context.Context, filter repository.InspectionFilter) ([]model.WarehouseApproval, int64, error) {
	return s.repo.List(ctx, filter)
}

// Actions lists the transitions the actor may take on the record right now.
func (s *warehouseApprovalService) Actions(ctx context.Context, actor Actor, id string) ([]workflow.Action, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.Allowed(workflow.State(record.Status), warehouseApprovalStage.roles(actor, record.AssignedTo)...), nil
}

func (s *warehouseApprovalService) transition(
	ctx context.Context,
	actor Actor,
	id string,
	action workflow.Action,
	apply func(txCtx context.Context, wa *model.WarehouseApproval) error,
) (*model.WarehouseApproval, workflow.State, error) {
	waID, err := parseID(id, "warehouse approval")
	if err != nil {
		return nil, "", err
	}

	var saved *model.WarehouseApproval
	var from workflow.State
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		wa, err := s.repo.FindByIDForUpdate(txCtx, waID)
		if err != nil {
			return err
		}

		from = workflow.State(wa.Status)
		next, err := workflow.Next(from, action, warehouseApprovalStage.roles(actor, wa.AssignedTo)...)
		if err != nil {
			return fmt.Errorf("warehouse approval %s: %w", wa.ApprovalNumber, err)
		}
		if err := apply(txCtx, wa); err != nil {
			return err
		}

		wa.Status = string(next)
		saved = wa
		return s.repo.Save(txCtx, wa)
	})
	if err != nil {
		return nil, from, err
	}

	metrics.RecordTransition(warehouseApprovalStage.entity, string(action))
	return saved, from, nil
}

func (s *warehouseApprovalService) UpdateLineResults(ctx context.Context, actor Actor, id string, req UpdateWarehouseApprovalRequest) (*model.WarehouseApproval, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	wa, _, err := s.transition(ctx, actor, id, workflow.ActionUpdateLines, func(_ context.Context, wa *model.WarehouseApproval) error {
		lines := make([]model.WALine, len(wa.Products))
		copy(lines, wa.Products)

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
			if err := applyWAPatch(&lines[i], p); err != nil {
				return err
			}
		}

		wa.Products = lines
		if req.GeneralRemarks != nil {
			wa.GeneralRemarks = *req.GeneralRemarks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, wa, model.AuditVerbUpdate, map[string]interface{}{"lines": len(req.Products)})
	return s.repo.FindByID(ctx, wa.ID)
}

func applyWAPatch(line *model.WALine, p WALinePatch) error {
	if p.ApprovedQty != nil {
		if *p.ApprovedQty > line.QCPassedQty {
			return apperror.Validation("approved quantity of product %s exceeds the %d that passed quality control", line.ProductID, line.QCPassedQty)
		}
		line.ApprovedQty = intPtr(*p.ApprovedQty)
	}
	if p.StorageLocation != nil {
		line.StorageLocation = *p.StorageLocation
	}
	if p.ApprovalResult != "" {
		line.ApprovalResult = p.ApprovalResult
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

func (s *warehouseApprovalService) Start(ctx context.Context, actor Actor, id string) (*model.WarehouseApproval, error) {
	wa, _, err := s.transition(ctx, actor, id, workflow.ActionStart, func(_ context.Context, wa *model.WarehouseApproval) error {
		wa.StartedAt = timePtr(s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, wa, model.AuditVerbStart, nil)
	return s.repo.FindByID(ctx, wa.ID)
}

func (s *warehouseApprovalService) Submit(ctx context.Context, actor Actor, id string, req SubmitRequest) (*model.WarehouseApproval, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	wa, from, err := s.transition(ctx, actor, id, workflow.ActionSubmit, func(_ context.Context, wa *model.WarehouseApproval) error {
		wa.SubmittedAt = timePtr(s.now())
		wa.SubmittedBy = uuidPtr(actor.UserID)
		if req.GeneralRemarks != "" {
			wa.GeneralRemarks = req.GeneralRemarks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := warehouseApprovalStage
	s.recordAudit(ctx, actor, wa, model.AuditVerbSubmit, map[string]interface{}{"from": from})
	s.notifier.Dispatch(ctx, st.notification(st.notifySubmitted, wa.CreatedBy, wa.ID, wa.ApprovalNumber, "Storage inspection is ready for review"))
	return s.repo.FindByID(ctx, wa.ID)
}

type postedLine struct {
	index    int
	recordID uuid.UUID
	quantity int
	created  bool
}

// Approve posts every line that is not rejected into the inventory ledger in
// the same transaction. A posting failure aborts the approval.
func (s *warehouseApprovalService) Approve(ctx context.Context, actor Actor, id string, req ApproveRequest) (*model.WarehouseApproval, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var posted []postedLine
	wa, _, err := s.transition(ctx, actor, id, workflow.ActionApprove, func(txCtx context.Context, wa *model.WarehouseApproval) error {
		now := s.now()
		posted = posted[:0]
		for i := range wa.Products {
			line := &wa.Products[i]
			if line.ApprovalResult == model.ApprovalResultRejected || line.InventoryIntegrated {
				continue
			}
			qty := line.PostQuantity()
			if qty <= 0 {
				continue
			}

			res, err := s.ledger.Post(txCtx, PostStockInput{
				ProductID:       line.ProductID,
				WarehouseID:     wa.WarehouseID,
				BatchNumber:     line.BatchNumber,
				Quantity:        qty,
				Unit:            line.Unit,
				ExpiryDate:      line.ExpiryDate,
				StorageLocation: line.StorageLocation,
				PostingKey:      fmt.Sprintf("%s:%s:%d", warehouseApprovalStage.entity, wa.ID, i),
				ReferenceType:   warehouseApprovalStage.entity,
				ReferenceID:     uuidPtr(wa.ID),
				ActorID:         uuidPtr(actor.UserID),
			})
			if err != nil {
				return fmt.Errorf("failed to post line %d of %s: %w", i+1, wa.ApprovalNumber, err)
			}

			line.InventoryIntegrated = true
			line.InventoryIntegratedAt = &now
			line.InventoryRecordID = uuidPtr(res.Record.ID)
			posted = append(posted, postedLine{index: i, recordID: res.Record.ID, quantity: qty, created: res.Created})
		}

		wa.ApprovedAt = &now
		wa.ApprovedBy = uuidPtr(actor.UserID)
		wa.ApprovalRemarks = req.ApprovalRemarks
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"approval_number": wa.ApprovalNumber,
		"posted_lines":    len(posted),
		"approved_by":     actor.UserID,
	}).Info("warehouse approval posted to inventory")

	st := warehouseApprovalStage
	s.recordAudit(ctx, actor, wa, model.AuditVerbApprove, map[string]interface{}{
		"approval_remarks": req.ApprovalRemarks,
		"posted_lines":     len(posted),
	})
	for _, p := range posted {
		line := wa.Products[p.index]
		s.audit.Record(ctx, AuditEntry{
			ActorID:    actor.UserID,
			Action:     model.ActionInventoryPost,
			EntityType: model.EntityInventory,
			EntityID:   p.recordID.String(),
			EntityName: line.BatchNumber,
			Details: map[string]interface{}{
				"warehouse_approval_id": wa.ID,
				"product_id":            line.ProductID,
				"quantity":              p.quantity,
				"created":               p.created,
			},
		})
	}
	s.notifyOutcome(ctx, wa, st.notifyApproved, "Goods were approved and posted to inventory")
	return s.repo.FindByID(ctx, wa.ID)
}

func (s *warehouseApprovalService) Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (*model.WarehouseApproval, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	wa, _, err := s.transition(ctx, actor, id, workflow.ActionReject, func(_ context.Context, wa *model.WarehouseApproval) error {
		wa.RejectedAt = timePtr(s.now())
		wa.RejectedBy = uuidPtr(actor.UserID)
		wa.RejectionReason = req.RejectionReason
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := warehouseApprovalStage
	s.recordAudit(ctx, actor, wa, model.AuditVerbReject, map[string]interface{}{"rejection_reason": req.RejectionReason})
	s.notifyOutcome(ctx, wa, st.notifyRejected, req.RejectionReason)
	return s.repo.FindByID(ctx, wa.ID)
}

func (s *warehouseApprovalService) Assign(ctx context.Context, actor Actor, id string, req AssignRequest) (*model.WarehouseApproval, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	assigneeID, err := parseID(req.AssignedTo, "user")
	if err != nil {
		return nil, err
	}

	var previous *uuid.UUID
	wa, _, err := s.transition(ctx, actor, id, workflow.ActionAssign, func(txCtx context.Context, wa *model.WarehouseApproval) error {
		if err := requireActiveUser(txCtx, s.userRepo, assigneeID); err != nil {
			return err
		}
		previous = wa.AssignedTo
		wa.AssignedTo = uuidPtr(assigneeID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := warehouseApprovalStage
	s.recordAudit(ctx, actor, wa, model.AuditVerbAssign, map[string]interface{}{
		"previous_assignee": previous,
		"assigned_to":       assigneeID,
	})
	s.notifier.Dispatch(ctx, st.notification(st.notifyAssignment, assigneeID, wa.ID, wa.ApprovalNumber, "A storage inspection was assigned to you"))
	return s.repo.FindByID(ctx, wa.ID)
}

func (s *warehouseApprovalService) BulkAssign(ctx context.Context, actor Actor, req BulkAssignRequest) (*BulkAssignResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := actor.require(model.PermWAAssign); err != nil {
		return nil, err
	}

	return bulkAssign(ctx, req.IDs, func(ctx context.Context, id string) error {
		_, err := s.Assign(ctx, actor, id, AssignRequest{AssignedTo: req.AssignedTo})
		return err
	}), nil
}

func (s *warehouseApprovalService) Dashboard(ctx context.Context, actor Actor) (*Dashboard[model.WarehouseApproval], error) {
	counts, err := s.stats.counts(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.List(ctx, repository.InspectionFilter{Page: 1, Limit: dashboardRecentLimit})
	if err != nil {
		return nil, err
	}
	return &Dashboard[model.WarehouseApproval]{
		Total:        counts.total,
		ByStatus:     counts.byStatus,
		ByPriority:   counts.byPriority,
		AssignedToMe: counts.assignedToMe,
		Recent:       recent,
	}, nil
}

func (s *warehouseApprovalService) Workload(ctx context.Context) ([]WorkloadEntry, error) {
	return s.stats.workload(ctx)
}

func (s *warehouseApprovalService) Statistics(ctx context.Context, start, end time.Time) (*Statistics, error) {
	return s.stats.statistics(ctx, start, end)
}

func (s *warehouseApprovalService) recordAudit(ctx context.Context, actor Actor, wa *model.WarehouseApproval, verb string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["status"] = wa.Status
	s.audit.Record(ctx, AuditEntry{
		ActorID:    actor.UserID,
		Action:     warehouseApprovalStage.auditAction(verb),
		EntityType: warehouseApprovalStage.entity,
		EntityID:   wa.ID.String(),
		EntityName: wa.ApprovalNumber,
		Details:    details,
	})
}

func (s *warehouseApprovalService) notifyOutcome(ctx context.Context, wa *model.WarehouseApproval, kind, message string) {
	var inputs []NotificationInput
	for _, r := range outcomeRecipients(wa.AssignedTo, wa.CreatedBy) {
		inputs = append(inputs, warehouseApprovalStage.notification(kind, r, wa.ID, wa.ApprovalNumber, message))
	}
	s.notifier.Dispatch(ctx, inputs...)
}
