package repository

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupCount is one row of a GROUP BY count
type GroupCount struct {
	Bucket string
	Count  int64
}

// WorkloadRow is the number of records per assignee and status
type WorkloadRow struct {
	AssignedTo uuid.UUID
	Username   string
	FullName   string
	Status     string
	Count      int64
}

// TimelineRow carries the timestamps needed for turnaround statistics
type TimelineRow struct {
	Status     string
	CreatedAt  time.Time
	ApprovedAt *time.Time
	RejectedAt *time.Time
}

// InspectionStatsRepository runs read-only aggregations over one inspection table.
type InspectionStatsRepository interface {
	CountByStatus(ctx context.Context) ([]GroupCount, error)
	CountByPriority(ctx context.Context) ([]GroupCount, error)
	CountOpenAssignedTo(ctx context.Context, userID uuid.UUID) (int64, error)
	Workload(ctx context.Context) ([]WorkloadRow, error)
	Timeline(ctx context.Context, start, end time.Time) ([]TimelineRow, error)
}

type inspectionStatsRepository struct {
	db    *gorm.DB
	table string
}

func NewQualityControlStatsRepository(db *gorm.DB) InspectionStatsRepository {
	return &inspectionStatsRepository{db: db, table: model.QualityControl{}.TableName()}
}

func NewWarehouseApprovalStatsRepository(db *gorm.DB) InspectionStatsRepository {
	return &inspectionStatsRepository{db: db, table: model.WarehouseApproval{}.TableName()}
}

var openStatuses = []string{model.InspectionPending, model.InspectionInProgress, model.InspectionSubmitted}

func (r *inspectionStatsRepository) countBy(ctx context.Context, column string) ([]GroupCount, error) {
	var rows []GroupCount
	if err := r.db.WithContext(ctx).Table(r.table).
		Select(column + " as bucket, COUNT(*) as count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count %s by %s: %w", r.table, column, err)
	}
	return rows, nil
}

func (r *inspectionStatsRepository) CountByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.countBy(ctx, "status")
}

func (r *inspectionStatsRepository) CountByPriority(ctx context.Context) ([]GroupCount, error) {
	return r.countBy(ctx, "priority")
}

func (r *inspectionStatsRepository) CountOpenAssignedTo(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.table).
		Where("assigned_to = ? AND status IN ?", userID, openStatuses).
		Count(&count).Error
	return count, err
}

func (r *inspectionStatsRepository) Workload(ctx context.Context) ([]WorkloadRow, error) {
	var rows []WorkloadRow
	t := r.table
	if err := r.db.WithContext(ctx).Table(t).
		Select(t+".assigned_to as assigned_to, users.username as username, users.full_name as full_name, "+t+".status as status, COUNT(*) as count").
		Joins("JOIN users ON users.id = "+t+".assigned_to").
		Where(t+".assigned_to IS NOT NULL AND "+t+".status IN ?", openStatuses).
		Group(t + ".assigned_to, users.username, users.full_name, " + t + ".status").
		Order("users.username asc").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query workload: %w", err)
	}
	return rows, nil
}

func (r *inspectionStatsRepository) Timeline(ctx context.Context, start, end time.Time) ([]TimelineRow, error) {
	var rows []TimelineRow
	if err := r.db.WithContext(ctx).Table(r.table).
		Select("status, created_at, approved_at, rejected_at").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query timeline: %w", err)
	}
	return rows, nil
}
