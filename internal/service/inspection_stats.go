package service

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	defaultStatisticsWindow = 30 * 24 * time.Hour
	dashboardRecentLimit    = 5
)

type Dashboard[T any] struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByPriority   map[string]int64 `json:"by_priority"`
	AssignedToMe int64            `json:"assigned_to_me"`
	Recent       []T              `json:"recent"`
}

type WorkloadEntry struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Pending    int64  `json:"pending"`
	InProgress int64  `json:"in_progress"`
	Submitted  int64  `json:"submitted"`
	Total      int64  `json:"total"`
}

type Statistics struct {
	StartDate            time.Time        `json:"start_date"`
	EndDate              time.Time        `json:"end_date"`
	Created              int64            `json:"created"`
	Approved             int64            `json:"approved"`
	Rejected             int64            `json:"rejected"`
	Open                 int64            `json:"open"`
	ByStatus             map[string]int64 `json:"by_status"`
	ApprovalRate         float64          `json:"approval_rate"`
	AverageApprovalHours float64          `json:"average_approval_hours"`
}

// inspectionStats computes the read views of one stage. Concurrent identical
// queries share a single database round trip.
type inspectionStats struct {
	repo  repository.InspectionStatsRepository
	group singleflight.Group
	now   func() time.Time
}

func newInspectionStats(repo repository.InspectionStatsRepository) *inspectionStats {
	return &inspectionStats{repo: repo, now: time.Now}
}

type dashboardCounts struct {
	total        int64
	byStatus     map[string]int64
	byPriority   map[string]int64
	assignedToMe int64
}

func (s *inspectionStats) counts(ctx context.Context, userID uuid.UUID) (*dashboardCounts, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.repo.CountOpenAssignedTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &dashboardCounts{
		byStatus:     bucketMap(byStatus, model.InspectionPending, model.InspectionInProgress, model.InspectionSubmitted, model.InspectionApproved, model.InspectionRejected),
		byPriority:   bucketMap(byPriority, model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent),
		assignedToMe: mine,
	}
	for _, n := range out.byStatus {
		out.total += n
	}
	return out, nil
}

func bucketMap(rows []repository.GroupCount, keys ...string) map[string]int64 {
	m := make(map[string]int64, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	for _, r := range rows {
		m[r.Bucket] += r.Count
	}
	return m
}

func (s *inspectionStats) workload(ctx context.Context) ([]WorkloadEntry, error) {
	// Shared by every concurrent caller, so one caller's cancellation must not fail the rest.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("workload", func() (interface{}, error) {
		rows, err := s.repo.Workload(flightCtx)
		if err != nil {
			return nil, err
		}

		var entries []WorkloadEntry
		index := make(map[uuid.UUID]int)
		for _, r := range rows {
			i, ok := index[r.AssignedTo]
			if !ok {
				i = len(entries)
				index[r.AssignedTo] = i
				entries = append(entries, WorkloadEntry{
					UserID:   r.AssignedTo.String(),
					Username: r.Username,
					FullName: r.FullName,
				})
			}
			e := &entries[i]
			switch r.Status {
			case model.InspectionPending:
				e.Pending += r.Count
			case model.InspectionInProgress:
				e.InProgress += r.Count
			case model.InspectionSubmitted:
				e.Submitted += r.Count
			}
			e.Total += r.Count
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	entries := v.([]WorkloadEntry)
	out := make([]WorkloadEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *inspectionStats) statistics(ctx context.Context, start, end time.Time) (*Statistics, error) {
	if end.IsZero() {
		end = s.now()
	}
	if start.IsZero() {
		start = end.Add(-defaultStatisticsWindow)
	}
	if end.Before(start) {
		return nil, apperror.Validation("end_date must not be before start_date")
	}

	key := fmt.Sprintf("statistics:%d:%d", start.Unix(), end.Unix())
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		rows, err := s.repo.Timeline(flightCtx, start, end)
		if err != nil {
			return nil, err
		}

		stats := Statistics{
			StartDate: start,
			EndDate:   end,
			ByStatus:  bucketMap(nil, model.InspectionPending, model.InspectionInProgress, model.InspectionSubmitted, model.InspectionApproved, model.InspectionRejected),
		}
		var approvalHours float64
		var timed int64
		for _, r := range rows {
			stats.Created++
			stats.ByStatus[r.Status]++
			switch r.Status {
			case model.InspectionApproved:
				stats.Approved++
				if r.ApprovedAt != nil {
					approvalHours += r.ApprovedAt.Sub(r.CreatedAt).Hours()
					timed++
				}
			case model.InspectionRejected:
				stats.Rejected++
			default:
				stats.Open++
			}
		}

		if decided := stats.Approved + stats.Rejected; decided > 0 {
			stats.ApprovalRate = decimal.NewFromInt(stats.Approved * 100).
				Div(decimal.NewFromInt(decided)).Round(2).InexactFloat64()
		}
		if timed > 0 {
			stats.AverageApprovalHours = decimal.NewFromFloat(approvalHours).
				Div(decimal.NewFromInt(timed)).Round(2).InexactFloat64()
		}
		return &stats, nil
	})
	if err != nil {
		return nil, err
	}

	stats := *v.(*Statistics)
	stats.ByStatus = make(map[string]int64, len(v.(*Statistics).ByStatus))
	for k, n := range v.(*Statistics).ByStatus {
		stats.ByStatus[k] = n
	}
	return &stats, nil
}
