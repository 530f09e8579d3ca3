package service

import (
	"context"
	"encoding/json"

	"warehouse/internal/model"
	"warehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditEntry is one state change to be recorded.
type AuditEntry struct {
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	EntityName string
	Details    map[string]interface{}
}

// AuditRecorder appends audit entries. Recording never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entries ...AuditEntry)
}

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	AuditRecorder
	GetAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
	log  *logrus.Logger
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository, log *logrus.Logger) AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, entries ...AuditEntry) {
	for _, e := range entries {
		details := "{}"
		if len(e.Details) > 0 {
			raw, err := json.Marshal(e.Details)
			if err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"action":    e.Action,
					"entity_id": e.EntityID,
				}).Warn("failed to encode audit details")
			} else {
				details = string(raw)
			}
		}

		var actorID *uuid.UUID
		if e.ActorID != uuid.Nil {
			actorID = uuidPtr(e.ActorID)
		}

		entry := &model.AuditLog{
			UserID:     actorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			Details:    details,
		}
		if err := s.repo.Log(ctx, entry); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"action":      e.Action,
				"entity_type": e.EntityType,
				"entity_id":   e.EntityID,
			}).Warn("failed to write audit log")
		}
	}
}

// GetAuditLogs returns a page of audit entries with their actors
func (s *auditService) GetAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		username := "System"
		userID := ""
		if l.User != nil {
			username = l.User.Username
		}
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			UserID:     userID,
			Username:   username,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return res, total, nil
}
