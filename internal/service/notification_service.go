package service

import (
	"context"

	"warehouse/internal/metrics"
	"warehouse/internal/model"
	"warehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationInput describes one notification to one recipient.
type NotificationInput struct {
	RecipientID   uuid.UUID
	Type          string
	ReferenceType string
	ReferenceID   uuid.UUID
	Title         string
	Message       string
}

// Notifier fans notifications out to recipients. Dispatch never fails the caller;
// it returns how many notifications were stored.
type Notifier interface {
	Dispatch(ctx context.Context, inputs ...NotificationInput) int
}

// Pusher delivers realtime messages to connected users.
type Pusher interface {
	SendToUser(userID uuid.UUID, message interface{}) error
}

type NotificationService interface {
	Notifier
	ListMine(ctx context.Context, actor Actor, unreadOnly bool, page, limit int) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, actor Actor) (int64, error)
	MarkRead(ctx context.Context, actor Actor, id string) error
	MarkAllRead(ctx context.Context, actor Actor) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
	log    *logrus.Logger
}

// NewNotificationService creates the notification dispatcher. pusher may be nil.
func NewNotificationService(repo repository.NotificationRepository, pusher Pusher, log *logrus.Logger) NotificationService {
	return &notificationService{repo: repo, pusher: pusher, log: log}
}

type notificationKey struct {
	recipient uuid.UUID
	kind      string
	reference uuid.UUID
}

func (s *notificationService) Dispatch(ctx context.Context, inputs ...NotificationInput) int {
	seen := make(map[notificationKey]bool, len(inputs))
	batch := make([]model.Notification, 0, len(inputs))
	for _, in := range inputs {
		if in.RecipientID == uuid.Nil {
			continue
		}
		key := notificationKey{in.RecipientID, in.Type, in.ReferenceID}
		if seen[key] {
			continue
		}
		seen[key] = true
		batch = append(batch, model.Notification{
			RecipientID:   in.RecipientID,
			Type:          in.Type,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			Title:         in.Title,
			Message:       in.Message,
		})
	}
	if len(batch) == 0 {
		return 0
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.log.WithError(err).WithField("count", len(batch)).Warn("failed to store notifications")
		return 0
	}

	for _, n := range batch {
		metrics.RecordNotifications(n.Type, 1)
		if s.pusher == nil {
			continue
		}
		if err := s.pusher.SendToUser(n.RecipientID, map[string]interface{}{"event": "notification", "data": n}); err != nil {
			s.log.WithError(err).WithField("recipient_id", n.RecipientID).Warn("failed to push notification")
		}
	}
	return len(batch)
}

func (s *notificationService) ListMine(ctx context.Context, actor Actor, unreadOnly bool, page, limit int) ([]model.Notification, int64, error) {
	return s.repo.ListForRecipient(ctx, actor.UserID, unreadOnly, page, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	return s.repo.CountUnread(ctx, actor.UserID)
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id string) error {
	notificationID, err := parseID(id, "notification")
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, notificationID, actor.UserID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	return s.repo.MarkAllRead(ctx, actor.UserID)
}
