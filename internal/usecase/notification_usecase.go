package usecase

import (
	"context"
	"time"

	"mercadopago_integration/internal/domain/entities"
	"mercadopago_integration/internal/observability"
	"mercadopago_integration/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// INotificationUseCase acknowledges provider webhooks.
//
// Notifications are logged and, when a repository is configured, appended to
// the receipt log. Nothing is validated and no failure reaches the caller.
//
// https://www.mercadopago.com.br/developers/en/docs/checkout-api/additional-content/your-integrations/notifications/ipn
type INotificationUseCase interface {
	Receive(ctx context.Context, n entities.Notification) entities.Notification
}

type NotificationUseCase struct {
	repo interfaces.INotificationRepository
	log  *zap.Logger
	now  func() time.Time
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

// NewNotificationUseCase accepts a nil repo; the receipt log is optional.
func NewNotificationUseCase(repo interfaces.INotificationRepository, log *zap.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, log: log.Named("notification.usecase"), now: time.Now}
}

func (u *NotificationUseCase) Receive(ctx context.Context, n entities.Notification) entities.Notification {
	n.ReceiptID = uuid.NewString()
	if n.ReceivedAt.IsZero() {
		n.ReceivedAt = u.now().UTC()
	}

	u.log.Info("Notification received",
		zap.String("receipt_id", n.ReceiptID),
		zap.String("id", n.ID),
		zap.String("action", n.Action),
		zap.String("type", n.Type),
		zap.String("data_id", n.DataID),
		zap.Bool("live_mode", n.LiveMode),
		zap.ByteString("body", n.Raw),
	)
	observability.ObserveNotification(n.Type)

	if u.repo == nil {
		return n
	}
	if err := u.repo.Save(ctx, n); err != nil {
		u.log.Error("notification store failed", zap.String("receipt_id", n.ReceiptID), zap.Error(err))
	}
	return n
}
