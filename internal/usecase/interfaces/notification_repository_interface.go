package interfaces

import (
	"context"

	"mercadopago_integration/internal/domain/entities"
)

// INotificationRepository appends received webhook bodies to a receipt log.
type INotificationRepository interface {
	Save(ctx context.Context, n entities.Notification) error
}
