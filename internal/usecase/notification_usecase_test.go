package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mercadopago_integration/internal/domain/entities"
	mock_interfaces "mercadopago_integration/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNotificationUseCase_Receive(t *testing.T) {
	fixed := time.Date(2024, 5, 28, 20, 42, 45, 0, time.UTC)

	t.Run("without repository", func(t *testing.T) {
		uc := NewNotificationUseCase(nil, zap.NewNop())
		uc.now = func() time.Time { return fixed }

		n := uc.Receive(context.Background(), entities.Notification{Type: "payment", DataID: "1323479563"})
		if n.ReceiptID == "" {
			t.Fatalf("expected receipt id")
		}
		if !n.ReceivedAt.Equal(fixed) {
			t.Fatalf("expected received_at %v, got %v", fixed, n.ReceivedAt)
		}
	})

	t.Run("stores notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, zap.NewNop())

		raw := json.RawMessage(`{"type":"payment"}`)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.ReceiptID == "" || n.Type != "payment" || string(n.Raw) != string(raw) {
				t.Fatalf("unexpected stored notification: %+v", n)
			}
			return nil
		})

		uc.Receive(context.Background(), entities.Notification{Type: "payment", Raw: raw})
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, zap.NewNop())

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("ddb down"))

		n := uc.Receive(context.Background(), entities.Notification{})
		if n.ReceiptID == "" {
			t.Fatalf("expected receipt id even when store fails")
		}
	})

	t.Run("keeps provided received_at", func(t *testing.T) {
		uc := NewNotificationUseCase(nil, zap.NewNop())
		n := uc.Receive(context.Background(), entities.Notification{ReceivedAt: fixed})
		if !n.ReceivedAt.Equal(fixed) {
			t.Fatalf("expected %v, got %v", fixed, n.ReceivedAt)
		}
	})
}
