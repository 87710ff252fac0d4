package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mercadopago_integration/internal/adapter/http/handlers/mocks"
	"mercadopago_integration/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func TestNotificationHandler_Receive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(t *testing.T) (*gin.Engine, *mocks.MockINotificationUseCase) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockINotificationUseCase(ctrl)
		h := NewNotificationHandler(uc, zap.NewNop())
		r := gin.New()
		r.POST("/notification", h.Receive)
		return r, uc
	}

	assertOK := func(t *testing.T, w *httptest.ResponseRecorder) {
		t.Helper()
		if w.Code != http.StatusOK || w.Body.String() != "OK" {
			t.Fatalf("expected 200 OK, got %d %q", w.Code, w.Body.String())
		}
	}

	t.Run("webhook body", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) entities.Notification {
			if n.Type != "payment" || n.DataID != "1323479563" || n.Action != "payment.created" {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return n
		})

		assertOK(t, serve(r, http.MethodPost, "/notification", []byte(`{"action":"payment.created","data":{"id":"1323479563"},"type":"payment"}`)))
	})

	t.Run("empty body", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(entities.Notification{})

		assertOK(t, serve(r, http.MethodPost, "/notification", nil))
	})

	t.Run("garbage body", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(entities.Notification{})

		assertOK(t, serve(r, http.MethodPost, "/notification", []byte(`<<<`)))
	})

	t.Run("ipn query string", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) entities.Notification {
			if n.Type != "payment" || n.DataID != "123" {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return n
		})

		assertOK(t, serve(r, http.MethodPost, "/notification?topic=payment&id=123", nil))
	})

	t.Run("unreadable body", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(entities.Notification{})

		req := httptest.NewRequest(http.MethodPost, "/notification", nil)
		req.Body = failingReadCloser{}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assertOK(t, w)
	})
}
