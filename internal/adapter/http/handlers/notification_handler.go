package handlers

import (
	"net/http"

	request "mercadopago_integration/internal/adapter/http/dto/request"
	"mercadopago_integration/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notificationAck = "OK"

// NotificationHandler acknowledges Mercado Pago webhooks.
type NotificationHandler struct {
	usecase usecase.INotificationUseCase
	log     *zap.Logger
}

func NewNotificationHandler(uc usecase.INotificationUseCase, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{usecase: uc, log: log.Named("notification.handler")}
}

// Receive godoc
// @Summary  Receive a webhook/IPN notification
// @Tags     notification
// @Accept   json
// @Produce  plain
// @Success  200 {string} string "OK"
// @Router   /notification [post]
func (h *NotificationHandler) Receive(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warn("notification body read failed", zap.Error(err))
	}

	n, err := request.ParseNotification(raw, request.NotificationQuery{
		Topic:  c.Query("topic"),
		Type:   c.Query("type"),
		ID:     c.Query("id"),
		DataID: c.Query("data.id"),
	})
	if err != nil {
		h.log.Warn("notification body is not a json object", zap.Error(err))
	}

	h.usecase.Receive(c.Request.Context(), n)
	c.String(http.StatusOK, notificationAck)
}
