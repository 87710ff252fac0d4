package handlers

import (
	"net/http"

	response "mercadopago_integration/internal/adapter/http/dto/response"
	"mercadopago_integration/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the Mercado Pago pass-through routes.
//
// Every failure is answered with 200 and an {"error": ...} body; callers
// must inspect the body to tell success from failure.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
	log     *zap.Logger
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, log: log.Named("checkout.handler")}
}

// CreateCardToken godoc
// @Summary  Tokenize the test card
// @Tags     checkout
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /card_token [get]
func (h *CheckoutHandler) CreateCardToken(c *gin.Context) {
	token, err := h.usecase.CreateCardToken(c.Request.Context())
	if err != nil {
		h.fail(c, "card_token", err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, token)
}

// ListPaymentMethods godoc
// @Summary  List payment methods
// @Tags     checkout
// @Produce  json
// @Success  200 {array} map[string]interface{}
// @Router   /payment_methods [get]
func (h *CheckoutHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.usecase.ListPaymentMethods(c.Request.Context())
	if err != nil {
		h.fail(c, "payment_methods", err)
		return
	}
	c.Data(http.StatusOK, gin.MIMEJSON, methods)
}

// CreatePreference godoc
// @Summary  Create a checkout preference
// @Tags     preference
// @Produce  json
// @Success  200 {object} response.PreferenceResponse
// @Router   /preference [get]
func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	pref, err := h.usecase.CreatePreference(c.Request.Context())
	if err != nil {
		h.fail(c, "preference", err)
		return
	}
	h.log.Info("preference created", zap.String("preference_id", pref.ID), zap.String("external_reference", pref.ExternalReference))
	c.JSON(http.StatusOK, response.FromPreference(pref))
}

// GetPreference godoc
// @Summary  Get a checkout preference
// @Tags     preference
// @Produce  json
// @Param    preferenceId path string true "Preference ID"
// @Success  200 {object} response.PreferenceResponse
// @Router   /preference/{preferenceId} [get]
func (h *CheckoutHandler) GetPreference(c *gin.Context) {
	preferenceID := c.Param("preferenceId")
	pref, err := h.usecase.GetPreference(c.Request.Context(), preferenceID)
	if err != nil {
		h.fail(c, "preference/:preferenceId", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPreference(pref))
}

// CreatePayment godoc
// @Summary  Pay with the test card
// @Tags     payment
// @Produce  json
// @Success  200 {object} response.PaymentResponse
// @Router   /payment [get]
func (h *CheckoutHandler) CreatePayment(c *gin.Context) {
	p, err := h.usecase.CreatePayment(c.Request.Context())
	if err != nil {
		h.fail(c, "payment", err)
		return
	}
	h.log.Info("payment created", zap.Int64("payment_id", p.ID), zap.String("status", string(p.Status)))
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// GetPayment godoc
// @Summary  Get a payment
// @Tags     payment
// @Produce  json
// @Param    id path string true "Payment ID"
// @Success  200 {object} response.PaymentResponse
// @Router   /payment/{id} [get]
func (h *CheckoutHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "payment/:id", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// CancelPayment godoc
// @Summary  Cancel a payment
// @Tags     payment
// @Produce  json
// @Param    id path string true "Payment ID"
// @Success  200 {object} map[string]interface{}
// @Router   /cancel_payment/{id} [post]
func (h *CheckoutHandler) CancelPayment(c *gin.Context) {
	paymentID := c.Param("id")
	cancelled, err := h.usecase.CancelPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.fail(c, "cancel_payment/:id", err)
		return
	}
	h.log.Info("payment cancelled", zap.String("payment_id", paymentID))
	c.Data(http.StatusOK, gin.MIMEJSON, cancelled)
}

func (h *CheckoutHandler) fail(c *gin.Context, route string, err error) {
	h.log.Warn("provider call failed", zap.String("route", route), zap.Error(err))
	c.JSON(http.StatusOK, response.NewErrorResponse(err))
}
