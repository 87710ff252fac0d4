package routes

import (
	"mercadopago_integration/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCardToken      = "/card_token"
	PathPaymentMethods = "/payment_methods"
	PathPreference     = "/preference"
	PathPayment        = "/payment"
	PathCancelPayment  = "/cancel_payment"
	PathNotification   = "/notification"
)

func addCheckoutRoutes(r gin.IRoutes, checkoutHandler *handlers.CheckoutHandler, notificationHandler *handlers.NotificationHandler) {
	r.GET("/", handlers.Index)

	r.GET(PathCardToken, checkoutHandler.CreateCardToken)
	r.GET(PathPaymentMethods, checkoutHandler.ListPaymentMethods)

	r.GET(PathPreference, checkoutHandler.CreatePreference)
	r.GET(PathPreference+"/:preferenceId", checkoutHandler.GetPreference)

	r.GET(PathPayment, checkoutHandler.CreatePayment)
	r.GET(PathPayment+"/:id", checkoutHandler.GetPayment)
	r.POST(PathCancelPayment+"/:id", checkoutHandler.CancelPayment)

	// IPN / webhooks
	r.POST(PathNotification, notificationHandler.Receive)
}
