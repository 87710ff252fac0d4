package routes

import (
	"context"
	"fmt"

	_ "mercadopago_integration/docs"
	"mercadopago_integration/internal/adapter/http/handlers"
	"mercadopago_integration/internal/adapter/persistence/repository"
	"mercadopago_integration/internal/config"
	"mercadopago_integration/internal/infrastructure/database"
	"mercadopago_integration/internal/infrastructure/payments"
	"mercadopago_integration/internal/observability"
	"mercadopago_integration/internal/usecase"
	"mercadopago_integration/internal/usecase/interfaces"
	"mercadopago_integration/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run will start the server
func Run() {
	cfg := config.MustLoad()

	log, err := logger.New(cfg.Logger.Level)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	checkoutHandler, notificationHandler, err := buildHandlers(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to wire handlers", zap.Error(err))
	}

	router := NewRouter(checkoutHandler, notificationHandler, log)

	log.Info("Server running", zap.String("addr", cfg.Server.Address()), zap.Bool("mock", cfg.MercadoPago.MockEnabled()))
	if err := router.Run(cfg.Server.Address()); err != nil {
		log.Fatal("Failed to startup the application", zap.Error(err))
	}
}

// NewRouter builds the engine with middlewares, docs, metrics and the
// checkout routes.
func NewRouter(checkoutHandler *handlers.CheckoutHandler, notificationHandler *handlers.NotificationHandler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addCheckoutRoutes(router, checkoutHandler, notificationHandler)
	return router
}

func buildHandlers(ctx context.Context, cfg config.Config, log *zap.Logger) (*handlers.CheckoutHandler, *handlers.NotificationHandler, error) {
	gateway := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken: cfg.MercadoPago.Token(),
		Timeout:     cfg.MercadoPago.Timeout,
		Mock:        cfg.MercadoPago.MockEnabled(),
	}, log)

	checkoutUseCase := usecase.NewCheckoutUseCase(gateway, usecase.CheckoutSettings{
		NotificationURL:    cfg.MercadoPago.NotificationURL,
		PayerEmail:         cfg.MercadoPago.PayerEmail,
		CardExpirationYear: cfg.MercadoPago.CardExpYear,
	}, log)

	var notificationRepo interfaces.INotificationRepository
	if cfg.Notifications.StoreEnabled {
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamodb: %w", err)
		}
		notificationRepo = repository.NewNotificationDynamoRepository(ddb, cfg.Notifications.Table)
		log.Info("notification receipt log enabled", zap.String("table", cfg.Notifications.Table))
	}
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, log)

	return handlers.NewCheckoutHandler(checkoutUseCase, log), handlers.NewNotificationHandler(notificationUseCase, log), nil
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(requestLogger(log))
	router.Use(observability.GinMiddleware())
	router.Use(recovery(log))
}
