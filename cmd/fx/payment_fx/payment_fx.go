package payment_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/api/controllers"
	"xisaabi/internal/config"
	"xisaabi/internal/gateway"
	"xisaabi/internal/repositories"
	"xisaabi/internal/services"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
)

// Module assembles the payments core: the gateway client, both settlement
// channels and the router in front of them.
var Module = fx.Provide(
	provideGatewayClient,
	provideActivator,
	provideOnlineChannel,
	provideOfflineChannel,
	providePaymentRouter,
	providePaymentController,
	provideAdminPaymentController,
)

func provideGatewayClient(cfg *config.Config, log *logger.Logger) gateway.IGatewayClient {
	return gateway.NewClient(gateway.Config{
		Endpoint:       cfg.Gateway.Endpoint,
		MerchantUID:    cfg.Gateway.MerchantUID,
		APIUserID:      cfg.Gateway.APIUserID,
		APIKey:         cfg.Gateway.APIKey,
		MerchantNumber: cfg.Gateway.MerchantNumber,
		Timeout:        cfg.Gateway.Timeout,
	}, log)
}

func provideActivator(log *logger.Logger) *services.SubscriptionActivator {
	return services.NewSubscriptionActivator(log)
}

func provideOnlineChannel(
	cfg *config.Config,
	gw gateway.IGatewayClient,
	uow repositories.UnitOfWork,
	activator *services.SubscriptionActivator,
	notifier services.NotificationServiceInterface,
	locks *keylock.KeyedMutex,
	log *logger.Logger,
) *services.OnlineChannel {
	return services.NewOnlineChannel(cfg.Gateway, gw, uow, activator, notifier, locks, log)
}

func provideOfflineChannel(
	cfg *config.Config,
	uow repositories.UnitOfWork,
	activator *services.SubscriptionActivator,
	notifier services.NotificationServiceInterface,
	locks *keylock.KeyedMutex,
	log *logger.Logger,
) *services.OfflineChannel {
	return services.NewOfflineChannel(cfg.Offline, uow, activator, notifier, locks, log)
}

func providePaymentRouter(
	cfg *config.Config,
	uow repositories.UnitOfWork,
	online *services.OnlineChannel,
	offline *services.OfflineChannel,
	log *logger.Logger,
) services.PaymentRouterInterface {
	return services.NewPaymentRouter(cfg, uow, online, offline, log)
}

func providePaymentController(router services.PaymentRouterInterface, online *services.OnlineChannel) *controllers.PaymentController {
	return controllers.NewPaymentController(router, online)
}

func provideAdminPaymentController(router services.PaymentRouterInterface, offline *services.OfflineChannel) *controllers.AdminPaymentController {
	return controllers.NewAdminPaymentController(router, offline)
}
