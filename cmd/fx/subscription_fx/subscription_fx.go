package subscription_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/api/controllers"
	"xisaabi/internal/repositories"
	"xisaabi/internal/services"
	"xisaabi/pkg/logger"
)

var Module = fx.Provide(
	provideSubscriptionService,
	provideSubscriptionController,
)

func provideSubscriptionService(uow repositories.UnitOfWork, log *logger.Logger) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(uow, log)
}

func provideSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *controllers.SubscriptionController {
	return controllers.NewSubscriptionController(subscriptionService)
}
