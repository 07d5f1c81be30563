package account_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/api/controllers"
	"xisaabi/internal/repositories"
	"xisaabi/internal/services"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService,
	provideAccountController,
)

func provideAccountService(
	accountRepo repositories.IAccountRepository,
	subscription services.SubscriptionServiceInterface,
	jwtMaker *utils.JWTMaker,
	log *logger.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, subscription, jwtMaker, log)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
