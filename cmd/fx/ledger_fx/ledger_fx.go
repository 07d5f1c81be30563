package ledger_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/api/controllers"
	"xisaabi/internal/repositories"
	"xisaabi/internal/services"
)

var Module = fx.Provide(
	provideLedgerService,
	provideLedgerController,
)

func provideLedgerService(ledgerRepo repositories.ILedgerRepository) services.LedgerServiceInterface {
	return services.NewLedgerService(ledgerRepo)
}

func provideLedgerController(ledgerService services.LedgerServiceInterface) *controllers.LedgerController {
	return controllers.NewLedgerController(ledgerService)
}
