package plan_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/api/controllers"
	"xisaabi/internal/repositories"
	"xisaabi/internal/services"
)

var Module = fx.Provide(
	providePlanService,
	providePlanController,
)

func providePlanService(planRepo repositories.IPlanRepository, uow repositories.UnitOfWork) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, uow)
}

func providePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}
