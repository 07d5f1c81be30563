package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/utils"
)

type PlanServiceInterface interface {
	ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
	GetPlanByID(ctx context.Context, planID uuid.UUID) (response_models.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (response_models.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpsertPlanRequest) (response_models.SubscriptionPlan, error)
	// SetDefaultPlan clears any previous default in the same unit of work so
	// at most one plan is default at a time.
	SetDefaultPlan(ctx context.Context, planID uuid.UUID) error
}

type PlanService struct {
	planRepo repositories.IPlanRepository
	uow      repositories.UnitOfWork
}

func NewPlanService(planRepo repositories.IPlanRepository, uow repositories.UnitOfWork) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
		uow:      uow,
	}
}

func (p *PlanService) ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := p.planRepo.ListActive(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SubscriptionPlan, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return out, nil
}

func (p *PlanService) GetPlanByID(ctx context.Context, planID uuid.UUID) (response_models.SubscriptionPlan, error) {
	plan, err := p.planRepo.GetByID(ctx, planID)
	if err != nil {
		return response_models.SubscriptionPlan{}, utils.ErrDatabaseError
	}
	if plan == nil {
		return response_models.SubscriptionPlan{}, utils.ErrPlanNotFound
	}
	return toPlanResponse(plan), nil
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (response_models.SubscriptionPlan, error) {
	plan := &db_models.Plan{}
	if err := applyPlanRequest(plan, req); err != nil {
		return response_models.SubscriptionPlan{}, err
	}
	if err := p.planRepo.Create(ctx, plan); err != nil {
		return response_models.SubscriptionPlan{}, utils.ErrDatabaseError
	}
	return toPlanResponse(plan), nil
}

func (p *PlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpsertPlanRequest) (response_models.SubscriptionPlan, error) {
	plan, err := p.planRepo.GetByID(ctx, planID)
	if err != nil {
		return response_models.SubscriptionPlan{}, utils.ErrDatabaseError
	}
	if plan == nil {
		return response_models.SubscriptionPlan{}, utils.ErrPlanNotFound
	}
	if err := applyPlanRequest(plan, req); err != nil {
		return response_models.SubscriptionPlan{}, err
	}
	if err := p.planRepo.Save(ctx, plan); err != nil {
		return response_models.SubscriptionPlan{}, utils.ErrDatabaseError
	}
	return toPlanResponse(plan), nil
}

func (p *PlanService) SetDefaultPlan(ctx context.Context, planID uuid.UUID) error {
	return p.uow.Do(ctx, func(r repositories.Repos) error {
		plan, err := r.Plans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		if err := r.Plans.ClearDefault(ctx); err != nil {
			return err
		}
		plan.IsDefault = true
		return r.Plans.Save(ctx, plan)
	})
}

func applyPlanRequest(plan *db_models.Plan, req request_models.UpsertPlanRequest) error {
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.LessThan(decimal.NewFromFloat(0.01)) {
		return utils.ErrPriceBelowMinimum
	}

	plan.Code = req.Code
	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = price
	plan.Currency = req.Currency
	plan.Cycle = db_models.BillingCycle(req.Cycle)
	plan.BillingDays = req.BillingDays
	plan.TrialEnabled = req.TrialEnabled
	plan.TrialDays = req.TrialDays
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	} else {
		plan.IsActive = true
	}
	if req.Features != nil {
		raw, err := json.Marshal(req.Features)
		if err != nil {
			return err
		}
		plan.Features = datatypes.JSON(raw)
	}
	return nil
}

func toPlanResponse(plan *db_models.Plan) response_models.SubscriptionPlan {
	return response_models.SubscriptionPlan{
		ID:           plan.ID,
		Code:         plan.Code,
		Name:         plan.Name,
		Description:  plan.Description,
		Price:        plan.Price.StringFixed(2),
		Currency:     plan.Currency,
		Cycle:        string(plan.Cycle),
		BillingDays:  plan.BillingDays,
		TrialEnabled: plan.TrialEnabled,
		TrialDays:    plan.TrialDays,
		IsActive:     plan.IsActive,
		IsDefault:    plan.IsDefault,
	}
}
