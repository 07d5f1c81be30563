package services

import (
	"context"

	"github.com/google/uuid"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

type SubscriptionServiceInterface interface {
	GetMySubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error)
	// StartTrial enrolls a fresh account on the default plan's trial. Called at
	// signup; idempotent when the account already has a subscription row.
	StartTrial(ctx context.Context, accountID uuid.UUID) error
	// CanWrite reports whether the account's subscription currently grants
	// write access. Backs the write gate on bookkeeping routes.
	CanWrite(ctx context.Context, accountID uuid.UUID) (bool, error)
	CancelSubscription(ctx context.Context, accountID uuid.UUID) error
}

type SubscriptionService struct {
	uow repositories.UnitOfWork
	log *logger.Logger
}

func NewSubscriptionService(uow repositories.UnitOfWork, log *logger.Logger) SubscriptionServiceInterface {
	return &SubscriptionService{uow: uow, log: log}
}

// GetMySubscription reports the effective state at call time. Expiry is
// evaluated lazily against the clock; the stored row is not rewritten.
func (s *SubscriptionService) GetMySubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	r := s.uow.Repos()

	sub, err := r.Subscriptions.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionMissing
	}

	plan, err := r.Plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}

	now := utils.NowEAT()
	resp := &response_models.SubscriptionResponse{
		Status:      string(sub.EffectiveStatus(now)),
		TrialEndsAt: utils.FormatEATPtr(sub.TrialEndsAt),
		StartsAt:    utils.FormatEATPtr(sub.StartsAt),
		EndsAt:      utils.FormatEATPtr(sub.EndsAt),
		CanWrite:    sub.CanWrite(now),
	}
	if plan != nil {
		resp.PlanCode = plan.Code
		resp.PlanName = plan.Name
	}
	return resp, nil
}

func (s *SubscriptionService) StartTrial(ctx context.Context, accountID uuid.UUID) error {
	return s.uow.Do(ctx, func(r repositories.Repos) error {
		existing, err := r.Subscriptions.GetByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		plan, err := r.Plans.GetDefault(ctx)
		if err != nil {
			return err
		}
		if plan == nil {
			// No default plan configured; the account subscribes explicitly later.
			s.log.Warnf("no default plan configured, account %s starts without a trial", accountID)
			return nil
		}

		now := utils.NowEAT()
		sub := &db_models.Subscription{
			AccountID: accountID,
			PlanID:    plan.ID,
			Status:    db_models.SubStatusExpired,
		}
		if plan.TrialEnabled && plan.TrialDays > 0 {
			trialEnd := now.AddDate(0, 0, int(plan.TrialDays))
			sub.Status = db_models.SubStatusTrial
			sub.TrialEndsAt = &trialEnd
		}

		if err := r.Subscriptions.Create(ctx, sub); err != nil {
			if repositories.IsUniqueViolation(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (s *SubscriptionService) CanWrite(ctx context.Context, accountID uuid.UUID) (bool, error) {
	sub, err := s.uow.Repos().Subscriptions.GetByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}
	return sub.CanWrite(utils.NowEAT()), nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context, accountID uuid.UUID) error {
	return s.uow.Do(ctx, func(r repositories.Repos) error {
		sub, err := r.Subscriptions.GetByAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if sub == nil {
			return utils.ErrSubscriptionMissing
		}
		if sub.Status == db_models.SubStatusCancelled {
			return nil
		}
		sub.Status = db_models.SubStatusCancelled
		return r.Subscriptions.Save(ctx, sub)
	})
}
