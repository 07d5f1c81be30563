package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xisaabi/internal/models/db_models"
)

type ISubscriptionRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error)
	// GetByAccountForUpdate takes a row lock; only valid inside a unit of work.
	GetByAccountForUpdate(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error)
	Create(ctx context.Context, sub *db_models.Subscription) error
	Save(ctx context.Context, sub *db_models.Subscription) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (s *subscriptionRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).First(&sub, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *subscriptionRepository) GetByAccountForUpdate(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sub, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *subscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

func (s *subscriptionRepository) Save(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Save(sub).Error
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. The unique index on subscriptions.account_id is the storage-level
// backstop for the one-row-per-account invariant; callers that lose the
// create race re-read the winner's row under lock instead of failing.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
