package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories that participate in payment flows.
type Repos struct {
	Accounts      IAccountRepository
	Plans         IPlanRepository
	Subscriptions ISubscriptionRepository
	Transactions  ITransactionRepository
}

// UnitOfWork scopes a group of repository calls to one database transaction.
// Approve/reject and settle flows run their transaction update and the
// subscription activation inside a single Do call, so a crash mid-operation
// can never leave a transaction approved while the subscription stays
// pending_payment.
type UnitOfWork interface {
	// Do runs fn inside one transaction; rollback on error, commit otherwise.
	Do(ctx context.Context, fn func(r Repos) error) error
	// Repos returns non-transactional repositories for plain reads.
	Repos() Repos
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func newRepos(db *gorm.DB) Repos {
	return Repos{
		Accounts:      NewAccountRepository(db),
		Plans:         NewPlanRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Transactions:  NewTransactionRepository(db),
	}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepos(tx))
	})
}

func (u *gormUnitOfWork) Repos() Repos {
	return newRepos(u.db)
}
