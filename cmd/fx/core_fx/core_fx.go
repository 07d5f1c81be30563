package core_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"xisaabi/internal/config"
	"xisaabi/internal/infra"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/keylock"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

// Module wires the shared infrastructure every feature depends on: config,
// logging, the database, repositories and the per-account lock table.
var Module = fx.Provide(
	config.Load,
	logger.NewLogger,
	provideDB,
	provideJWTMaker,
	keylock.NewKeyedMutex,
	provideUnitOfWork,
	provideAccountRepository,
	providePlanRepository,
	provideSubscriptionRepository,
	provideTransactionRepository,
	provideLedgerRepository,
)

func provideDB(cfg *config.Config) (*gorm.DB, error) {
	return infra.InitPostgresql(cfg)
}

func provideJWTMaker(cfg *config.Config) *utils.JWTMaker {
	return utils.NewJWTMaker(cfg.JWT.Secret, cfg.JWT.TTL)
}

func provideUnitOfWork(db *gorm.DB) repositories.UnitOfWork {
	return repositories.NewUnitOfWork(db)
}

func provideAccountRepository(db *gorm.DB) repositories.IAccountRepository {
	return repositories.NewAccountRepository(db)
}

func providePlanRepository(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideSubscriptionRepository(db *gorm.DB) repositories.ISubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideTransactionRepository(db *gorm.DB) repositories.ITransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideLedgerRepository(db *gorm.DB) repositories.ILedgerRepository {
	return repositories.NewLedgerRepository(db)
}
