package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xisaabi/internal/models/db_models"
)

type ITransactionRepository interface {
	Create(ctx context.Context, txn *db_models.PaymentTransaction) error
	Save(ctx context.Context, txn *db_models.PaymentTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error)
	// GetByIDForUpdate row-locks the transaction; approve/reject use it so a
	// duplicated operator click serializes against the first decision.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error)
	GetByReference(ctx context.Context, reference string) (*db_models.PaymentTransaction, error)
	GetByReferenceForUpdate(ctx context.Context, reference string) (*db_models.PaymentTransaction, error)
	ListPendingApproval(ctx context.Context) ([]db_models.PaymentTransaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.PaymentTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ITransactionRepository {
	return &transactionRepository{db: db}
}

func (t *transactionRepository) Create(ctx context.Context, txn *db_models.PaymentTransaction) error {
	return t.db.WithContext(ctx).Create(txn).Error
}

func (t *transactionRepository) Save(ctx context.Context, txn *db_models.PaymentTransaction) error {
	return t.db.WithContext(ctx).Save(txn).Error
}

func (t *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error) {
	return t.firstWhere(ctx, t.db, "id = ?", id.String())
}

func (t *transactionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error) {
	return t.firstWhere(ctx, t.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id.String())
}

func (t *transactionRepository) GetByReference(ctx context.Context, reference string) (*db_models.PaymentTransaction, error) {
	return t.firstWhere(ctx, t.db, "reference = ?", reference)
}

func (t *transactionRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*db_models.PaymentTransaction, error) {
	return t.firstWhere(ctx, t.db.Clauses(clause.Locking{Strength: "UPDATE"}), "reference = ?", reference)
}

func (t *transactionRepository) firstWhere(ctx context.Context, db *gorm.DB, query string, arg string) (*db_models.PaymentTransaction, error) {
	var txn db_models.PaymentTransaction
	err := db.WithContext(ctx).First(&txn, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (t *transactionRepository) ListPendingApproval(ctx context.Context) ([]db_models.PaymentTransaction, error) {
	var txns []db_models.PaymentTransaction
	err := t.db.WithContext(ctx).
		Preload("Account").
		Where("payment_type = ? AND status = ?", db_models.PaymentTypeOffline, db_models.TxnStatusPendingApproval).
		Order("created_at ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (t *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.PaymentTransaction, error) {
	var txns []db_models.PaymentTransaction
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
