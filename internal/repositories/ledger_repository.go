package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"xisaabi/internal/models/db_models"
)

type ILedgerRepository interface {
	CreateCustomer(ctx context.Context, c *db_models.Customer) error
	CreateVendor(ctx context.Context, v *db_models.Vendor) error
	CreateStockItem(ctx context.Context, s *db_models.StockItem) error
	CreateMoneyAccount(ctx context.Context, m *db_models.MoneyAccount) error

	GetCustomer(ctx context.Context, accountID, id uuid.UUID) (*db_models.Customer, error)
	GetVendor(ctx context.Context, accountID, id uuid.UUID) (*db_models.Vendor, error)
	GetStockItem(ctx context.Context, accountID, id uuid.UUID) (*db_models.StockItem, error)
	GetMoneyAccount(ctx context.Context, accountID, id uuid.UUID) (*db_models.MoneyAccount, error)

	// Balance mutations are single-statement increments (balance = balance + ?),
	// so concurrent writers never lose an update.
	AddCustomerReceivable(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	AddVendorPayable(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	AddStockQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	AddMoneyBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	ListCustomers(ctx context.Context, accountID uuid.UUID) ([]db_models.Customer, error)
	ListVendors(ctx context.Context, accountID uuid.UUID) ([]db_models.Vendor, error)
	ListStockItems(ctx context.Context, accountID uuid.UUID) ([]db_models.StockItem, error)
	ListMoneyAccounts(ctx context.Context, accountID uuid.UUID) ([]db_models.MoneyAccount, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) ILedgerRepository {
	return &ledgerRepository{db: db}
}

func (l *ledgerRepository) CreateCustomer(ctx context.Context, c *db_models.Customer) error {
	return l.db.WithContext(ctx).Create(c).Error
}

func (l *ledgerRepository) CreateVendor(ctx context.Context, v *db_models.Vendor) error {
	return l.db.WithContext(ctx).Create(v).Error
}

func (l *ledgerRepository) CreateStockItem(ctx context.Context, s *db_models.StockItem) error {
	return l.db.WithContext(ctx).Create(s).Error
}

func (l *ledgerRepository) CreateMoneyAccount(ctx context.Context, m *db_models.MoneyAccount) error {
	return l.db.WithContext(ctx).Create(m).Error
}

func (l *ledgerRepository) GetCustomer(ctx context.Context, accountID, id uuid.UUID) (*db_models.Customer, error) {
	var c db_models.Customer
	if err := l.ownedFirst(ctx, &c, accountID, id); err != nil {
		return nil, err
	}
	if c.ID == uuid.Nil {
		return nil, nil
	}
	return &c, nil
}

func (l *ledgerRepository) GetVendor(ctx context.Context, accountID, id uuid.UUID) (*db_models.Vendor, error) {
	var v db_models.Vendor
	if err := l.ownedFirst(ctx, &v, accountID, id); err != nil {
		return nil, err
	}
	if v.ID == uuid.Nil {
		return nil, nil
	}
	return &v, nil
}

func (l *ledgerRepository) GetStockItem(ctx context.Context, accountID, id uuid.UUID) (*db_models.StockItem, error) {
	var s db_models.StockItem
	if err := l.ownedFirst(ctx, &s, accountID, id); err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		return nil, nil
	}
	return &s, nil
}

func (l *ledgerRepository) GetMoneyAccount(ctx context.Context, accountID, id uuid.UUID) (*db_models.MoneyAccount, error) {
	var m db_models.MoneyAccount
	if err := l.ownedFirst(ctx, &m, accountID, id); err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (l *ledgerRepository) ownedFirst(ctx context.Context, dest interface{}, accountID, id uuid.UUID) error {
	err := l.db.WithContext(ctx).First(dest, "account_id = ? AND id = ?", accountID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (l *ledgerRepository) AddCustomerReceivable(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return l.db.WithContext(ctx).
		Model(&db_models.Customer{}).
		Where("id = ?", id).
		Update("receivable", gorm.Expr("receivable + ?", delta)).Error
}

func (l *ledgerRepository) AddVendorPayable(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return l.db.WithContext(ctx).
		Model(&db_models.Vendor{}).
		Where("id = ?", id).
		Update("payable", gorm.Expr("payable + ?", delta)).Error
}

func (l *ledgerRepository) AddStockQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return l.db.WithContext(ctx).
		Model(&db_models.StockItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (l *ledgerRepository) AddMoneyBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return l.db.WithContext(ctx).
		Model(&db_models.MoneyAccount{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

func (l *ledgerRepository) ListCustomers(ctx context.Context, accountID uuid.UUID) ([]db_models.Customer, error) {
	var out []db_models.Customer
	err := l.db.WithContext(ctx).Where("account_id = ?", accountID).Order("name ASC").Find(&out).Error
	return out, err
}

func (l *ledgerRepository) ListVendors(ctx context.Context, accountID uuid.UUID) ([]db_models.Vendor, error) {
	var out []db_models.Vendor
	err := l.db.WithContext(ctx).Where("account_id = ?", accountID).Order("name ASC").Find(&out).Error
	return out, err
}

func (l *ledgerRepository) ListStockItems(ctx context.Context, accountID uuid.UUID) ([]db_models.StockItem, error) {
	var out []db_models.StockItem
	err := l.db.WithContext(ctx).Where("account_id = ?", accountID).Order("name ASC").Find(&out).Error
	return out, err
}

func (l *ledgerRepository) ListMoneyAccounts(ctx context.Context, accountID uuid.UUID) ([]db_models.MoneyAccount, error) {
	var out []db_models.MoneyAccount
	err := l.db.WithContext(ctx).Where("account_id = ?", accountID).Order("name ASC").Find(&out).Error
	return out, err
}
