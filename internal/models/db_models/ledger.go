package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger rows are the simple back-office surface around the payments core:
// plain increment/decrement balances without settlement ambiguity.

// Customer carries an outstanding receivable balance.
type Customer struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"index:idx_customer_account"`
	Name        string
	PhoneNumber string
	Receivable  decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
}

// Vendor carries an outstanding payable balance.
type Vendor struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"index:idx_vendor_account"`
	Name        string
	PhoneNumber string
	Payable     decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
}

// MoneyAccount is a cash box, bank account or wallet balance.
type MoneyAccount struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index:idx_money_account"`
	Name      string
	Currency  string          `gorm:"size:3"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
}

type StockItem struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index:idx_stock_account"`
	Name      string
	Unit      string
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);default:0"`
	UnitCost  decimal.Decimal `gorm:"type:numeric(12,2);default:0"`
}
