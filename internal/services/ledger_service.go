package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"xisaabi/internal/models/db_models"
	"xisaabi/internal/models/request_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/repositories"
	"xisaabi/pkg/utils"
)

// LedgerServiceInterface is the day-to-day bookkeeping surface: customer
// receivables, vendor payables, money accounts and stock. Every mutation is scoped
// to the caller's account so one tenant can never touch another's rows.
type LedgerServiceInterface interface {
	CreateCustomer(ctx context.Context, accountID uuid.UUID, req request_models.CreateCustomerRequest) (response_models.CustomerResponse, error)
	ListCustomers(ctx context.Context, accountID uuid.UUID) ([]response_models.CustomerResponse, error)
	ChargeCustomer(ctx context.Context, accountID, customerID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.CustomerResponse, error)
	RecordCustomerPayment(ctx context.Context, accountID, customerID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.CustomerResponse, error)

	CreateVendor(ctx context.Context, accountID uuid.UUID, req request_models.CreateVendorRequest) (response_models.VendorResponse, error)
	ListVendors(ctx context.Context, accountID uuid.UUID) ([]response_models.VendorResponse, error)
	RecordVendorBill(ctx context.Context, accountID, vendorID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.VendorResponse, error)
	RecordVendorPayment(ctx context.Context, accountID, vendorID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.VendorResponse, error)

	CreateMoneyAccount(ctx context.Context, accountID uuid.UUID, req request_models.CreateMoneyAccountRequest) (response_models.MoneyAccountResponse, error)
	ListMoneyAccounts(ctx context.Context, accountID uuid.UUID) ([]response_models.MoneyAccountResponse, error)
	DepositMoney(ctx context.Context, accountID, moneyAccountID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.MoneyAccountResponse, error)
	WithdrawMoney(ctx context.Context, accountID, moneyAccountID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.MoneyAccountResponse, error)

	CreateStockItem(ctx context.Context, accountID uuid.UUID, req request_models.CreateStockItemRequest) (response_models.StockItemResponse, error)
	ListStockItems(ctx context.Context, accountID uuid.UUID) ([]response_models.StockItemResponse, error)
	ReceiveStock(ctx context.Context, accountID, itemID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.StockItemResponse, error)
	IssueStock(ctx context.Context, accountID, itemID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.StockItemResponse, error)
}

type LedgerService struct {
	ledgerRepo repositories.ILedgerRepository
}

func NewLedgerService(ledgerRepo repositories.ILedgerRepository) LedgerServiceInterface {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

func (l *LedgerService) CreateCustomer(ctx context.Context, accountID uuid.UUID, req request_models.CreateCustomerRequest) (response_models.CustomerResponse, error) {
	customer := &db_models.Customer{
		AccountID:   accountID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if err := l.ledgerRepo.CreateCustomer(ctx, customer); err != nil {
		return response_models.CustomerResponse{}, utils.ErrDatabaseError
	}
	return toCustomerResponse(customer), nil
}

func (l *LedgerService) ListCustomers(ctx context.Context, accountID uuid.UUID) ([]response_models.CustomerResponse, error) {
	customers, err := l.ledgerRepo.ListCustomers(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResponse(&customers[i]))
	}
	return out, nil
}

// ChargeCustomer raises the customer's outstanding receivable.
func (l *LedgerService) ChargeCustomer(ctx context.Context, accountID, customerID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.CustomerResponse, error) {
	return l.adjustCustomer(ctx, accountID, customerID, req.Amount, false)
}

// RecordCustomerPayment settles part or all of the receivable.
func (l *LedgerService) RecordCustomerPayment(ctx context.Context, accountID, customerID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.CustomerResponse, error) {
	return l.adjustCustomer(ctx, accountID, customerID, req.Amount, true)
}

func (l *LedgerService) adjustCustomer(ctx context.Context, accountID, customerID uuid.UUID, amount string, negate bool) (response_models.CustomerResponse, error) {
	delta, err := parsePositiveAmount(amount)
	if err != nil {
		return response_models.CustomerResponse{}, err
	}
	customer, err := l.ledgerRepo.GetCustomer(ctx, accountID, customerID)
	if err != nil {
		return response_models.CustomerResponse{}, utils.ErrDatabaseError
	}
	if customer == nil {
		return response_models.CustomerResponse{}, utils.ErrCustomerNotFound
	}
	if negate {
		delta = delta.Neg()
	}
	if err := l.ledgerRepo.AddCustomerReceivable(ctx, customer.ID, delta); err != nil {
		return response_models.CustomerResponse{}, utils.ErrDatabaseError
	}
	customer.Receivable = customer.Receivable.Add(delta)
	return toCustomerResponse(customer), nil
}

func (l *LedgerService) CreateVendor(ctx context.Context, accountID uuid.UUID, req request_models.CreateVendorRequest) (response_models.VendorResponse, error) {
	vendor := &db_models.Vendor{
		AccountID:   accountID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if err := l.ledgerRepo.CreateVendor(ctx, vendor); err != nil {
		return response_models.VendorResponse{}, utils.ErrDatabaseError
	}
	return toVendorResponse(vendor), nil
}

func (l *LedgerService) ListVendors(ctx context.Context, accountID uuid.UUID) ([]response_models.VendorResponse, error) {
	vendors, err := l.ledgerRepo.ListVendors(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.VendorResponse, 0, len(vendors))
	for i := range vendors {
		out = append(out, toVendorResponse(&vendors[i]))
	}
	return out, nil
}

func (l *LedgerService) RecordVendorBill(ctx context.Context, accountID, vendorID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.VendorResponse, error) {
	return l.adjustVendor(ctx, accountID, vendorID, req.Amount, false)
}

func (l *LedgerService) RecordVendorPayment(ctx context.Context, accountID, vendorID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.VendorResponse, error) {
	return l.adjustVendor(ctx, accountID, vendorID, req.Amount, true)
}

func (l *LedgerService) adjustVendor(ctx context.Context, accountID, vendorID uuid.UUID, amount string, negate bool) (response_models.VendorResponse, error) {
	delta, err := parsePositiveAmount(amount)
	if err != nil {
		return response_models.VendorResponse{}, err
	}
	vendor, err := l.ledgerRepo.GetVendor(ctx, accountID, vendorID)
	if err != nil {
		return response_models.VendorResponse{}, utils.ErrDatabaseError
	}
	if vendor == nil {
		return response_models.VendorResponse{}, utils.ErrVendorNotFound
	}
	if negate {
		delta = delta.Neg()
	}
	if err := l.ledgerRepo.AddVendorPayable(ctx, vendor.ID, delta); err != nil {
		return response_models.VendorResponse{}, utils.ErrDatabaseError
	}
	vendor.Payable = vendor.Payable.Add(delta)
	return toVendorResponse(vendor), nil
}

func (l *LedgerService) CreateMoneyAccount(ctx context.Context, accountID uuid.UUID, req request_models.CreateMoneyAccountRequest) (response_models.MoneyAccountResponse, error) {
	m := &db_models.MoneyAccount{
		AccountID: accountID,
		Name:      req.Name,
		Currency:  req.Currency,
	}
	if err := l.ledgerRepo.CreateMoneyAccount(ctx, m); err != nil {
		return response_models.MoneyAccountResponse{}, utils.ErrDatabaseError
	}
	return toMoneyAccountResponse(m), nil
}

func (l *LedgerService) ListMoneyAccounts(ctx context.Context, accountID uuid.UUID) ([]response_models.MoneyAccountResponse, error) {
	accounts, err := l.ledgerRepo.ListMoneyAccounts(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.MoneyAccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toMoneyAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (l *LedgerService) DepositMoney(ctx context.Context, accountID, moneyAccountID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.MoneyAccountResponse, error) {
	delta, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return response_models.MoneyAccountResponse{}, err
	}
	m, err := l.ledgerRepo.GetMoneyAccount(ctx, accountID, moneyAccountID)
	if err != nil {
		return response_models.MoneyAccountResponse{}, utils.ErrDatabaseError
	}
	if m == nil {
		return response_models.MoneyAccountResponse{}, utils.ErrMoneyAccountNotFound
	}
	if err := l.ledgerRepo.AddMoneyBalance(ctx, m.ID, delta); err != nil {
		return response_models.MoneyAccountResponse{}, utils.ErrDatabaseError
	}
	m.Balance = m.Balance.Add(delta)
	return toMoneyAccountResponse(m), nil
}

// WithdrawMoney refuses to overdraw; cash boxes and wallets carry no credit.
func (l *LedgerService) WithdrawMoney(ctx context.Context, accountID, moneyAccountID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.MoneyAccountResponse, error) {
	delta, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return response_models.MoneyAccountResponse{}, err
	}
	m, err := l.ledgerRepo.GetMoneyAccount(ctx, accountID, moneyAccountID)
	if err != nil {
		return response_models.MoneyAccountResponse{}, utils.ErrDatabaseError
	}
	if m == nil {
		return response_models.MoneyAccountResponse{}, utils.ErrMoneyAccountNotFound
	}
	if m.Balance.LessThan(delta) {
		return response_models.MoneyAccountResponse{}, utils.ErrInsufficientFunds
	}
	if err := l.ledgerRepo.AddMoneyBalance(ctx, m.ID, delta.Neg()); err != nil {
		return response_models.MoneyAccountResponse{}, utils.ErrDatabaseError
	}
	m.Balance = m.Balance.Sub(delta)
	return toMoneyAccountResponse(m), nil
}

func (l *LedgerService) CreateStockItem(ctx context.Context, accountID uuid.UUID, req request_models.CreateStockItemRequest) (response_models.StockItemResponse, error) {
	item := &db_models.StockItem{
		AccountID: accountID,
		Name:      req.Name,
		Unit:      req.Unit,
	}
	if req.UnitCost != "" {
		cost, err := decimal.NewFromString(req.UnitCost)
		if err != nil || cost.IsNegative() {
			return response_models.StockItemResponse{}, utils.ErrPriceBelowMinimum
		}
		item.UnitCost = cost
	}
	if err := l.ledgerRepo.CreateStockItem(ctx, item); err != nil {
		return response_models.StockItemResponse{}, utils.ErrDatabaseError
	}
	return toStockItemResponse(item), nil
}

func (l *LedgerService) ListStockItems(ctx context.Context, accountID uuid.UUID) ([]response_models.StockItemResponse, error) {
	items, err := l.ledgerRepo.ListStockItems(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.StockItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toStockItemResponse(&items[i]))
	}
	return out, nil
}

func (l *LedgerService) ReceiveStock(ctx context.Context, accountID, itemID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.StockItemResponse, error) {
	delta, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return response_models.StockItemResponse{}, err
	}
	item, err := l.ledgerRepo.GetStockItem(ctx, accountID, itemID)
	if err != nil {
		return response_models.StockItemResponse{}, utils.ErrDatabaseError
	}
	if item == nil {
		return response_models.StockItemResponse{}, utils.ErrStockItemNotFound
	}
	if err := l.ledgerRepo.AddStockQuantity(ctx, item.ID, delta); err != nil {
		return response_models.StockItemResponse{}, utils.ErrDatabaseError
	}
	item.Quantity = item.Quantity.Add(delta)
	return toStockItemResponse(item), nil
}

// IssueStock decrements quantity and refuses to take it below zero.
func (l *LedgerService) IssueStock(ctx context.Context, accountID, itemID uuid.UUID, req request_models.LedgerAmountRequest) (response_models.StockItemResponse, error) {
	delta, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return response_models.StockItemResponse{}, err
	}
	item, err := l.ledgerRepo.GetStockItem(ctx, accountID, itemID)
	if err != nil {
		return response_models.StockItemResponse{}, utils.ErrDatabaseError
	}
	if item == nil {
		return response_models.StockItemResponse{}, utils.ErrStockItemNotFound
	}
	if item.Quantity.LessThan(delta) {
		return response_models.StockItemResponse{}, utils.ErrInsufficientStock
	}
	if err := l.ledgerRepo.AddStockQuantity(ctx, item.ID, delta.Neg()); err != nil {
		return response_models.StockItemResponse{}, utils.ErrDatabaseError
	}
	item.Quantity = item.Quantity.Sub(delta)
	return toStockItemResponse(item), nil
}

func parsePositiveAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, utils.ErrPriceBelowMinimum
	}
	return d, nil
}

func toCustomerResponse(c *db_models.Customer) response_models.CustomerResponse {
	return response_models.CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Receivable:  c.Receivable.StringFixed(2),
	}
}

func toVendorResponse(v *db_models.Vendor) response_models.VendorResponse {
	return response_models.VendorResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		PhoneNumber: v.PhoneNumber,
		Payable:     v.Payable.StringFixed(2),
	}
}

func toMoneyAccountResponse(m *db_models.MoneyAccount) response_models.MoneyAccountResponse {
	return response_models.MoneyAccountResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Currency: m.Currency,
		Balance:  m.Balance.StringFixed(2),
	}
}

func toStockItemResponse(s *db_models.StockItem) response_models.StockItemResponse {
	return response_models.StockItemResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		Unit:     s.Unit,
		Quantity: s.Quantity.String(),
		UnitCost: s.UnitCost.StringFixed(2),
	}
}
