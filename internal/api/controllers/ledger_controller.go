package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xisaabi/internal/models/request_models"
	"xisaabi/internal/models/response_models"
	"xisaabi/internal/services"
	"xisaabi/pkg/utils"
)

// LedgerController exposes the bookkeeping surface: customers, vendors and
// stock. Routes sit behind the subscription write gate, so an expired account
// can read but not mutate.
type LedgerController struct {
	ledgerService services.LedgerServiceInterface
}

func NewLedgerController(ledgerService services.LedgerServiceInterface) *LedgerController {
	return &LedgerController{
		ledgerService: ledgerService,
	}
}

func (l *LedgerController) CreateCustomer(c *gin.Context) {
	var request request_models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.CreateCustomer(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Customer created successfully")
}

func (l *LedgerController) ListCustomers(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.ListCustomers(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

func (l *LedgerController) ChargeCustomer(c *gin.Context) {
	l.customerAmountOp(c, l.ledgerService.ChargeCustomer, "Charge recorded")
}

func (l *LedgerController) RecordCustomerPayment(c *gin.Context) {
	l.customerAmountOp(c, l.ledgerService.RecordCustomerPayment, "Payment recorded")
}

func (l *LedgerController) CreateVendor(c *gin.Context) {
	var request request_models.CreateVendorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.CreateVendor(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Vendor created successfully")
}

func (l *LedgerController) ListVendors(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.ListVendors(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

func (l *LedgerController) RecordVendorBill(c *gin.Context) {
	l.vendorAmountOp(c, l.ledgerService.RecordVendorBill, "Bill recorded")
}

func (l *LedgerController) RecordVendorPayment(c *gin.Context) {
	l.vendorAmountOp(c, l.ledgerService.RecordVendorPayment, "Payment recorded")
}

func (l *LedgerController) CreateMoneyAccount(c *gin.Context) {
	var request request_models.CreateMoneyAccountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.CreateMoneyAccount(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Money account created successfully")
}

func (l *LedgerController) ListMoneyAccounts(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.ListMoneyAccounts(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

func (l *LedgerController) DepositMoney(c *gin.Context) {
	l.moneyAmountOp(c, l.ledgerService.DepositMoney, "Deposit recorded")
}

func (l *LedgerController) WithdrawMoney(c *gin.Context) {
	l.moneyAmountOp(c, l.ledgerService.WithdrawMoney, "Withdrawal recorded")
}

func (l *LedgerController) CreateStockItem(c *gin.Context) {
	var request request_models.CreateStockItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.CreateStockItem(c.Request.Context(), accountID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Stock item created successfully")
}

func (l *LedgerController) ListStockItems(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	resp, err := l.ledgerService.ListStockItems(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

func (l *LedgerController) ReceiveStock(c *gin.Context) {
	l.stockAmountOp(c, l.ledgerService.ReceiveStock, "Stock received")
}

func (l *LedgerController) IssueStock(c *gin.Context) {
	l.stockAmountOp(c, l.ledgerService.IssueStock, "Stock issued")
}

func (l *LedgerController) customerAmountOp(c *gin.Context, op func(ctx context.Context, accountID, id uuid.UUID, req request_models.LedgerAmountRequest) (response_models.CustomerResponse, error), message string) {
	accountID, id, request, ok := bindAmountOp(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), accountID, id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, message)
}

func (l *LedgerController) vendorAmountOp(c *gin.Context, op func(ctx context.Context, accountID, id uuid.UUID, req request_models.LedgerAmountRequest) (response_models.VendorResponse, error), message string) {
	accountID, id, request, ok := bindAmountOp(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), accountID, id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, message)
}

func (l *LedgerController) moneyAmountOp(c *gin.Context, op func(ctx context.Context, accountID, id uuid.UUID, req request_models.LedgerAmountRequest) (response_models.MoneyAccountResponse, error), message string) {
	accountID, id, request, ok := bindAmountOp(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), accountID, id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, message)
}

func (l *LedgerController) stockAmountOp(c *gin.Context, op func(ctx context.Context, accountID, id uuid.UUID, req request_models.LedgerAmountRequest) (response_models.StockItemResponse, error), message string) {
	accountID, id, request, ok := bindAmountOp(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), accountID, id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, message)
}

// bindAmountOp handles the shared plumbing of every increment/decrement
// route: path id, request body and caller identity.
func bindAmountOp(c *gin.Context) (accountID, id uuid.UUID, request request_models.LedgerAmountRequest, ok bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, uuid.Nil, request, false
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return uuid.Nil, uuid.Nil, request, false
	}
	accountID, ok = currentAccountID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, request, false
	}
	return accountID, id, request, true
}
