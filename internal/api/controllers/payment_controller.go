package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xisaabi/internal/models/request_models"
	"xisaabi/internal/services"
	"xisaabi/pkg/utils"
)

type PaymentController struct {
	router services.PaymentRouterInterface
	online *services.OnlineChannel
}

func NewPaymentController(router services.PaymentRouterInterface, online *services.OnlineChannel) *PaymentController {
	return &PaymentController{
		router: router,
		online: online,
	}
}

// AvailableMethods godoc
// @Summary List the payment channels currently available
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/methods [get]
func (p *PaymentController) AvailableMethods(c *gin.Context) {
	utils.RespondSuccess(c, p.router.AvailableMethods(), "")
}

// Subscribe godoc
// @Summary Pay for a subscription plan through the selected channel
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.SubscribeRequest true "Subscribe Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/subscribe [post]
func (p *PaymentController) Subscribe(c *gin.Context) {
	var request request_models.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	result, err := p.router.ProcessPayment(c.Request.Context(), accountID, request, provenance(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Message)
}

// Renew godoc
// @Summary Renew the current subscription on its existing plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.RenewRequest true "Renew Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/renew [post]
func (p *PaymentController) Renew(c *gin.Context) {
	var request request_models.RenewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	result, err := p.router.RenewSubscription(c.Request.Context(), accountID, request, provenance(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Message)
}

// TransactionStatus godoc
// @Summary Look up a payment transaction by reference
// @Tags Payments
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/status/{reference} [get]
func (p *PaymentController) TransactionStatus(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		utils.RespondError(c, http.StatusBadRequest, "reference is required")
		return
	}

	resp, err := p.router.TransactionStatus(c.Request.Context(), reference)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

// GatewayCallback receives the asynchronous settlement result for purchases
// the gateway answered with a pending code. Replayed callbacks hit the
// terminal-state check and come back as conflicts.
func (p *PaymentController) GatewayCallback(c *gin.Context) {
	var request request_models.GatewayCallbackRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if request.State == "approved" {
		result, err := p.online.ConfirmPayment(c.Request.Context(), request.Reference, request.GatewayTxnID)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, result, result.Message)
		return
	}

	if err := p.online.FailPayment(c.Request.Context(), request.Reference, request.Code, request.Message); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Payment failure recorded")
}

func provenance(c *gin.Context) services.RequestProvenance {
	return services.RequestProvenance{
		Channel:     "api",
		Environment: gin.Mode(),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
}
