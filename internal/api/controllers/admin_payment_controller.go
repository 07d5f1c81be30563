package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xisaabi/internal/models/request_models"
	"xisaabi/internal/services"
	"xisaabi/pkg/utils"
)

// AdminPaymentController is the operator review surface for the offline
// channel. All routes sit behind the admin role gate.
type AdminPaymentController struct {
	router  services.PaymentRouterInterface
	offline *services.OfflineChannel
}

func NewAdminPaymentController(router services.PaymentRouterInterface, offline *services.OfflineChannel) *AdminPaymentController {
	return &AdminPaymentController{
		router:  router,
		offline: offline,
	}
}

// ListPending godoc
// @Summary List offline payments awaiting approval
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payments/pending [get]
func (a *AdminPaymentController) ListPending(c *gin.Context) {
	items, err := a.router.ListPendingApprovals(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, "")
}

// Approve godoc
// @Summary Approve an offline payment and activate the subscription
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body request_models.ApprovePaymentRequest true "Approval notes"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payments/{id}/approve [post]
func (a *AdminPaymentController) Approve(c *gin.Context) {
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var request request_models.ApprovePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	approverID, ok := currentAccountID(c)
	if !ok {
		return
	}

	result, err := a.offline.Approve(c.Request.Context(), txnID, approverID, request.Notes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Message)
}

// Reject godoc
// @Summary Reject an offline payment with a reason
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body request_models.RejectPaymentRequest true "Rejection reason"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payments/{id}/reject [post]
func (a *AdminPaymentController) Reject(c *gin.Context) {
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var request request_models.RejectPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	approverID, ok := currentAccountID(c)
	if !ok {
		return
	}

	result, err := a.offline.Reject(c.Request.Context(), txnID, approverID, request.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Message)
}
