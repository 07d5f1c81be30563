package controllers

import (
	"github.com/gin-gonic/gin"

	"xisaabi/internal/services"
	"xisaabi/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// MySubscription godoc
// @Summary Get the caller's subscription with its effective status
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/me [get]
func (s *SubscriptionController) MySubscription(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	resp, err := s.subscriptionService.GetMySubscription(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

func (s *SubscriptionController) Cancel(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	if err := s.subscriptionService.CancelSubscription(c.Request.Context(), accountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription cancelled")
}
