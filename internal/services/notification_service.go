package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"xisaabi/internal/config"
	"xisaabi/internal/models/db_models"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/utils"
)

// NotificationPayload is the small structured payload every payment
// notification carries.
type NotificationPayload struct {
	PlanName   string
	Amount     decimal.Decimal
	Currency   string
	Reference  string
	Reason     string
	OccurredAt time.Time
}

// NotificationServiceInterface is fire-and-forget: none of the methods return
// an error because a delivery failure must never roll back the payment state
// change that triggered it. Failures are logged with the reference id.
type NotificationServiceInterface interface {
	SendPaymentFailed(account *db_models.Account, p NotificationPayload)
	SendOfflinePaymentSubmitted(account *db_models.Account, p NotificationPayload)
	SendOfflinePaymentApproved(account *db_models.Account, p NotificationPayload)
	SendOfflinePaymentRejected(account *db_models.Account, p NotificationPayload)
	SendSubscriptionActivated(account *db_models.Account, p NotificationPayload)
}

type notificationService struct {
	mailer *mailSender
	cfg    config.SMTPConfig
	log    *logger.Logger
}

func NewNotificationService(cfg config.SMTPConfig, log *logger.Logger) NotificationServiceInterface {
	return &notificationService{
		mailer: newMailSender(cfg),
		cfg:    cfg,
		log:    log,
	}
}

func (n *notificationService) SendPaymentFailed(account *db_models.Account, p NotificationPayload) {
	subject := "Payment failed"
	body := fmt.Sprintf(
		"Your payment of %s %s for the %s plan did not go through. Reference: %s.",
		p.Amount.StringFixed(2), p.Currency, p.PlanName, p.Reference)
	n.deliver(account, subject, body, p.Reference)
}

func (n *notificationService) SendOfflinePaymentSubmitted(account *db_models.Account, p NotificationPayload) {
	subject := "Payment received for review"
	body := fmt.Sprintf(
		"We received your transfer of %s %s for the %s plan. It is awaiting review; you will be notified once it is approved. Reference: %s.",
		p.Amount.StringFixed(2), p.Currency, p.PlanName, p.Reference)
	n.deliver(account, subject, body, p.Reference)
}

func (n *notificationService) SendOfflinePaymentApproved(account *db_models.Account, p NotificationPayload) {
	subject := "Payment approved"
	body := fmt.Sprintf(
		"Your transfer of %s %s for the %s plan was approved on %s. Reference: %s.",
		p.Amount.StringFixed(2), p.Currency, p.PlanName, utils.FormatEAT(p.OccurredAt), p.Reference)
	n.deliver(account, subject, body, p.Reference)
}

func (n *notificationService) SendOfflinePaymentRejected(account *db_models.Account, p NotificationPayload) {
	subject := "Payment rejected"
	body := fmt.Sprintf(
		"Your transfer for the %s plan was rejected: %s. Reference: %s.",
		p.PlanName, p.Reason, p.Reference)
	n.deliver(account, subject, body, p.Reference)
}

func (n *notificationService) SendSubscriptionActivated(account *db_models.Account, p NotificationPayload) {
	subject := "Subscription active"
	body := fmt.Sprintf(
		"Your %s plan is now active. Reference: %s.",
		p.PlanName, p.Reference)
	n.deliver(account, subject, body, p.Reference)
}

func (n *notificationService) deliver(account *db_models.Account, subject, body, reference string) {
	if account == nil || account.Email == "" {
		return
	}
	if !n.cfg.Configured() {
		n.log.Debugf("notification skipped (smtp not configured) ref=%s subject=%q", reference, subject)
		return
	}
	if err := n.mailer.send(account.Email, subject, body); err != nil {
		n.log.Errorf("notification delivery failed ref=%s to=%s: %v", reference, account.Email, err)
	}
}
