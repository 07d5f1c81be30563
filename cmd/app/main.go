package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"xisaabi/cmd/fx/account_fx"
	"xisaabi/cmd/fx/core_fx"
	"xisaabi/cmd/fx/ledger_fx"
	"xisaabi/cmd/fx/notification_fx"
	"xisaabi/cmd/fx/payment_fx"
	"xisaabi/cmd/fx/plan_fx"
	"xisaabi/cmd/fx/subscription_fx"
	"xisaabi/internal/api/controllers"
	"xisaabi/internal/config"
	"xisaabi/internal/infra"
	"xisaabi/internal/services"
	"xisaabi/pkg/logger"
	"xisaabi/pkg/middleware"
	"xisaabi/pkg/utils"
)

func main() {
	app := fx.New(
		core_fx.Module,
		notification_fx.Module,
		account_fx.Module,
		plan_fx.Module,
		subscription_fx.Module,
		payment_fx.Module,
		ledger_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, db *gorm.DB, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infof("starting HTTP server on :%s", cfg.Server.Port)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infof("stopping HTTP server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return infra.ClosePostgresql(db)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	jwtMaker *utils.JWTMaker,
	subscriptionService services.SubscriptionServiceInterface,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	paymentController *controllers.PaymentController,
	adminPaymentController *controllers.AdminPaymentController,
	ledgerController *controllers.LedgerController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, jwtMaker, subscriptionService,
		accountController, planController, subscriptionController,
		paymentController, adminPaymentController, ledgerController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	jwtMaker *utils.JWTMaker,
	subscriptionService services.SubscriptionServiceInterface,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	paymentController *controllers.PaymentController,
	adminPaymentController *controllers.AdminPaymentController,
	ledgerController *controllers.LedgerController,
) {
	// Public surface
	accounts := r.Group("/accounts")
	accounts.POST("/signup", accountController.SignUp)
	accounts.POST("/login", accountController.Login)

	plans := r.Group("/plans")
	plans.GET("", planController.ListPlans)
	plans.GET("/:id", planController.GetPlan)

	// Gateway posts settlement results here; authenticated by reference, not JWT.
	r.POST("/payments/callback", paymentController.GatewayCallback)

	// Authenticated surface
	auth := r.Group("/", middleware.JWTAuthMiddleware(jwtMaker))
	auth.GET("/accounts/me", accountController.Me)
	auth.GET("/subscriptions/me", subscriptionController.MySubscription)
	auth.POST("/subscriptions/cancel", subscriptionController.Cancel)

	payments := auth.Group("/payments")
	payments.GET("/methods", paymentController.AvailableMethods)
	payments.POST("/subscribe", paymentController.Subscribe)
	payments.POST("/renew", paymentController.Renew)
	payments.GET("/status/:reference", paymentController.TransactionStatus)

	// Bookkeeping reads stay open for expired subscriptions; writes do not.
	ledger := auth.Group("/ledger")
	ledger.GET("/customers", ledgerController.ListCustomers)
	ledger.GET("/vendors", ledgerController.ListVendors)
	ledger.GET("/stock", ledgerController.ListStockItems)
	ledger.GET("/money", ledgerController.ListMoneyAccounts)

	ledgerWrite := ledger.Group("", middleware.SubscriptionWriteGate(subscriptionService.CanWrite))
	ledgerWrite.POST("/customers", ledgerController.CreateCustomer)
	ledgerWrite.POST("/customers/:id/charge", ledgerController.ChargeCustomer)
	ledgerWrite.POST("/customers/:id/payment", ledgerController.RecordCustomerPayment)
	ledgerWrite.POST("/vendors", ledgerController.CreateVendor)
	ledgerWrite.POST("/vendors/:id/bill", ledgerController.RecordVendorBill)
	ledgerWrite.POST("/vendors/:id/payment", ledgerController.RecordVendorPayment)
	ledgerWrite.POST("/stock", ledgerController.CreateStockItem)
	ledgerWrite.POST("/stock/:id/receive", ledgerController.ReceiveStock)
	ledgerWrite.POST("/stock/:id/issue", ledgerController.IssueStock)
	ledgerWrite.POST("/money", ledgerController.CreateMoneyAccount)
	ledgerWrite.POST("/money/:id/deposit", ledgerController.DepositMoney)
	ledgerWrite.POST("/money/:id/withdraw", ledgerController.WithdrawMoney)

	// Operator surface
	admin := auth.Group("/admin", middleware.RoleMiddleware("admin"))
	admin.GET("/payments/pending", adminPaymentController.ListPending)
	admin.POST("/payments/:id/approve", adminPaymentController.Approve)
	admin.POST("/payments/:id/reject", adminPaymentController.Reject)
	admin.POST("/plans", planController.CreatePlan)
	admin.PUT("/plans/:id", planController.UpdatePlan)
	admin.POST("/plans/:id/default", planController.SetDefaultPlan)
}
