package notification_fx

import (
	"go.uber.org/fx"

	"xisaabi/internal/config"
	"xisaabi/internal/services"
	"xisaabi/pkg/logger"
)

var Module = fx.Provide(
	provideNotificationService,
)

func provideNotificationService(cfg *config.Config, log *logger.Logger) services.NotificationServiceInterface {
	return services.NewNotificationService(cfg.SMTP, log)
}
