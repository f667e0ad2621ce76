package bootstrap

import (
	"vetcare-be/internal/config"
	"vetcare-be/internal/controller"
	"vetcare-be/internal/pkg/logger"
	"vetcare-be/internal/pkg/mailer"
	"vetcare-be/internal/repository/memory"
	"vetcare-be/internal/repository/unitofwork"
	"vetcare-be/internal/service"
	"vetcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AppointmentController  controller.IAppointmentController
	HistoryController      controller.IHistoryController
	NotificationController controller.INotificationController
	UserController         controller.IUserController

	// Background services (exposed for main.go to run)
	DeliveryConsumer service.IDeliveryConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Enabled {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Delivery bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. Services
	availabilityCache := memory.NewAvailabilityCache()
	availabilityService := service.NewAvailabilityService(uowFactory, availabilityCache)

	notificationService := service.NewNotificationService(
		uowFactory,
		pubSub,
		events.DeliveryTopic,
		sysLogger,
	)
	appointmentService := service.NewAppointmentService(uowFactory, notificationService, availabilityService, sysLogger)
	historyService := service.NewHistoryService(uowFactory, sysLogger)
	userService := service.NewUserService(uowFactory, sysLogger)

	deliveryConsumer := service.NewDeliveryConsumerService(pubSub, uowFactory, emailService, sysLogger)

	// 4. Controllers
	return &Container{
		AppointmentController:  controller.NewAppointmentController(appointmentService, availabilityService),
		HistoryController:      controller.NewHistoryController(historyService),
		NotificationController: controller.NewNotificationController(notificationService),
		UserController:         controller.NewUserController(userService),
		DeliveryConsumer:       deliveryConsumer,
		Logger:                 sysLogger,
	}
}
