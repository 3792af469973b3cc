package bootstrap

import (
	"context"
	"log"

	"lendhub-be/internal/config"
	"lendhub-be/internal/controller"
	"lendhub-be/internal/handler"
	"lendhub-be/internal/pkg/logger"
	"lendhub-be/internal/pkg/mailer"
	"lendhub-be/internal/repository/implementation"
	"lendhub-be/internal/repository/unitofwork"
	"lendhub-be/internal/service"
	"lendhub-be/internal/websocket"
	"lendhub-be/pkg/admin/audit"
	adminEvents "lendhub-be/pkg/admin/events"
	"lendhub-be/pkg/admin/guard"
	adminLoan "lendhub-be/pkg/admin/loan"
	"lendhub-be/pkg/admin/notify"
	adminProfile "lendhub-be/pkg/admin/profile"
	"lendhub-be/pkg/admin/validate"
	adminWithdrawal "lendhub-be/pkg/admin/withdrawal"

	pkgNats "lendhub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	LoanController  controller.ILoanController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process, for the loan-applied mail worker)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.LoanAppliedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.LoanAppliedTopic,
		uowFactory,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, cfg.JWT)
	loanService := service.NewLoanService(uowFactory, publisherService)

	// Admin Mutation Pipeline
	var adminEventPublisher adminEvents.Publisher = adminEvents.NewNatsPublisher(natsPub, sysLogger)
	if natsPub == nil {
		adminEventPublisher = adminEvents.NoopPublisher{}
	}

	actorGuard := guard.NewGuard(cfg.JWT.Secret, implementation.NewUserRepository(db), sysLogger)
	fieldValidator := validate.NewValidator()
	auditRecorder := audit.NewRecorder()
	dispatcher := notify.NewDispatcher()

	loanManager := adminLoan.NewManager(sysLogger, fieldValidator, auditRecorder, dispatcher)
	withdrawalManager := adminWithdrawal.NewProcessor(sysLogger, fieldValidator, auditRecorder, dispatcher)
	profileManager := adminProfile.NewManager(sysLogger, fieldValidator, auditRecorder, dispatcher)

	adminService := service.NewAdminService(
		uowFactory,
		actorGuard,
		loanManager,
		withdrawalManager,
		profileManager,
		adminEventPublisher,
		sysLogger,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, uowFactory, natsSub, wsHub, emailService, wsLogger)

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		LoanController:      controller.NewLoanController(loanService),
		AdminController:     controller.NewAdminController(adminService, authService),

		ConsumerService: consumerService,
	}
}
