package main

import (
	"context"
	"edulink-service/internal/app/config"
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/app/delivery/http/routers"
	"edulink-service/internal/app/drivers/database"
	"edulink-service/internal/app/drivers/logger"
	"edulink-service/internal/app/drivers/messaging"
	driverStorage "edulink-service/internal/app/drivers/storage"
	"edulink-service/internal/app/services/core/auth"
	"edulink-service/internal/app/services/core/bookings"
	"edulink-service/internal/app/services/core/forum"
	"edulink-service/internal/app/services/core/invoices"
	"edulink-service/internal/app/services/core/notifications"
	"edulink-service/internal/app/services/core/payments"
	"edulink-service/internal/app/services/core/sessions"
	"edulink-service/internal/app/services/core/users"
	"edulink-service/internal/app/services/shared/notifier"
	"edulink-service/internal/app/services/shared/redis"
	"edulink-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLog := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLog.Sync()

	mongoDB := database.NewMongoDB(driverConfig, bootLog)
	redisClient := database.NewRedisClient(driverConfig, bootLog)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, bootLog)
	minioClient := driverStorage.NewMinio(driverConfig, bootLog)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLog,
		BootLogger:     bootLog,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}

	bootLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	storageService := storage.NewMinioStorageService(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)
	deliveryPublisher, err := notifier.NewService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.App.NotificationQueue,
		bootstrap.InternalConfig.App.NotificationDLQ,
		bootstrap.InternalConfig.App.PublishRatePerSecond,
	)
	if err != nil {
		bootstrap.BootLogger.Fatalf("Failed to set up delivery queue: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	sessionMongoRepository := sessions.NewSessionMongoRepository(bootstrap.MongoDB, dbName)
	bookingMongoRepository := bookings.NewBookingMongoRepository(bootstrap.MongoDB, dbName)
	paymentMongoRepository := payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName)
	invoiceMongoRepository := invoices.NewInvoiceMongoRepository(bootstrap.MongoDB, dbName)
	notificationMongoRepository := notifications.NewNotificationMongoRepository(bootstrap.MongoDB, dbName)
	forumMongoRepository := forum.NewForumMongoRepository(bootstrap.MongoDB, dbName)

	// Notification
	notificationUsecase := notifications.NewNotificationUsecase(notificationMongoRepository, deliveryPublisher, bootstrap.Logger)
	notificationController := controllers.NewNotificationController(bootstrap.Logger, notificationUsecase)

	// Session
	sessionUsecase := sessions.NewSessionUsecase(sessionMongoRepository, bookingMongoRepository, bootstrap.Logger)
	sessionController := controllers.NewSessionController(bootstrap.Logger, sessionUsecase)

	// Booking
	bookingUsecase := bookings.NewBookingUsecase(
		bookingMongoRepository,
		sessionMongoRepository,
		userMongoRepository,
		sessionUsecase,
		notificationUsecase,
		bootstrap.Logger,
	)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)

	// Payment
	paymentUsecase := payments.NewPaymentUsecase(paymentMongoRepository, bookingUsecase, notificationUsecase, bootstrap.InternalConfig, bootstrap.Logger)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)

	// Invoice
	invoiceUsecase := invoices.NewInvoiceUsecase(invoiceMongoRepository, bookingMongoRepository, userMongoRepository, bootstrap.InternalConfig, bootstrap.Logger)
	invoiceController := controllers.NewInvoiceController(bootstrap.Logger, invoiceUsecase)

	// Auth
	authUsecase := auth.NewAuthUsecase(userMongoRepository, redisRepository, bootstrap.InternalConfig, bootstrap.Logger)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)

	// User
	userUsecase := users.NewUserUsecase(userMongoRepository, storageService, bootstrap.Logger)
	userController := controllers.NewUserController(bootstrap.Logger, userUsecase, bootstrap.InternalConfig)

	// Forum
	forumUsecase := forum.NewForumUsecase(forumMongoRepository, storageService, notificationUsecase, bootstrap.Logger)
	forumController := controllers.NewForumController(bootstrap.Logger, forumUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		userController,
		sessionController,
		bookingController,
		paymentController,
		invoiceController,
		notificationController,
		forumController,
	)
}
