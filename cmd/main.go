package main

import (
	"context"
	"log"

	"travel-booking-service/config"
	"travel-booking-service/internal/module/booking/handler"
	"travel-booking-service/internal/module/booking/repositories"
	"travel-booking-service/internal/module/booking/usecases"
	"travel-booking-service/internal/pkg/database"
	"travel-booking-service/internal/pkg/http"
	"travel-booking-service/internal/pkg/httpclient"
	log_internal "travel-booking-service/internal/pkg/log"
	"travel-booking-service/internal/pkg/messagestream"
	"travel-booking-service/internal/pkg/middleware"
	"travel-booking-service/internal/pkg/redis"
	"travel-booking-service/internal/pkg/scheduler"
	router "travel-booking-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, sched := initService(cfg)

	for _, r := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(r)
	}

	go sched.StartMonitoring(&cfg.Redis)
	go sched.StartPeriodic(&cfg.Redis, "@every 5m", scheduler.TypeSweepHolds)

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *scheduler.Scheduler) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create subscriber")
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create publisher")
	}

	// distributed lock for hold conversion
	locker := redsync.New(goredis.NewPool(redisClient))

	// delayed hold-expiry tasks
	sched := &scheduler.Scheduler{Log: logger}
	taskClient := sched.InitClient(&cfg.Redis)

	bookingRepo := repositories.New(db, logger, httpClient, redisClient, &cfg.PhonePe)
	bookingUsecase := usecases.New(bookingRepo, logger, publisher, taskClient, locker, &cfg.PhonePe, &cfg.Hold)
	m := &middleware.Middleware{
		Log: logger,
	}

	v := validator.New()
	bookingHandler := &handler.BookingHandler{
		Log:       logger,
		Validator: v,
		Usecase:   bookingUsecase,
		Publish:   publisher,
	}

	var messageRouters []*message.Router

	reconcileRouter, err := messagestream.NewRouter(publisher, "reconcile_payment_poisoned", "reconcile_payment_handler", usecases.TopicReconcilePayment, subscriber, bookingHandler.ConsumeReconcileQueue)
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create reconcile_payment router")
	}

	messageRouters = append(messageRouters, reconcileRouter)

	go sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeExpireHold, scheduler.TypeSweepHolds},
		[]func(ctx context.Context, t *asynq.Task) error{
			bookingHandler.HandleExpireHoldTask,
			bookingHandler.HandleSweepHoldsTask,
		})

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, bookingHandler, m)

	return r, messageRouters, sched
}
