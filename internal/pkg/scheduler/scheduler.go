package scheduler

import (
	"context"
	"fmt"
	"net/http"

	"travel-booking-service/config"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	// TypeExpireHold is enqueued at hold creation with ProcessIn(TTL) so
	// every hold gets swept shortly after its deadline even if the periodic
	// sweep is down.
	TypeExpireHold = "expire_hold"
	// TypeSweepHolds is the periodic bulk sweep over all overdue holds.
	TypeSweepHolds = "sweep_holds"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig) {
	ctx := context.Background()
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: asynq.RedisClientOpt{Addr: redisAddr, Password: cfg.Password, DB: cfg.DB},
	})

	http.Handle(h.RootPath()+"/", h)

	err := http.ListenAndServe(":8080", nil)
	s.Log.Ctx(ctx).Error(fmt.Sprintf("error start monitoring scheduler: %v", err))
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// StartPeriodic registers a cron-style recurring task and runs the asynq
// scheduler loop.
func (s *Scheduler) StartPeriodic(cfg *config.RedisConfig, spec, taskType string) {
	ctx := context.Background()
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	sched := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: cfg.Password, DB: cfg.DB},
		nil,
	)

	if _, err := sched.Register(spec, asynq.NewTask(taskType, nil)); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error register periodic task %s: %v", taskType, err))
		return
	}

	if err := sched.Run(); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error run periodic scheduler: %v", err))
	}
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: cfg.Password, DB: cfg.DB},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)
	mux := asynq.NewServeMux()

	for i, taskType := range taskTypes {
		mux.HandleFunc(taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error start handler scheduler: %v", err))
	}
}
