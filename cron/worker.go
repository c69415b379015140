package cron

import (
	"context"
	"fmt"
	"time"

	"gochinamed/config"
	"gochinamed/models"
	"gochinamed/services/booking"
	"gochinamed/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ConfirmationProcessor performs the simulated provider confirmations.
type ConfirmationProcessor interface {
	ConfirmDoctorAppointment(ctx context.Context, payload models.ConfirmationPayload) error
	ConfirmItinerary(ctx context.Context, payload models.ConfirmationPayload) error
}

// NewServeMux routes both confirmation task types to the processor.
func NewServeMux(proc ConfirmationProcessor, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeConfirmDoctor, HandleDoctorConfirmation(proc, logger))
	mux.HandleFunc(tasks.TypeConfirmItinerary, HandleItineraryConfirmation(proc, logger))
	return mux
}

// InitConfirmationWorker runs the confirmation worker in background. The
// returned server is shut down by the caller.
func InitConfirmationWorker(proc ConfirmationProcessor, logger *zap.Logger) *asynq.Server {
	cfg := config.AppConfig
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.QueueConfirmations: 1,
			},
		},
	)

	mux := NewServeMux(proc, logger)

	go monitorRedisConnection(logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("starting confirmation worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("confirmation worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("confirmation worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleDoctorConfirmation confirms the doctor appointment named by the task.
func HandleDoctorConfirmation(proc ConfirmationProcessor, logger *zap.Logger) asynq.HandlerFunc {
	return handle("doctor", proc.ConfirmDoctorAppointment, logger)
}

// HandleItineraryConfirmation confirms every reservation of the task's order.
func HandleItineraryConfirmation(proc ConfirmationProcessor, logger *zap.Logger) asynq.HandlerFunc {
	return handle("itinerary", proc.ConfirmItinerary, logger)
}

func handle(kind string, confirm func(context.Context, models.ConfirmationPayload) error, logger *zap.Logger) asynq.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePayload(task)
		if err != nil {
			logger.Error("dropping confirmation task", zap.String("kind", kind), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := confirm(ctx, p); err != nil {
			if booking.ErrorCode(err) == booking.CodeNotFound {
				logger.Warn("confirmation target missing", zap.String("kind", kind), zap.String("orderId", p.OrderID))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Error("confirmation failed", zap.String("kind", kind), zap.String("orderId", p.OrderID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("confirmation queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
