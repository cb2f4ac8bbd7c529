// File: cron/worker.go
package cron

import (
	"context"
	"time"

	"adeonabot/config"
	"adeonabot/services/chat"
	"adeonabot/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSessionSweep = "session:sweep"

// InitSessionSweeper runs the background worker that evicts idle chat
// sessions. A scheduler enqueues a sweep task periodically; the worker
// executes it against the in-memory store.
func InitSessionSweeper(store *chat.SessionStore) {
	log := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweeperDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionSweep, handleSweepTask(store))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 30m", asynq.NewTask(TypeSessionSweep, nil)); err != nil {
		log.Error("failed to register sweep schedule", zap.Error(err))
		return
	}

	go runWithRetry("session sweeper scheduler", func() error { return scheduler.Run() })
	go runWithRetry("session sweeper worker", func() error { return srv.Run(mux) })
}

func handleSweepTask(store *chat.SessionStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		maxIdle := time.Duration(config.AppConfig.SessionIdleHours) * time.Hour
		if maxIdle <= 0 {
			maxIdle = 24 * time.Hour
		}

		removed := store.Sweep(maxIdle)
		utils.GetLogger().Info("session sweep completed",
			zap.Int("removed", removed),
			zap.Duration("maxIdle", maxIdle))
		return nil
	}
}

// runWithRetry starts a long-running component, retrying with backoff
// when Redis is temporarily unreachable at boot.
func runWithRetry(name string, run func() error) {
	log := utils.GetLogger()
	const maxAttempts = 5

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := run()
		if err == nil {
			return
		}
		log.Error("background component failed",
			zap.String("component", name),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt == maxAttempts {
			log.Warn("giving up on background component", zap.String("component", name))
			return
		}
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
}
