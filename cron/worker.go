package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hungrylah/config"
	"hungrylah/services/recommend"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeRecommendWarmup = "recommend:warmup"

// WarmupPayload identifies the user whose recommendation cache to warm.
type WarmupPayload struct {
	UserID string `json:"userId"`
}

// WarmupEnqueuer queues warm-up tasks. Preference saves and sign-ins
// enqueue here so the home screen's first ranking request hits a warm cache.
type WarmupEnqueuer struct {
	client *asynq.Client
}

// NewWarmupEnqueuer builds an enqueuer backed by the warm-up queue.
func NewWarmupEnqueuer() *WarmupEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWarmupQueueDB,
	})
	return &WarmupEnqueuer{client: client}
}

// EnqueueWarmup schedules a cache warm-up for the user. Best-effort: a
// failed enqueue is logged and swallowed, warm-up is never load-bearing.
func (e *WarmupEnqueuer) EnqueueWarmup(userID string) {
	if userID == "" {
		return
	}
	payload, err := json.Marshal(WarmupPayload{UserID: userID})
	if err != nil {
		log.Printf("[WarmupWorker] invalid payload for user %s: %v", userID, err)
		return
	}
	task := asynq.NewTask(TypeRecommendWarmup, payload)
	if _, err := e.client.Enqueue(task, asynq.MaxRetry(1), asynq.Timeout(60*time.Second)); err != nil {
		log.Printf("[WarmupWorker] failed to enqueue warmup for user %s: %v", userID, err)
	}
}

// InitWarmupWorker runs the async worker in background.
func InitWarmupWorker(recCache *recommend.RecommendationCache) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWarmupQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRecommendWarmup, handleWarmupTask(recCache))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[WarmupWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[WarmupWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[WarmupWorker] max retry attempts reached; warmup queue disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleWarmupTask(recCache *recommend.RecommendationCache) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p WarmupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[WarmupWorker] invalid payload: %v", err)
			return err
		}

		log.Printf("[WarmupWorker] warming recommendation cache for user %s", p.UserID)
		recCache.Warmup(ctx, p.UserID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWarmupQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[WarmupWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
