package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timetracking/internal/config"
	"timetracking/internal/employee"
	"timetracking/internal/metrics"
	"timetracking/internal/queue"
	"timetracking/internal/store"
	"timetracking/internal/timelog"
)

// Worker consumes time-log messages and keeps the Redis presence
// snapshot in sync so dashboards can read "who is inside" without
// touching Postgres.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "timetracking:logs")
	}

	svc := timelog.NewService(timelog.NewRepository(db.Client), employee.NewRepository(db.Client))

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		if msg.Type != queue.TypeTimeLog {
			continue
		}

		log.Printf("processing log %s", string(msg.Body))
		if err := refreshSnapshot(ctx, svc, redisClient, cfg.SnapshotTTL); err != nil {
			log.Printf("snapshot refresh failed: %v", err)
			continue
		}
		metrics.SnapshotRefreshes.Inc()
	}

	log.Println("worker stopped")
}

// refreshSnapshot recomputes the full presence set as of now and
// caches it. Recomputing from scratch keeps the cache correct even
// for backdated or deleted logs.
func refreshSnapshot(ctx context.Context, svc *timelog.Service, redisClient *store.Redis, ttl time.Duration) error {
	present, err := svc.Present(ctx, time.Now())
	if err != nil {
		return err
	}
	ids := make([]int64, len(present.Employees))
	for i, emp := range present.Employees {
		ids[i] = emp.ID
	}
	if err := redisClient.SetPresenceSnapshot(ctx, ids, ttl); err != nil {
		return err
	}
	log.Printf("presence snapshot refreshed: %d inside", len(ids))
	return nil
}
