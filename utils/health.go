package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last check.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis && !h.CheckedAt.IsZero()
}

// HealthMonitor pings Mongo and Redis on an interval and keeps the last result.
type HealthMonitor struct {
	mu      sync.RWMutex
	current HealthStatus

	pingMongo func(ctx context.Context) error
	pingRedis func(ctx context.Context) error
}

// NewHealthMonitor wires the monitor to live clients.
func NewHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) *HealthMonitor {
	return NewHealthMonitorWithChecks(
		func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	)
}

// NewHealthMonitorWithChecks builds a monitor around arbitrary ping functions.
func NewHealthMonitorWithChecks(pingMongo, pingRedis func(ctx context.Context) error) *HealthMonitor {
	return &HealthMonitor{pingMongo: pingMongo, pingRedis: pingRedis}
}

// Status returns the latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check runs one ping round and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{
		Mongo:     m.pingMongo(ctx) == nil,
		Redis:     m.pingRedis(ctx) == nil,
		CheckedAt: time.Now(),
	}
	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start checks immediately and then every interval until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
