package utils

import (
	"context"
	"log"
	"time"

	"matero/config"

	"github.com/go-redis/redis/v8"
)

// StateClient is the Redis client holding per-conversation dialogue state.
var StateClient *redis.Client

// InitRedis initializes the Redis client for conversation state.
func InitRedis() {
	StateClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStateDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := StateClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (State): %v", err)
	}
}

// GetStateClient returns the conversation-state Redis client.
func GetStateClient() *redis.Client {
	if StateClient == nil {
		InitRedis()
	}
	return StateClient
}
