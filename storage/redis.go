package storage

import (
	"log"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis(addr, password string) {
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}
