package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"space_manager/config"
	"space_manager/model"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

// PublishBookingEvent fans a booking change out to the live calendar
// feed of its space. Best effort.
func PublishBookingEvent(spaceId uint, event string, booking model.BookingResponse) {
	payload, err := json.Marshal(map[string]any{
		"event":   event,
		"booking": booking,
	})
	if err != nil {
		log.Printf("failed to encode booking event: %v", err)
		return
	}

	channel := fmt.Sprintf("space:%d", spaceId)
	if err := getRedisClient().Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("failed to publish booking event on %s: %v", channel, err)
	}
}

// BookingSocket streams booking events of a space to connected admin
// clients over a websocket, backed by the redis channel.
func BookingSocket(c *websocket.Conn) {
	spaceIdStr := c.Params("spaceId")
	id64, _ := strconv.ParseUint(spaceIdStr, 10, 64)
	spaceId := uint(id64)

	defer func() {
		mu.Lock()
		if clients[spaceId] != nil {
			delete(clients[spaceId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[spaceId] == nil {
		clients[spaceId] = make(map[*websocket.Conn]bool)
	}
	clients[spaceId][c] = true
	mu.Unlock()

	pubsub := getRedisClient().Subscribe(
		context.Background(),
		fmt.Sprintf("space:%d", spaceId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[spaceId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[spaceId], conn)
			}
		}
		mu.Unlock()
	}
}
