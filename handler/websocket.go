package handler

import (
	"context"
	"event_manager/config"
	"event_manager/helper"
	"fmt"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: config.Config("REDIS_ADDR")})

	notifClients = make(map[uint]map[*websocket.Conn]bool)
	notifMutex   sync.Mutex
)

// canSubscribeNotifications kênh thông báo là dữ liệu riêng tư:
// token phải hợp lệ và userId trong token phải trùng kênh đăng ký
func canSubscribeNotifications(token string, userId uint) bool {
	if token == "" || userId == 0 {
		return false
	}
	jwtToken, err := helper.ParseToken(token)
	if err != nil || !jwtToken.Valid {
		return false
	}
	claims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	idFloat, _ := claims["userId"].(float64)
	return uint(idFloat) == userId
}

// NotificationWebsocket đẩy thông báo realtime cho một user.
// Mỗi user một kênh Redis, nhiều tab/thiết bị cùng nhận.
// WS upgrade không mang header Authorization nên token nhận
// qua query param hoặc cookie access_token.
func NotificationWebsocket(c *websocket.Conn) {
	userIdStr := c.Params("userId")
	id64, _ := strconv.ParseUint(userIdStr, 10, 64)
	userId := uint(id64)

	token := c.Query("token")
	if token == "" {
		token = c.Cookies("access_token")
	}
	if !canSubscribeNotifications(token, userId) {
		c.Close()
		return
	}

	// Khi WS disconnect → xoá client
	defer func() {
		notifMutex.Lock()
		if notifClients[userId] != nil {
			delete(notifClients[userId], c)
			if len(notifClients[userId]) == 0 {
				delete(notifClients, userId)
			}
		}
		notifMutex.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room của user
	notifMutex.Lock()
	if notifClients[userId] == nil {
		notifClients[userId] = make(map[*websocket.Conn]bool)
	}
	notifClients[userId][c] = true
	notifMutex.Unlock()

	// Sub kênh Redis của user
	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("user:%d:notifications", userId),
	)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		notifMutex.Lock()
		for conn := range notifClients[userId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(notifClients[userId], conn)
			}
		}
		notifMutex.Unlock()
	}
}
