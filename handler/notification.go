package handler

import (
	"context"
	"encoding/json"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// PublishNotification lưu thông báo và đẩy realtime qua Redis (fire-and-forget).
// Lỗi gửi realtime chỉ log, không chặn flow chính.
func PublishNotification(userId uint, nType, title, message, refCode string) {
	db := database.DB

	notification := model.Notification{
		UserId:  userId,
		Type:    nType,
		Title:   title,
		Message: message,
		RefCode: refCode,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Lỗi lưu thông báo cho user %d: %v", userId, err)
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Lỗi marshal thông báo: %v", err)
		return
	}

	channel := fmt.Sprintf("user:%d:notifications", userId)
	if err := redisClient.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("Lỗi publish thông báo lên Redis: %v", err)
	}
}

// GetMyNotifications thông báo của user hiện tại, mới nhất trước
func GetMyNotifications(c *fiber.Ctx) error {
	db := database.DB

	claim, user := helper.GetInfoUserFromToken(c)
	if user == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	filterInput := new(model.FilterNotification)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Notification{}).Where("user_id = ?", claim.UserId)
	if filterInput.Unread != nil && *filterInput.Unread {
		condition = condition.Where("is_read = ?", false)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var notifications model.Notifications
	condition.Order("created_at DESC").Find(&notifications)
	response := &model.ResponseCustom{
		Rows:       notifications,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// MarkNotificationRead đánh dấu một thông báo đã đọc
func MarkNotificationRead(c *fiber.Ctx) error {
	db := database.DB

	claim, user := helper.GetInfoUserFromToken(c)
	if user == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	notificationId := c.Locals("inputId").(int)
	var notification model.Notification
	if err := db.Where("id = ? AND user_id = ?", notificationId, claim.UserId).First(&notification).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, notification)
}

// MarkAllNotificationsRead đánh dấu toàn bộ thông báo đã đọc
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	db := database.DB

	claim, user := helper.GetInfoUserFromToken(c)
	if user == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	result := db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", claim.UserId, false).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, result.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"marked": result.RowsAffected,
	})
}
