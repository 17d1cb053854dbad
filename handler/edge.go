package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func toggleEdgeHandler(c *fiber.Ctx, kind string) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	code := c.Locals("inputCode").(string)
	var target model.User
	if err := db.Where("public_code = ?", code).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	result, err := helper.ToggleEdge(db, claim.UserId, target.ID, kind)
	if err != nil {
		if errors.Is(err, helper.ErrSelfReference) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Không thể tự theo dõi hoặc thích chính mình", err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Thông báo cho target khi có người theo dõi mới (không báo khi bỏ theo dõi)
	if result.Active && kind == constants.EDGE_FOLLOW {
		go PublishNotification(target.ID, "follow",
			"Người theo dõi mới",
			fmt.Sprintf("%s đã theo dõi bạn", currentUser.DisplayName),
			currentUser.PublicCode)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

// ToggleFollow bật/tắt theo dõi một người dùng
func ToggleFollow(c *fiber.Ctx) error {
	return toggleEdgeHandler(c, constants.EDGE_FOLLOW)
}

// ToggleLike bật/tắt thích một profile (gian hàng, diễn giả...)
func ToggleLike(c *fiber.Ctx) error {
	return toggleEdgeHandler(c, constants.EDGE_LIKE)
}

func listEdgesHandler(c *fiber.Ctx, kind string, incoming bool) error {
	db := database.DB

	code := c.Locals("inputCode").(string)
	var user model.User
	if err := db.Where("public_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	filterInput := new(model.FilterEdge)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	profiles, totalCount, err := helper.ListEdges(db, user.ID, kind, incoming, filterInput.Limit, filterInput.Page)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       profiles,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetFollowers ai đang theo dõi user này (mới nhất trước)
func GetFollowers(c *fiber.Ctx) error {
	return listEdgesHandler(c, constants.EDGE_FOLLOW, true)
}

// GetFollowing user này đang theo dõi ai
func GetFollowing(c *fiber.Ctx) error {
	return listEdgesHandler(c, constants.EDGE_FOLLOW, false)
}

// GetLikers ai đã thích profile này
func GetLikers(c *fiber.Ctx) error {
	return listEdgesHandler(c, constants.EDGE_LIKE, true)
}
