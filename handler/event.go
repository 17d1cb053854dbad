package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// CreateEvent organizer tạo sự kiện mới, trạng thái DRAFT
func CreateEvent(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	eventInput, ok := c.Locals("inputCreateEvent").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if eventInput.VenueId != nil {
		var venue model.User
		if err := db.Where("id = ? AND role = ?", *eventInput.VenueId, constants.ROLE_VENUE).First(&venue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Địa điểm không tồn tại", err, "venueId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	newEvent := model.Event{}
	if err := copier.Copy(&newEvent, &eventInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newEvent.PublicCode = uuid.NewString()
	newEvent.Slug = helper.GenerateUniqueEventSlug(db, eventInput.Title, 0)
	newEvent.StartDate, _ = utils.ParseDateOnly(eventInput.StartDate)
	newEvent.EndDate, _ = utils.ParseDateOnly(eventInput.EndDate)
	newEvent.Status = constants.EVENT_DRAFT
	newEvent.OrganizerId = claim.UserId

	if err := db.Create(&newEvent).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newEvent)
}

// EditEvent chỉ organizer chủ sự kiện hoặc admin được sửa
func EditEvent(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	editInput, ok := c.Locals("inputEditEvent").(model.EditEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	code := c.Locals("inputEventCode").(string)

	var event model.Event
	if err := db.Where("public_code = ?", code).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy sự kiện", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.IsAdmin(claim) && event.OrganizerId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NO_PERMISSION, nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if editInput.Title != nil {
		updates["title"] = *editInput.Title
		updates["slug"] = helper.GenerateUniqueEventSlug(db, *editInput.Title, event.ID)
	}
	if editInput.Description != nil {
		updates["description"] = *editInput.Description
	}
	if editInput.Categories != nil {
		updates["categories"] = *editInput.Categories
	}
	if editInput.Location != nil {
		updates["location"] = *editInput.Location
	}
	if editInput.StartDate != nil {
		startDate, err := utils.ParseDateOnly(*editInput.StartDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày bắt đầu không hợp lệ (YYYY-MM-DD)", err, "startDate")
		}
		updates["start_date"] = startDate
	}
	if editInput.EndDate != nil {
		endDate, err := utils.ParseDateOnly(*editInput.EndDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày kết thúc không hợp lệ (YYYY-MM-DD)", err, "endDate")
		}
		updates["end_date"] = endDate
	}
	if editInput.Status != nil {
		updates["status"] = *editInput.Status
	}
	if editInput.VenueId != nil {
		updates["venue_id"] = *editInput.VenueId
	}

	if err := db.Model(&event).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.Preload("Organizer").Preload("Venue").Where("public_code = ?", code).First(&event)
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

// GetEvents danh sách công khai, mặc định chỉ sự kiện PUBLISHED
func GetEvents(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterEvent)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Event{})
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	} else {
		condition = condition.Where("status = ?", constants.EVENT_PUBLISHED)
	}
	if filterInput.SearchKey != "" {
		searchKey := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ?", searchKey, searchKey)
	}
	if filterInput.Category != "" {
		condition = condition.Where("LOWER(categories) LIKE ?", "%"+strings.ToLower(filterInput.Category)+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var events model.Events
	condition.Preload("Organizer").Preload("Venue").Order("start_date ASC").Find(&events)
	response := &model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetMyEvents sự kiện của organizer đang đăng nhập (mọi trạng thái)
func GetMyEvents(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	filterInput := new(model.FilterEvent)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Event{}).Where("organizer_id = ?", claim.UserId)
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var events model.Events
	condition.Preload("Venue").Order("created_at DESC").Find(&events)
	response := &model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetEventBySlug chi tiết sự kiện công khai theo slug
func GetEventBySlug(c *fiber.Ctx) error {
	db := database.DB

	eventSlug := c.Params("slug")
	if eventSlug == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("slug invalid"))
	}

	var event model.Event
	if err := db.Preload("Organizer").Preload("Venue").
		Where("slug = ?", eventSlug).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy sự kiện", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

// DeleteEvents admin xoá mềm nhiều sự kiện
func DeleteEvents(c *fiber.Ctx) error {
	db := database.DB

	deleteInput, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	result := db.Delete(&model.Event{}, deleteInput.IDs)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": result.RowsAffected})
}
