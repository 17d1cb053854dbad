package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// GetUsers danh sách người dùng cho admin, lọc theo vai trò / trạng thái / từ khoá
func GetUsers(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterUser)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}
	condition := db.Model(&model.User{})
	if filterInput.SearchKey != "" {
		searchKey := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(user_name) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", searchKey, searchKey, searchKey)
	}
	if filterInput.Role != "" {
		condition = condition.Where("role = ?", filterInput.Role)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var users model.Users
	condition.Order("id ASC").Find(&users)
	response := &model.ResponseCustom{
		Rows:       users,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetUserByCode profile công khai theo public code
func GetUserByCode(c *fiber.Ctx) error {
	code := c.Locals("inputCode").(string)

	var user model.User
	if err := database.DB.Where("public_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	profile := model.PublicProfile{
		ID:            user.ID,
		PublicCode:    user.PublicCode,
		UserName:      user.UserName,
		DisplayName:   user.DisplayName,
		Role:          user.Role,
		Company:       user.Company,
		AvatarUrl:     user.AvatarUrl,
		FollowerCount: user.FollowerCount,
		LikeCount:     user.LikeCount,
	}

	// Người đang đăng nhập (nếu có) -> kèm trạng thái follow/like hiện tại
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId != 0 && claim.UserId != user.ID {
		following, _ := helper.HasEdge(database.DB, claim.UserId, user.ID, constants.EDGE_FOLLOW)
		liked, _ := helper.HasEdge(database.DB, claim.UserId, user.ID, constants.EDGE_LIKE)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"profile":   profile,
			"following": following,
			"liked":     liked,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"profile": profile})
}

func EditProfile(c *fiber.Ctx) error {
	db := database.DB
	claim, user := helper.GetInfoUserFromToken(c)
	if user == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	editInput, ok := c.Locals("inputEditProfile").(model.EditUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	copier.CopyWithOption(user, &editInput, copier.Option{IgnoreEmpty: true})

	if err := db.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// ActiveUser admin khoá / mở khoá tài khoản
func ActiveUser(c *fiber.Ctx) error {
	db := database.DB

	userId := c.Locals("inputId").(int)
	isActive := c.Params("isActive") == "true"

	var user model.User
	if err := db.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := db.Model(&user).Update("is_active", isActive).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
