package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePromotion tạo gói quảng bá mới, trạng thái PENDING chờ admin duyệt.
// Chủ sở hữu là organizer hoặc exhibitor đang đăng nhập (đúng một trong hai).
func CreatePromotion(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}
	if claim.Role != constants.ROLE_ORGANIZER && claim.Role != constants.ROLE_EXHIBITOR {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Chỉ ban tổ chức hoặc gian hàng được tạo gói quảng bá", nil)
	}

	promotionInput, ok := c.Locals("inputCreatePromotion").(model.CreatePromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var event model.Event
	if err := db.First(&event, promotionInput.EventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Sự kiện không tồn tại", err, "eventId")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	now := time.Now()
	newPromotion := model.Promotion{
		PublicCode:       uuid.NewString(),
		PackageType:      promotionInput.PackageType,
		EventId:          event.ID,
		TargetCategories: strings.Join(promotionInput.TargetCategories, ","),
		Amount:           promotionInput.Amount,
		DurationDays:     promotionInput.DurationDays,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, promotionInput.DurationDays),
		Status:           constants.PROMOTION_PENDING,
	}
	// Đúng một trong organizerId/exhibitorId được set
	if claim.Role == constants.ROLE_ORGANIZER {
		newPromotion.OrganizerId = &currentUser.ID
	} else {
		newPromotion.ExhibitorId = &currentUser.ID
	}

	if err := db.Create(&newPromotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newPromotion)
}

// UpdatePromotionStatus chuyển trạng thái theo bảng chuyển đổi:
// PENDING -> APPROVED/REJECTED, APPROVED -> ACTIVE/EXPIRED, ACTIVE -> COMPLETED/EXPIRED.
// Chuyển đổi ngoài bảng bị từ chối thay vì chấp nhận ngầm.
func UpdatePromotionStatus(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	statusInput, ok := c.Locals("inputUpdatePromotionStatus").(model.UpdatePromotionStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	code := c.Locals("inputPromotionCode").(string)

	var promotion model.Promotion
	if err := db.Preload("Organizer").Preload("Exhibitor").Preload("Event").
		Where("public_code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy gói quảng bá", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.CanActorTransitionPromotion(claim, &promotion, statusInput.Status) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NO_PERMISSION, nil)
	}
	if !helper.CanPromotionTransition(promotion.Status, statusInput.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s", promotion.Status, statusInput.Status),
			errors.New("invalid transition"))
	}

	updates := map[string]interface{}{
		"status":     statusInput.Status,
		"updated_at": time.Now(),
	}
	if statusInput.Status == constants.PROMOTION_REJECTED {
		updates["rejection_reason"] = statusInput.RejectionReason
	}

	if err := db.Model(&promotion).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	// Báo cho chủ sở hữu (async): thông báo trong app + email
	owner := helper.PromotionOwner(&promotion)
	if owner != nil && owner.ID != claim.UserId {
		go PublishNotification(owner.ID, "promotion",
			"Cập nhật gói quảng bá",
			fmt.Sprintf("Gói quảng bá %s cho sự kiện %s chuyển sang %s", promotion.PackageType, promotion.Event.Title, statusInput.Status),
			promotion.PublicCode)

		rejectionReason := ""
		if statusInput.RejectionReason != nil {
			rejectionReason = *statusInput.RejectionReason
		}
		utils.SendPromotionStatusEmail(owner.Email, utils.PromotionStatusData{
			PromotionCode:   promotion.PublicCode,
			EventTitle:      promotion.Event.Title,
			PackageType:     promotion.PackageType,
			Status:          statusInput.Status,
			RejectionReason: rejectionReason,
		})
	}

	db.Preload("Organizer").Preload("Exhibitor").Preload("Event").Where("public_code = ?", code).First(&promotion)
	return utils.SuccessResponse(c, fiber.StatusOK, promotionResponse(&promotion))
}

// promotionResponse join chủ sở hữu đã normalize (organizer ?? exhibitor) + tóm tắt sự kiện
func promotionResponse(promotion *model.Promotion) fiber.Map {
	var owner *model.PublicProfile
	if u := helper.PromotionOwner(promotion); u != nil {
		owner = &model.PublicProfile{
			ID:            u.ID,
			PublicCode:    u.PublicCode,
			UserName:      u.UserName,
			DisplayName:   u.DisplayName,
			Role:          u.Role,
			Company:       u.Company,
			AvatarUrl:     u.AvatarUrl,
			FollowerCount: u.FollowerCount,
			LikeCount:     u.LikeCount,
		}
	}

	return fiber.Map{
		"promotion": promotion,
		"owner":     owner,
		"event": model.EventSummary{
			ID:         promotion.Event.ID,
			PublicCode: promotion.Event.PublicCode,
			Slug:       promotion.Event.Slug,
			Title:      promotion.Event.Title,
			StartDate:  promotion.Event.StartDate,
			EndDate:    promotion.Event.EndDate,
			Status:     promotion.Event.Status,
		},
	}
}

// GetPromotions admin xem tất cả, organizer/exhibitor chỉ xem gói của mình
func GetPromotions(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	filterInput := new(model.FilterPromotion)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Promotion{})
	if !helper.IsAdmin(claim) {
		condition = condition.Where("organizer_id = ? OR exhibitor_id = ?", claim.UserId, claim.UserId)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.EventId != nil {
		condition = condition.Where("event_id = ?", *filterInput.EventId)
	}
	if filterInput.SearchKey != "" {
		condition = condition.Where("LOWER(package_type) LIKE ?", "%"+strings.ToLower(filterInput.SearchKey)+"%")
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var promotions model.Promotions
	condition.Preload("Organizer").Preload("Exhibitor").Preload("Event").
		Order("created_at DESC").Find(&promotions)
	response := &model.ResponseCustom{
		Rows:       promotions,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetPromotionByCode(c *fiber.Ctx) error {
	db := database.DB

	code := c.Locals("inputCode").(string)
	var promotion model.Promotion
	if err := db.Preload("Organizer").Preload("Exhibitor").Preload("Event").
		Where("public_code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy gói quảng bá", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotionResponse(&promotion))
}

// TrackPromotionMetric ghi nhận impression/click/conversion, bộ đếm chỉ tăng.
// Endpoint công khai, tăng bằng biểu thức SQL để không mất đếm khi gọi đồng thời.
func TrackPromotionMetric(c *fiber.Ctx) error {
	db := database.DB

	metricInput, ok := c.Locals("inputPromotionMetric").(model.PromotionMetricInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	code := c.Locals("inputPromotionCode").(string)

	column := metricInput.Metric // đã validate oneof=impressions clicks conversions
	result := db.Model(&model.Promotion{}).
		Where("public_code = ? AND status = ?", code, constants.PROMOTION_ACTIVE).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Gói quảng bá không tồn tại hoặc chưa kích hoạt", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"tracked": column})
}

// GetPromotionSummary thống kê cho chủ sở hữu / admin
func GetPromotionSummary(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	type summaryRow struct {
		Status      string  `json:"status"`
		Total       int64   `json:"total"`
		Amount      float64 `json:"amount"`
		Impressions int64   `json:"impressions"`
		Clicks      int64   `json:"clicks"`
		Conversions int64   `json:"conversions"`
	}

	condition := db.Model(&model.Promotion{})
	if !helper.IsAdmin(claim) {
		condition = condition.Where("organizer_id = ? OR exhibitor_id = ?", claim.UserId, claim.UserId)
	}

	var rows []summaryRow
	if err := condition.
		Select("status, COUNT(*) as total, SUM(amount) as amount, SUM(impressions) as impressions, SUM(clicks) as clicks, SUM(conversions) as conversions").
		Group("status").
		Scan(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// So sánh chi tiêu 7 ngày gần nhất với 7 ngày trước đó
	spendCondition := func(from, to time.Time) *gorm.DB {
		q := db.Model(&model.Promotion{}).Where("created_at >= ? AND created_at < ?", from, to)
		if !helper.IsAdmin(claim) {
			q = q.Where("organizer_id = ? OR exhibitor_id = ?", claim.UserId, claim.UserId)
		}
		return q
	}
	now := time.Now()
	var currentSpend, previousSpend float64
	spendCondition(now.AddDate(0, 0, -7), now).Select("COALESCE(SUM(amount), 0)").Scan(&currentSpend)
	spendCondition(now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)).Select("COALESCE(SUM(amount), 0)").Scan(&previousSpend)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"byStatus":    rows,
		"weeklySpend": currentSpend,
		"spendGrowth": utils.CalculateGrowth(currentSpend, previousSpend),
	})
}
