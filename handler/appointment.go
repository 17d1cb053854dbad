package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestAppointment khách tham quan gửi yêu cầu hẹn gặp exhibitor/speaker/organizer.
// Lịch mới luôn bắt đầu ở trạng thái NEW.
func RequestAppointment(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	appointmentInput, ok := c.Locals("inputRequestAppointment").(model.RequestAppointmentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if appointmentInput.CounterpartyId == claim.UserId {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Không thể tự hẹn với chính mình", errors.New("self reference"), "counterpartyId")
	}

	var counterparty model.User
	if err := db.First(&counterparty, appointmentInput.CounterpartyId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Người nhận lịch hẹn không tồn tại", err, "counterpartyId")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var event model.Event
	if err := db.First(&event, appointmentInput.EventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Sự kiện không tồn tại", err, "eventId")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	requestedDate, _ := utils.ParseDateOnly(appointmentInput.RequestedDate)
	duration := appointmentInput.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	newAppointment := model.Appointment{
		PublicCode:      uuid.NewString(),
		RequesterId:     claim.UserId,
		CounterpartyId:  counterparty.ID,
		EventId:         event.ID,
		RequestedDate:   requestedDate,
		RequestedTime:   appointmentInput.RequestedTime,
		DurationMinutes: duration,
		Purpose:         appointmentInput.Purpose,
		Status:          constants.APPOINTMENT_NEW,
	}

	if err := db.Create(&newAppointment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	go PublishNotification(counterparty.ID, "appointment",
		"Yêu cầu hẹn gặp mới",
		fmt.Sprintf("%s muốn hẹn gặp bạn tại %s", currentUser.DisplayName, event.Title),
		newAppointment.PublicCode)

	return utils.SuccessResponse(c, fiber.StatusCreated, newAppointment)
}

// UpdateAppointment chuyển trạng thái / sửa ghi chú lịch hẹn.
// Quyền gom tại helper.CanActorUpdateAppointment; chuyển đổi theo bảng trạng thái.
// CONFIRMED bắt buộc có đủ confirmedDate và confirmedTime.
func UpdateAppointment(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	updateInput, ok := c.Locals("inputUpdateAppointment").(model.UpdateAppointmentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	code := c.Locals("inputAppointmentCode").(string)

	var appointment model.Appointment
	if err := db.Preload("Requester").Preload("Counterparty").Preload("Event").
		Where("public_code = ?", code).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy lịch hẹn", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.CanActorUpdateAppointment(claim, &appointment, updateInput.Status) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NO_PERMISSION, nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if updateInput.Notes != nil {
		updates["notes"] = *updateInput.Notes
	}

	if updateInput.Status != nil {
		newStatus := *updateInput.Status
		if !helper.CanAppointmentTransition(appointment.Status, newStatus) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s", appointment.Status, newStatus),
				errors.New("invalid transition"))
		}

		switch newStatus {
		case constants.APPOINTMENT_CONFIRMED:
			// Cả hai cùng có giá trị, không chấp nhận lệch nhau
			if updateInput.ConfirmedDate != nil && updateInput.ConfirmedTime != nil {
				confirmedDate, _ := utils.ParseDateOnly(*updateInput.ConfirmedDate)
				updates["confirmed_date"] = confirmedDate
				updates["confirmed_time"] = *updateInput.ConfirmedTime
			} else if appointment.ConfirmedDate == nil || appointment.ConfirmedTime == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
					"Xác nhận lịch hẹn cần đủ ngày và giờ", errors.New("confirmedDate/confirmedTime required"), "confirmedDate")
			}
		case constants.APPOINTMENT_CONTACTED:
			if appointment.ContactedAt == nil {
				updates["contacted_at"] = time.Now()
			}
		case constants.APPOINTMENT_CANCELLED:
			updates["cancelled_at"] = time.Now()
		}
		updates["status"] = newStatus
	}

	if err := db.Model(&appointment).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.Preload("Requester").Preload("Counterparty").Preload("Event").
		Where("public_code = ?", code).First(&appointment)

	if updateInput.Status != nil {
		notifyAppointmentUpdate(claim, &appointment, *updateInput.Status)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, appointment)
}

// notifyAppointmentUpdate báo cho phía còn lại + gửi email xác nhận kèm QR khi CONFIRMED
func notifyAppointmentUpdate(claim model.TokenClaim, appointment *model.Appointment, newStatus string) {
	statusMessages := map[string]string{
		constants.APPOINTMENT_CONTACTED: "Lịch hẹn của bạn đã được liên hệ",
		constants.APPOINTMENT_CONFIRMED: "Lịch hẹn của bạn đã được xác nhận",
		constants.APPOINTMENT_COMPLETED: "Lịch hẹn của bạn đã hoàn tất",
		constants.APPOINTMENT_CANCELLED: "Lịch hẹn của bạn đã bị huỷ",
		constants.APPOINTMENT_REJECTED:  "Lịch hẹn của bạn đã bị từ chối",
	}

	// Báo cho requester trừ khi chính requester thao tác
	if claim.UserId != appointment.RequesterId {
		go PublishNotification(appointment.RequesterId, "appointment",
			"Cập nhật lịch hẹn", statusMessages[newStatus], appointment.PublicCode)
	}
	if claim.UserId != appointment.CounterpartyId && newStatus == constants.APPOINTMENT_CANCELLED {
		go PublishNotification(appointment.CounterpartyId, "appointment",
			"Cập nhật lịch hẹn", "Lịch hẹn với bạn đã bị huỷ", appointment.PublicCode)
	}

	if newStatus == constants.APPOINTMENT_CONFIRMED && appointment.ConfirmedDate != nil && appointment.ConfirmedTime != nil {
		utils.SendAppointmentConfirmationEmail(appointment.Requester.Email, utils.AppointmentConfirmationData{
			AppointmentCode:  appointment.PublicCode,
			EventTitle:       appointment.Event.Title,
			CounterpartyName: appointment.Counterparty.DisplayName,
			ConfirmedSlot:    fmt.Sprintf("%s %s", appointment.ConfirmedDate.Format("02/01/2006"), *appointment.ConfirmedTime),
			DurationMinutes:  appointment.DurationMinutes,
			Purpose:          appointment.Purpose,
		})
	}
}

// GetMyAppointments lịch hẹn của người đang đăng nhập (cả hai phía)
func GetMyAppointments(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	filterInput := new(model.FilterAppointment)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Appointment{}).
		Where("requester_id = ? OR counterparty_id = ?", claim.UserId, claim.UserId)
	condition = applyAppointmentFilter(condition, filterInput)

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var appointments model.Appointments
	condition.Preload("Requester").Preload("Counterparty").Preload("Event").
		Order("created_at DESC").Find(&appointments)
	response := &model.ResponseCustom{
		Rows:       appointments,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetVisitorAppointments admin xem lịch hẹn do khách tham quan gửi
func GetVisitorAppointments(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterAppointment)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	requesterRole := filterInput.RequesterRole
	if requesterRole == "" {
		requesterRole = constants.ROLE_ATTENDEE
	}

	condition := db.Model(&model.Appointment{}).
		Joins("JOIN users ON users.id = appointments.requester_id").
		Where("users.role = ?", requesterRole)
	condition = applyAppointmentFilter(condition, filterInput)

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var appointments model.Appointments
	condition.Preload("Requester").Preload("Counterparty").Preload("Event").
		Order("appointments.created_at DESC").Find(&appointments)
	response := &model.ResponseCustom{
		Rows:       appointments,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func applyAppointmentFilter(condition *gorm.DB, filterInput *model.FilterAppointment) *gorm.DB {
	if filterInput.Status != "" {
		// So khớp bằng, không dùng LIKE để CONTACTED không match CONFIRMED nhầm
		condition = condition.Where("appointments.status = ?", filterInput.Status)
	}
	if filterInput.EventId != nil {
		condition = condition.Where("appointments.event_id = ?", *filterInput.EventId)
	}
	return condition
}

// GetAppointmentByCode chi tiết lịch hẹn, chỉ người trong cuộc hoặc admin xem được
func GetAppointmentByCode(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	code := c.Locals("inputCode").(string)
	var appointment model.Appointment
	if err := db.Preload("Requester").Preload("Counterparty").Preload("Event").
		Where("public_code = ?", code).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy lịch hẹn", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.IsAppointmentParticipant(claim, &appointment) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NO_PERMISSION, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, appointment)
}
