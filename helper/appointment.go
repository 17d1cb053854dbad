package helper

import (
	"event_manager/constants"
	"event_manager/database"
	"event_manager/model"
	"event_manager/utils"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

var appointmentScheduler *cron.Cron

// Máy trạng thái lịch hẹn. COMPLETED/CANCELLED/REJECTED là trạng thái cuối.
var appointmentTransitions = map[string][]string{
	constants.APPOINTMENT_NEW: {
		constants.APPOINTMENT_CONTACTED,
		constants.APPOINTMENT_CONFIRMED,
		constants.APPOINTMENT_CANCELLED,
		constants.APPOINTMENT_REJECTED,
	},
	constants.APPOINTMENT_CONTACTED: {
		constants.APPOINTMENT_CONFIRMED,
		constants.APPOINTMENT_CANCELLED,
		constants.APPOINTMENT_REJECTED,
	},
	constants.APPOINTMENT_CONFIRMED: {
		constants.APPOINTMENT_COMPLETED,
		constants.APPOINTMENT_CANCELLED,
	},
	constants.APPOINTMENT_COMPLETED: {},
	constants.APPOINTMENT_CANCELLED: {},
	constants.APPOINTMENT_REJECTED:  {},
}

func CanAppointmentTransition(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsAppointmentTerminal(status string) bool {
	return len(appointmentTransitions[status]) == 0
}

// CanActorUpdateAppointment quyền cập nhật lịch hẹn gom về một chỗ:
//   - admin: mọi thao tác
//   - counterparty: mọi chuyển trạng thái (CONTACTED/CONFIRMED/REJECTED/COMPLETED/CANCELLED)
//   - requester: chỉ được huỷ lịch của mình hoặc sửa ghi chú
//   - người ngoài: không có quyền
func CanActorUpdateAppointment(claim model.TokenClaim, appointment *model.Appointment, newStatus *string) bool {
	if IsAdmin(claim) {
		return true
	}
	if claim.UserId == appointment.CounterpartyId {
		return true
	}
	if claim.UserId == appointment.RequesterId {
		return newStatus == nil || *newStatus == constants.APPOINTMENT_CANCELLED
	}
	return false
}

// IsAppointmentParticipant requester, counterparty hoặc admin
func IsAppointmentParticipant(claim model.TokenClaim, appointment *model.Appointment) bool {
	return IsAdmin(claim) || claim.UserId == appointment.RequesterId || claim.UserId == appointment.CounterpartyId
}

// autoCompleteAppointments chuyển lịch CONFIRMED đã qua giờ hẹn sang COMPLETED
func autoCompleteAppointments() {
	db := database.DB
	now := time.Now()

	var appointments model.Appointments
	if err := db.Where("status = ? AND confirmed_date IS NOT NULL", constants.APPOINTMENT_CONFIRMED).
		Find(&appointments).Error; err != nil {
		log.Printf("Lỗi quét lịch hẹn: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.ConfirmedDate == nil || appointment.ConfirmedTime == nil {
			continue
		}
		slotEnd := utils.CombineDateTime(*appointment.ConfirmedDate, *appointment.ConfirmedTime).
			Add(time.Duration(appointment.DurationMinutes) * time.Minute)
		if slotEnd.After(now) {
			continue
		}
		if err := db.Model(&appointment).Update("status", constants.APPOINTMENT_COMPLETED).Error; err != nil {
			log.Printf("Lỗi hoàn tất lịch hẹn %s: %v", appointment.PublicCode, err)
		} else {
			log.Printf("Lịch hẹn %s đã hoàn tất (qua giờ hẹn)", appointment.PublicCode)
		}
	}
}

func StartAppointmentScheduler() {
	appointmentScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 15 phút
	_, err := appointmentScheduler.AddFunc("*/15 * * * *", autoCompleteAppointments)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	appointmentScheduler.Start()
	log.Println("Scheduler lịch hẹn đã khởi động (mỗi 15 phút)")
}

func StopAppointmentScheduler() {
	if appointmentScheduler != nil {
		appointmentScheduler.Stop()
		log.Println("Scheduler lịch hẹn đã dừng")
	}
}
