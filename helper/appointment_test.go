package helper

import (
	"event_manager/constants"
	"event_manager/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAppointmentTransition(t *testing.T) {
	valid := [][2]string{
		{constants.APPOINTMENT_NEW, constants.APPOINTMENT_CONTACTED},
		{constants.APPOINTMENT_NEW, constants.APPOINTMENT_CONFIRMED},
		{constants.APPOINTMENT_NEW, constants.APPOINTMENT_CANCELLED},
		{constants.APPOINTMENT_NEW, constants.APPOINTMENT_REJECTED},
		{constants.APPOINTMENT_CONTACTED, constants.APPOINTMENT_CONFIRMED},
		{constants.APPOINTMENT_CONTACTED, constants.APPOINTMENT_CANCELLED},
		{constants.APPOINTMENT_CONTACTED, constants.APPOINTMENT_REJECTED},
		{constants.APPOINTMENT_CONFIRMED, constants.APPOINTMENT_COMPLETED},
		{constants.APPOINTMENT_CONFIRMED, constants.APPOINTMENT_CANCELLED},
	}
	for _, pair := range valid {
		assert.True(t, CanAppointmentTransition(pair[0], pair[1]), "%s -> %s phải hợp lệ", pair[0], pair[1])
	}

	invalid := [][2]string{
		{constants.APPOINTMENT_NEW, constants.APPOINTMENT_COMPLETED},
		{constants.APPOINTMENT_CONTACTED, constants.APPOINTMENT_NEW},
		{constants.APPOINTMENT_CONTACTED, constants.APPOINTMENT_COMPLETED},
		{constants.APPOINTMENT_CONFIRMED, constants.APPOINTMENT_REJECTED},
		{constants.APPOINTMENT_CONFIRMED, constants.APPOINTMENT_CONTACTED},
		{constants.APPOINTMENT_COMPLETED, constants.APPOINTMENT_CANCELLED},
		{constants.APPOINTMENT_CANCELLED, constants.APPOINTMENT_NEW},
		{constants.APPOINTMENT_REJECTED, constants.APPOINTMENT_CONFIRMED},
	}
	for _, pair := range invalid {
		assert.False(t, CanAppointmentTransition(pair[0], pair[1]), "%s -> %s phải bị từ chối", pair[0], pair[1])
	}
}

func TestIsAppointmentTerminal(t *testing.T) {
	assert.True(t, IsAppointmentTerminal(constants.APPOINTMENT_COMPLETED))
	assert.True(t, IsAppointmentTerminal(constants.APPOINTMENT_CANCELLED))
	assert.True(t, IsAppointmentTerminal(constants.APPOINTMENT_REJECTED))
	assert.False(t, IsAppointmentTerminal(constants.APPOINTMENT_NEW))
	assert.False(t, IsAppointmentTerminal(constants.APPOINTMENT_CONTACTED))
	assert.False(t, IsAppointmentTerminal(constants.APPOINTMENT_CONFIRMED))
}

func TestCanActorUpdateAppointment(t *testing.T) {
	appointment := &model.Appointment{RequesterId: 10, CounterpartyId: 20, Status: constants.APPOINTMENT_NEW}

	admin := model.TokenClaim{UserId: 1, Role: constants.ROLE_ADMIN}
	requester := model.TokenClaim{UserId: 10, Role: constants.ROLE_ATTENDEE}
	counterparty := model.TokenClaim{UserId: 20, Role: constants.ROLE_EXHIBITOR}
	outsider := model.TokenClaim{UserId: 30, Role: constants.ROLE_EXHIBITOR}

	confirmed := constants.APPOINTMENT_CONFIRMED
	cancelled := constants.APPOINTMENT_CANCELLED

	// Counterparty và admin chuyển được mọi trạng thái
	assert.True(t, CanActorUpdateAppointment(counterparty, appointment, &confirmed))
	assert.True(t, CanActorUpdateAppointment(admin, appointment, &confirmed))

	// Requester chỉ huỷ lịch của chính mình hoặc sửa ghi chú (status nil)
	assert.True(t, CanActorUpdateAppointment(requester, appointment, &cancelled))
	assert.True(t, CanActorUpdateAppointment(requester, appointment, nil))
	assert.False(t, CanActorUpdateAppointment(requester, appointment, &confirmed))

	// Người ngoài cuộc không có quyền gì kể cả sửa ghi chú
	assert.False(t, CanActorUpdateAppointment(outsider, appointment, &confirmed))
	assert.False(t, CanActorUpdateAppointment(outsider, appointment, nil))
}

func TestIsAppointmentParticipant(t *testing.T) {
	appointment := &model.Appointment{RequesterId: 10, CounterpartyId: 20}

	assert.True(t, IsAppointmentParticipant(model.TokenClaim{UserId: 10}, appointment))
	assert.True(t, IsAppointmentParticipant(model.TokenClaim{UserId: 20}, appointment))
	assert.True(t, IsAppointmentParticipant(model.TokenClaim{UserId: 1, Role: constants.ROLE_ADMIN}, appointment))
	assert.False(t, IsAppointmentParticipant(model.TokenClaim{UserId: 30}, appointment))
}
