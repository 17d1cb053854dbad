package model

import "time"

type Appointment struct {
	DTO
	PublicCode string `gorm:"unique;size:36" json:"publicCode"`

	RequesterId    uint  `gorm:"not null;index" json:"requesterId"`
	Requester      User  `gorm:"foreignKey:RequesterId" json:"requester"`
	CounterpartyId uint  `gorm:"not null;index" json:"counterpartyId"`
	Counterparty   User  `gorm:"foreignKey:CounterpartyId" json:"counterparty"`
	EventId        uint  `gorm:"not null;index" json:"eventId"`
	Event          Event `gorm:"foreignKey:EventId" json:"event"`

	RequestedDate   time.Time `gorm:"not null" json:"requestedDate"`
	RequestedTime   string    `gorm:"not null" json:"requestedTime"` // HH:MM
	DurationMinutes int       `gorm:"default:30" json:"durationMinutes"`
	Purpose         string    `gorm:"not null" json:"purpose"`
	Notes           string    `gorm:"type:text" json:"notes"`

	// Cả hai cùng null hoặc cùng có giá trị; chỉ set khi CONFIRMED/COMPLETED
	ConfirmedDate *time.Time `json:"confirmedDate,omitempty"`
	ConfirmedTime *string    `json:"confirmedTime,omitempty"`

	Status      string     `gorm:"default:'NEW';not null;index" json:"status"` // NEW, CONTACTED, CONFIRMED, COMPLETED, CANCELLED, REJECTED
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}
type Appointments []Appointment

type RequestAppointmentInput struct {
	CounterpartyId  uint   `json:"counterpartyId" validate:"required"`
	EventId         uint   `json:"eventId" validate:"required"`
	RequestedDate   string `json:"requestedDate" validate:"required"` // YYYY-MM-DD
	RequestedTime   string `json:"requestedTime" validate:"required"` // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	Purpose         string `json:"purpose" validate:"required"`
}

type UpdateAppointmentInput struct {
	Status        *string `json:"status" validate:"omitempty,oneof=NEW CONTACTED CONFIRMED COMPLETED CANCELLED REJECTED"`
	ConfirmedDate *string `json:"confirmedDate"` // YYYY-MM-DD
	ConfirmedTime *string `json:"confirmedTime"` // HH:MM
	Notes         *string `json:"notes"`
}

type FilterAppointment struct {
	Status        string `query:"status"`
	EventId       *uint  `query:"eventId"`
	RequesterRole string `query:"requesterRole"`
	Limit         *int   `query:"limit"`
	Page          *int   `query:"page"`
}
