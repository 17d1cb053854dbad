package model

import "time"

type Event struct {
	DTO
	PublicCode  string    `gorm:"unique;size:36" json:"publicCode"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Categories  string    `json:"categories"` // danh sách category cách nhau bởi dấu phẩy
	Location    string    `json:"location"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	Status      string    `gorm:"default:'DRAFT';not null" json:"status"` // DRAFT, PUBLISHED, CANCELLED

	OrganizerId uint  `gorm:"not null;index" json:"organizerId"`
	Organizer   User  `gorm:"foreignKey:OrganizerId" json:"organizer"`
	VenueId     *uint `json:"venueId,omitempty"`
	Venue       *User `gorm:"foreignKey:VenueId" json:"venue,omitempty"`
}
type Events []Event

// EventSummary bản rút gọn của sự kiện, dùng khi join vào promotion/lịch hẹn
type EventSummary struct {
	ID         uint      `json:"id"`
	PublicCode string    `json:"publicCode"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
}

type CreateEventInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Categories  string `json:"categories"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate" validate:"required"` // YYYY-MM-DD
	EndDate     string `json:"endDate" validate:"required"`
	VenueId     *uint  `json:"venueId"`
}

type EditEventInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Categories  *string `json:"categories"`
	Location    *string `json:"location"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
	VenueId     *uint   `json:"venueId"`
}

type FilterEvent struct {
	SearchKey string `query:"searchKey"`
	Status    string `query:"status"`
	Category  string `query:"category"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}
