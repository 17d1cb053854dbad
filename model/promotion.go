package model

import "time"

type Promotion struct {
	DTO
	PublicCode  string `gorm:"unique;size:36" json:"publicCode"`
	PackageType string `gorm:"not null" json:"packageType"` //'push','email','banner'

	// Chủ sở hữu: đúng một trong hai (organizer hoặc exhibitor)
	OrganizerId *uint `gorm:"index" json:"organizerId,omitempty"`
	Organizer   *User `gorm:"foreignKey:OrganizerId" json:"organizer,omitempty"`
	ExhibitorId *uint `gorm:"index" json:"exhibitorId,omitempty"`
	Exhibitor   *User `gorm:"foreignKey:ExhibitorId" json:"exhibitor,omitempty"`

	EventId uint  `gorm:"not null;index" json:"eventId"`
	Event   Event `gorm:"foreignKey:EventId" json:"event"`

	TargetCategories string    `json:"targetCategories"` // danh sách category cách nhau bởi dấu phẩy
	Amount           float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	DurationDays     int       `gorm:"not null" json:"durationDays"`
	StartDate        time.Time `gorm:"not null" json:"startDate"`
	EndDate          time.Time `gorm:"not null" json:"endDate"`
	Status           string    `gorm:"default:'PENDING';not null;index" json:"status"` // PENDING, APPROVED, REJECTED, ACTIVE, COMPLETED, EXPIRED

	// Bộ đếm chỉ tăng
	Impressions int64 `gorm:"default:0" json:"impressions"`
	Clicks      int64 `gorm:"default:0" json:"clicks"`
	Conversions int64 `gorm:"default:0" json:"conversions"`

	// Chỉ có giá trị khi status = REJECTED
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
type Promotions []Promotion

type CreatePromotionInput struct {
	EventId          uint     `json:"eventId" validate:"required"`
	PackageType      string   `json:"packageType" validate:"required,oneof=push email banner"`
	TargetCategories []string `json:"targetCategories"`
	Amount           float64  `json:"amount" validate:"required,gt=0"`
	DurationDays     int      `json:"durationDays" validate:"required,gt=0"`
}

type UpdatePromotionStatusInput struct {
	Status          string  `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED ACTIVE COMPLETED EXPIRED"`
	RejectionReason *string `json:"rejectionReason"`
}

type FilterPromotion struct {
	Status    string `query:"status"`
	EventId   *uint  `query:"eventId"`
	SearchKey string `query:"searchKey"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}

// PromotionMetricInput tên bộ đếm cần tăng khi ghi nhận tương tác
type PromotionMetricInput struct {
	Metric string `json:"metric" validate:"required,oneof=impressions clicks conversions"`
}
