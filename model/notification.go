package model

type Notification struct {
	DTO
	UserId  uint   `gorm:"not null;index" json:"userId"`
	Type    string `gorm:"not null" json:"type"` //'promotion','appointment','follow','system'
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	RefCode string `json:"refCode"` // public code của bản ghi liên quan
	IsRead  bool   `gorm:"default:false" json:"isRead"`
}
type Notifications []Notification

type FilterNotification struct {
	Unread *bool `query:"unread"`
	Limit  *int  `query:"limit"`
	Page   *int  `query:"page"`
}
