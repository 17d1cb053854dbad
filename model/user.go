package model

import "time"

type User struct {
	DTO
	PublicCode  string `gorm:"unique;size:36" json:"publicCode"`
	UserName    string `gorm:"unique;not null" json:"userName"`
	Email       string `gorm:"unique;not null" json:"email"`
	Password    string `json:"-"`
	Phone       string `json:"phone"`
	Role        string `gorm:"not null;index" json:"role"` // ADMIN, ORGANIZER, EXHIBITOR, SPEAKER, VENUE, ATTENDEE
	DisplayName string `json:"displayName"`
	Company     string `json:"company"`
	Bio         string `gorm:"type:text" json:"bio"`
	AvatarUrl   string `json:"avatarUrl"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	// Bộ đếm denormalize, luôn khớp với bảng edges (cập nhật trong cùng transaction)
	FollowerCount int64 `gorm:"default:0" json:"followerCount"`
	LikeCount     int64 `gorm:"default:0" json:"likeCount"`
}
type Users []User

// PublicProfile các field công khai trả về khi liệt kê follower/following
type PublicProfile struct {
	ID            uint   `json:"id"`
	PublicCode    string `json:"publicCode"`
	UserName      string `json:"userName"`
	DisplayName   string `json:"displayName"`
	Role          string `json:"role"`
	Company       string `json:"company"`
	AvatarUrl     string `json:"avatarUrl"`
	FollowerCount int64  `json:"followerCount"`
	LikeCount     int64  `json:"likeCount"`
}

type RegisterUserInput struct {
	UserName    string `json:"userName" validate:"required,min=3"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone"`
	Role        string `json:"role" validate:"required,oneof=ORGANIZER EXHIBITOR SPEAKER VENUE ATTENDEE"`
	DisplayName string `json:"displayName" validate:"required"`
	Company     string `json:"company"`
}

type EditUserInput struct {
	DisplayName *string `json:"displayName"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Bio         *string `json:"bio"`
	AvatarUrl   *string `json:"avatarUrl"`
}

type FilterUser struct {
	SearchKey string `query:"searchKey"`
	Role      string `query:"role"`
	Active    *bool  `query:"active"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"unique;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}
