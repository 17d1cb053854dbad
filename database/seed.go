package database

import (
	"event_manager/constants"
	"event_manager/model"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}
	users := []model.User{
		{UserName: "Administration", Email: "admin@eventhub.vn", Password: HashPassword, IsActive: true, Role: constants.ROLE_ADMIN, DisplayName: "Quản trị viên"},
		{UserName: "demo_organizer", Email: "organizer@eventhub.vn", Password: HashPassword, IsActive: true, Role: constants.ROLE_ORGANIZER, DisplayName: "BTC Demo", Company: "EventHub"},
		{UserName: "demo_exhibitor", Email: "exhibitor@eventhub.vn", Password: HashPassword, IsActive: true, Role: constants.ROLE_EXHIBITOR, DisplayName: "Gian hàng Demo", Company: "EventHub"},
		{UserName: "demo_venue", Email: "venue@eventhub.vn", Password: HashPassword, IsActive: true, Role: constants.ROLE_VENUE, DisplayName: "Địa điểm Demo"},
	}

	for _, user := range users {
		user.PublicCode = uuid.NewString()
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.User{UserName: user.UserName}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.UserName, "error:", err)
		}
	}

	var organizer model.User
	if err := db.Where(model.User{UserName: "demo_organizer"}).First(&organizer).Error; err != nil {
		log.Println("failed to load seed organizer:", err)
		return
	}

	events := []model.Event{
		{
			Title:       "Vietnam Tech Expo 2026",
			Slug:        slug.Make("Vietnam Tech Expo 2026"),
			Description: "Triển lãm công nghệ thường niên",
			Categories:  "technology,startup",
			Location:    "SECC, Quận 7, TP.HCM",
			StartDate:   parseDate("2026-10-15"),
			EndDate:     parseDate("2026-10-18"),
			Status:      constants.EVENT_PUBLISHED,
			OrganizerId: organizer.ID,
		},
	}
	for _, event := range events {
		event.PublicCode = uuid.NewString()
		if err := db.Where(model.Event{Slug: event.Slug}).FirstOrCreate(&event).Error; err != nil {
			log.Println("failed to seed data for event:", event.Title, "error:", err)
		}
	}
}
