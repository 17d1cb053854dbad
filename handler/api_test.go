package handler_test

import (
	"bytes"
	"encoding/json"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/router"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Promotion{},
		&model.Edge{},
		&model.Appointment{},
		&model.Notification{},
		&model.PasswordResetToken{},
	))

	prevDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prevDB })

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

func newUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		PublicCode:  uuid.NewString(),
		UserName:    username,
		Email:       username + "@example.com",
		Password:    "x",
		Role:        role,
		DisplayName: username,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newEvent(t *testing.T, db *gorm.DB, organizer *model.User) *model.Event {
	t.Helper()
	event := &model.Event{
		PublicCode:  uuid.NewString(),
		Slug:        "expo-" + uuid.NewString()[:8],
		Title:       "Vietnam Tech Expo",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 0, 5),
		Status:      constants.EVENT_PUBLISHED,
		OrganizerId: organizer.ID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:   user.ID,
		Username: user.UserName,
		Role:     user.Role,
	})
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func TestPromotionLifecycle(t *testing.T) {
	app, db := setupApp(t)
	admin := newUser(t, db, "admin", constants.ROLE_ADMIN)
	organizer := newUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := newEvent(t, db, organizer)

	organizerToken := tokenFor(t, organizer)
	adminToken := tokenFor(t, admin)

	// Tạo gói -> PENDING, endDate = startDate + durationDays
	resp, _ := doJSON(t, app, "POST", "/api/v1/promotion", organizerToken, fiber.Map{
		"eventId":      event.ID,
		"packageType":  "banner",
		"amount":       500.0,
		"durationDays": 7,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var promotion model.Promotion
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&promotion).Error)
	assert.Equal(t, constants.PROMOTION_PENDING, promotion.Status)
	require.NotNil(t, promotion.OrganizerId)
	assert.Equal(t, organizer.ID, *promotion.OrganizerId)
	assert.Nil(t, promotion.ExhibitorId)
	assert.WithinDuration(t, promotion.StartDate.AddDate(0, 0, 7), promotion.EndDate, time.Second)

	statusPath := fmt.Sprintf("/api/v1/promotion/%s/status", promotion.PublicCode)

	// Organizer không tự duyệt được gói của mình
	resp, _ = doJSON(t, app, "PATCH", statusPath, organizerToken, fiber.Map{"status": "APPROVED"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admin duyệt
	resp, _ = doJSON(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// APPROVED -> REJECTED nằm ngoài bảng chuyển đổi
	resp, _ = doJSON(t, app, "PATCH", statusPath, adminToken, fiber.Map{
		"status":          "REJECTED",
		"rejectionReason": "muộn rồi",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, db.First(&promotion, promotion.ID).Error)
	assert.Equal(t, constants.PROMOTION_APPROVED, promotion.Status)
}

func TestRejectPromotionRequiresReason(t *testing.T) {
	app, db := setupApp(t)
	admin := newUser(t, db, "admin", constants.ROLE_ADMIN)
	exhibitor := newUser(t, db, "exhibitor1", constants.ROLE_EXHIBITOR)
	organizer := newUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := newEvent(t, db, organizer)

	resp, _ := doJSON(t, app, "POST", "/api/v1/promotion", tokenFor(t, exhibitor), fiber.Map{
		"eventId":      event.ID,
		"packageType":  "push",
		"amount":       200.0,
		"durationDays": 3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var promotion model.Promotion
	require.NoError(t, db.Where("event_id = ?", event.ID).First(&promotion).Error)
	require.NotNil(t, promotion.ExhibitorId)

	statusPath := fmt.Sprintf("/api/v1/promotion/%s/status", promotion.PublicCode)
	adminToken := tokenFor(t, admin)

	// Từ chối mà không có lý do -> 400, trạng thái giữ nguyên
	resp, body := doJSON(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "REJECTED"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "rejectionReason", body["keyError"])

	require.NoError(t, db.First(&promotion, promotion.ID).Error)
	assert.Equal(t, constants.PROMOTION_PENDING, promotion.Status)
	assert.Nil(t, promotion.RejectionReason)

	// Có lý do -> 200, lý do được lưu
	resp, _ = doJSON(t, app, "PATCH", statusPath, adminToken, fiber.Map{
		"status":          "REJECTED",
		"rejectionReason": "Nội dung banner không phù hợp",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&promotion, promotion.ID).Error)
	assert.Equal(t, constants.PROMOTION_REJECTED, promotion.Status)
	require.NotNil(t, promotion.RejectionReason)
	assert.Equal(t, "Nội dung banner không phù hợp", *promotion.RejectionReason)
}

func TestTrackPromotionMetric(t *testing.T) {
	app, db := setupApp(t)
	organizer := newUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := newEvent(t, db, organizer)

	promotion := model.Promotion{
		PublicCode:   uuid.NewString(),
		PackageType:  "banner",
		OrganizerId:  &organizer.ID,
		EventId:      event.ID,
		Amount:       100,
		DurationDays: 7,
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 0, 7),
		Status:       constants.PROMOTION_ACTIVE,
	}
	require.NoError(t, db.Create(&promotion).Error)

	trackPath := fmt.Sprintf("/api/v1/quang-ba/%s/track", promotion.PublicCode)
	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, "POST", trackPath, "", fiber.Map{"metric": "impressions"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, _ := doJSON(t, app, "POST", trackPath, "", fiber.Map{"metric": "clicks"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed model.Promotion
	require.NoError(t, db.First(&refreshed, promotion.ID).Error)
	assert.Equal(t, int64(3), refreshed.Impressions)
	assert.Equal(t, int64(1), refreshed.Clicks)
	assert.Equal(t, int64(0), refreshed.Conversions)

	// Gói chưa ACTIVE không đếm
	require.NoError(t, db.Model(&refreshed).Update("status", constants.PROMOTION_PENDING).Error)
	resp, _ = doJSON(t, app, "POST", trackPath, "", fiber.Map{"metric": "impressions"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAppointmentFlow(t *testing.T) {
	app, db := setupApp(t)
	attendee := newUser(t, db, "visitor1", constants.ROLE_ATTENDEE)
	exhibitor := newUser(t, db, "exhibitor1", constants.ROLE_EXHIBITOR)
	outsider := newUser(t, db, "exhibitor2", constants.ROLE_EXHIBITOR)
	organizer := newUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := newEvent(t, db, organizer)

	attendeeToken := tokenFor(t, attendee)
	exhibitorToken := tokenFor(t, exhibitor)

	resp, _ := doJSON(t, app, "POST", "/api/v1/lich-hen", attendeeToken, fiber.Map{
		"counterpartyId": exhibitor.ID,
		"eventId":        event.ID,
		"requestedDate":  "2026-09-10",
		"requestedTime":  "14:30",
		"purpose":        "Tư vấn sản phẩm",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var appointment model.Appointment
	require.NoError(t, db.Where("requester_id = ?", attendee.ID).First(&appointment).Error)
	assert.Equal(t, constants.APPOINTMENT_NEW, appointment.Status)
	assert.Equal(t, 30, appointment.DurationMinutes)

	updatePath := "/api/v1/lich-hen/" + appointment.PublicCode

	// Người ngoài cuộc không được đụng vào
	resp, _ = doJSON(t, app, "PUT", updatePath, tokenFor(t, outsider), fiber.Map{"status": "CONTACTED"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Requester không tự xác nhận được
	resp, _ = doJSON(t, app, "PUT", updatePath, attendeeToken, fiber.Map{
		"status":        "CONFIRMED",
		"confirmedDate": "2026-09-10",
		"confirmedTime": "14:30",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Counterparty đánh dấu đã liên hệ
	resp, _ = doJSON(t, app, "PUT", updatePath, exhibitorToken, fiber.Map{"status": "CONTACTED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&appointment, appointment.ID).Error)
	assert.Equal(t, constants.APPOINTMENT_CONTACTED, appointment.Status)
	assert.NotNil(t, appointment.ContactedAt)

	// Xác nhận thiếu giờ -> 400, không đổi trạng thái
	resp, _ = doJSON(t, app, "PUT", updatePath, exhibitorToken, fiber.Map{
		"status":        "CONFIRMED",
		"confirmedDate": "2026-09-11",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.NoError(t, db.First(&appointment, appointment.ID).Error)
	assert.Equal(t, constants.APPOINTMENT_CONTACTED, appointment.Status)
	assert.Nil(t, appointment.ConfirmedDate)

	// Xác nhận đủ ngày + giờ
	resp, _ = doJSON(t, app, "PUT", updatePath, exhibitorToken, fiber.Map{
		"status":        "CONFIRMED",
		"confirmedDate": "2026-09-11",
		"confirmedTime": "09:00",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&appointment, appointment.ID).Error)
	assert.Equal(t, constants.APPOINTMENT_CONFIRMED, appointment.Status)
	require.NotNil(t, appointment.ConfirmedDate)
	require.NotNil(t, appointment.ConfirmedTime)
	assert.Equal(t, "09:00", *appointment.ConfirmedTime)

	// CONFIRMED -> REJECTED ngoài bảng chuyển đổi
	resp, _ = doJSON(t, app, "PUT", updatePath, exhibitorToken, fiber.Map{"status": "REJECTED"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Requester huỷ lịch của mình được
	resp, _ = doJSON(t, app, "PUT", updatePath, attendeeToken, fiber.Map{"status": "CANCELLED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&appointment, appointment.ID).Error)
	assert.Equal(t, constants.APPOINTMENT_CANCELLED, appointment.Status)
	assert.NotNil(t, appointment.CancelledAt)

	// Trạng thái cuối, không chuyển tiếp được nữa
	resp, _ = doJSON(t, app, "PUT", updatePath, exhibitorToken, fiber.Map{"status": "CONTACTED"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAppointmentSelfRequestRejected(t *testing.T) {
	app, db := setupApp(t)
	attendee := newUser(t, db, "visitor1", constants.ROLE_ATTENDEE)
	organizer := newUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := newEvent(t, db, organizer)

	resp, body := doJSON(t, app, "POST", "/api/v1/lich-hen", tokenFor(t, attendee), fiber.Map{
		"counterpartyId": attendee.ID,
		"eventId":        event.ID,
		"requestedDate":  "2026-09-10",
		"requestedTime":  "10:00",
		"purpose":        "Gặp chính mình",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "counterpartyId", body["keyError"])
}

func TestFollowToggleEndpoints(t *testing.T) {
	app, db := setupApp(t)
	attendee := newUser(t, db, "visitor1", constants.ROLE_ATTENDEE)
	exhibitor := newUser(t, db, "exhibitor1", constants.ROLE_EXHIBITOR)

	attendeeToken := tokenFor(t, attendee)
	followPath := "/api/v1/nguoi-dung/" + exhibitor.PublicCode + "/theo-doi"

	resp, body := doJSON(t, app, "POST", followPath, attendeeToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["active"])
	assert.Equal(t, float64(1), data["count"])

	// Toggle lần 2 gỡ follow
	resp, body = doJSON(t, app, "POST", followPath, attendeeToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Equal(t, false, data["active"])
	assert.Equal(t, float64(0), data["count"])

	// Tự follow chính mình -> 409
	selfPath := "/api/v1/nguoi-dung/" + attendee.PublicCode + "/theo-doi"
	resp, _ = doJSON(t, app, "POST", selfPath, attendeeToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Chưa đăng nhập -> 401
	resp, _ = doJSON(t, app, "POST", followPath, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
