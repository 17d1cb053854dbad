package helper

import (
	"event_manager/constants"
	"event_manager/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSlugDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Event{}))
	return db
}

func newSlugEvent(t *testing.T, db *gorm.DB, organizerId uint, title, eventSlug string) *model.Event {
	t.Helper()
	event := &model.Event{
		PublicCode:  uuid.NewString(),
		Slug:        eventSlug,
		Title:       title,
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 0, 3),
		Status:      constants.EVENT_PUBLISHED,
		OrganizerId: organizerId,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestGenerateUniqueEventSlug(t *testing.T) {
	db := setupSlugDB(t)
	organizer := createTestUser(t, db, "organizer1", constants.ROLE_ORGANIZER)

	assert.Equal(t, "tech-expo", GenerateUniqueEventSlug(db, "Tech Expo", 0))

	newSlugEvent(t, db, organizer.ID, "Tech Expo", "tech-expo")
	assert.Equal(t, "tech-expo-1", GenerateUniqueEventSlug(db, "Tech Expo", 0))

	newSlugEvent(t, db, organizer.ID, "Tech Expo", "tech-expo-1")
	assert.Equal(t, "tech-expo-2", GenerateUniqueEventSlug(db, "Tech Expo", 0))
}

// Lưu lại title không đổi phải giữ nguyên slug cũ, không nhảy hậu tố
func TestGenerateUniqueEventSlugKeepsOwnSlugOnEdit(t *testing.T) {
	db := setupSlugDB(t)
	organizer := createTestUser(t, db, "organizer1", constants.ROLE_ORGANIZER)

	event := newSlugEvent(t, db, organizer.ID, "Tech Expo", "tech-expo")
	assert.Equal(t, "tech-expo", GenerateUniqueEventSlug(db, "Tech Expo", event.ID))

	// Sự kiện khác cùng tên vẫn phải nhận hậu tố
	other := newSlugEvent(t, db, organizer.ID, "Tech Expo", "tech-expo-1")
	assert.Equal(t, "tech-expo-1", GenerateUniqueEventSlug(db, "Tech Expo", other.ID))
	assert.Equal(t, "tech-expo-2", GenerateUniqueEventSlug(db, "Tech Expo", 0))
}
