package helper

import (
	"event_manager/constants"
	"event_manager/database"
	"event_manager/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPromotionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Event{}, &model.Promotion{}))
	return db
}

func TestCanPromotionTransition(t *testing.T) {
	valid := [][2]string{
		{constants.PROMOTION_PENDING, constants.PROMOTION_APPROVED},
		{constants.PROMOTION_PENDING, constants.PROMOTION_REJECTED},
		{constants.PROMOTION_APPROVED, constants.PROMOTION_ACTIVE},
		{constants.PROMOTION_APPROVED, constants.PROMOTION_EXPIRED},
		{constants.PROMOTION_ACTIVE, constants.PROMOTION_COMPLETED},
		{constants.PROMOTION_ACTIVE, constants.PROMOTION_EXPIRED},
	}
	for _, pair := range valid {
		assert.True(t, CanPromotionTransition(pair[0], pair[1]), "%s -> %s phải hợp lệ", pair[0], pair[1])
	}

	invalid := [][2]string{
		{constants.PROMOTION_PENDING, constants.PROMOTION_ACTIVE},
		{constants.PROMOTION_PENDING, constants.PROMOTION_COMPLETED},
		{constants.PROMOTION_APPROVED, constants.PROMOTION_REJECTED},
		{constants.PROMOTION_APPROVED, constants.PROMOTION_COMPLETED},
		{constants.PROMOTION_ACTIVE, constants.PROMOTION_PENDING},
		{constants.PROMOTION_REJECTED, constants.PROMOTION_APPROVED},
		{constants.PROMOTION_COMPLETED, constants.PROMOTION_ACTIVE},
		{constants.PROMOTION_EXPIRED, constants.PROMOTION_ACTIVE},
		{constants.PROMOTION_ACTIVE, constants.PROMOTION_ACTIVE},
	}
	for _, pair := range invalid {
		assert.False(t, CanPromotionTransition(pair[0], pair[1]), "%s -> %s phải bị từ chối", pair[0], pair[1])
	}
}

func TestIsPromotionTerminal(t *testing.T) {
	assert.True(t, IsPromotionTerminal(constants.PROMOTION_REJECTED))
	assert.True(t, IsPromotionTerminal(constants.PROMOTION_COMPLETED))
	assert.True(t, IsPromotionTerminal(constants.PROMOTION_EXPIRED))
	assert.False(t, IsPromotionTerminal(constants.PROMOTION_PENDING))
	assert.False(t, IsPromotionTerminal(constants.PROMOTION_APPROVED))
	assert.False(t, IsPromotionTerminal(constants.PROMOTION_ACTIVE))
}

func TestPromotionOwnerNormalized(t *testing.T) {
	organizerId := uint(7)
	exhibitorId := uint(9)

	byOrganizer := &model.Promotion{OrganizerId: &organizerId}
	assert.Equal(t, organizerId, PromotionOwnerId(byOrganizer))

	byExhibitor := &model.Promotion{ExhibitorId: &exhibitorId}
	assert.Equal(t, exhibitorId, PromotionOwnerId(byExhibitor))

	assert.Equal(t, uint(0), PromotionOwnerId(&model.Promotion{}))
}

func TestCanActorTransitionPromotion(t *testing.T) {
	ownerId := uint(5)
	promotion := &model.Promotion{OrganizerId: &ownerId, Status: constants.PROMOTION_ACTIVE}

	admin := model.TokenClaim{UserId: 1, Role: constants.ROLE_ADMIN}
	owner := model.TokenClaim{UserId: ownerId, Role: constants.ROLE_ORGANIZER}
	outsider := model.TokenClaim{UserId: 99, Role: constants.ROLE_ORGANIZER}

	// Admin làm được mọi thao tác
	assert.True(t, CanActorTransitionPromotion(admin, promotion, constants.PROMOTION_APPROVED))
	assert.True(t, CanActorTransitionPromotion(admin, promotion, constants.PROMOTION_REJECTED))
	assert.True(t, CanActorTransitionPromotion(admin, promotion, constants.PROMOTION_EXPIRED))

	// Chủ sở hữu chỉ được kết thúc sớm gói của mình
	assert.True(t, CanActorTransitionPromotion(owner, promotion, constants.PROMOTION_COMPLETED))
	assert.False(t, CanActorTransitionPromotion(owner, promotion, constants.PROMOTION_APPROVED))
	assert.False(t, CanActorTransitionPromotion(owner, promotion, constants.PROMOTION_REJECTED))

	// Người ngoài không có quyền gì
	assert.False(t, CanActorTransitionPromotion(outsider, promotion, constants.PROMOTION_COMPLETED))
}

func TestAutoUpdatePromotionStatus(t *testing.T) {
	db := setupPromotionDB(t)
	prevDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prevDB })

	organizer := createTestUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	event := model.Event{
		PublicCode:  uuid.NewString(),
		Slug:        "expo-test",
		Title:       "Expo Test",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 0, 3),
		Status:      constants.EVENT_PUBLISHED,
		OrganizerId: organizer.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	now := time.Now()
	newPromotion := func(status string, start, end time.Time) *model.Promotion {
		p := &model.Promotion{
			PublicCode:   uuid.NewString(),
			PackageType:  "banner",
			OrganizerId:  &organizer.ID,
			EventId:      event.ID,
			Amount:       100,
			DurationDays: 7,
			StartDate:    start,
			EndDate:      end,
			Status:       status,
		}
		require.NoError(t, db.Create(p).Error)
		return p
	}

	running := newPromotion(constants.PROMOTION_APPROVED, now.AddDate(0, 0, -1), now.AddDate(0, 0, 6))
	stale := newPromotion(constants.PROMOTION_APPROVED, now.AddDate(0, 0, -10), now.AddDate(0, 0, -3))
	finished := newPromotion(constants.PROMOTION_ACTIVE, now.AddDate(0, 0, -10), now.AddDate(0, 0, -3))
	pending := newPromotion(constants.PROMOTION_PENDING, now, now.AddDate(0, 0, 7))

	AutoUpdatePromotionStatus()

	status := func(id uint) string {
		var p model.Promotion
		require.NoError(t, db.First(&p, id).Error)
		return p.Status
	}
	assert.Equal(t, constants.PROMOTION_ACTIVE, status(running.ID))
	assert.Equal(t, constants.PROMOTION_EXPIRED, status(stale.ID))
	assert.Equal(t, constants.PROMOTION_EXPIRED, status(finished.ID))
	assert.Equal(t, constants.PROMOTION_PENDING, status(pending.ID))
}
