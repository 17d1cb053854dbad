package helper

import (
	"event_manager/constants"
	"event_manager/model"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEdgeDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Edge{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
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

func TestToggleEdgeCreateThenRemove(t *testing.T) {
	db := setupEdgeDB(t)
	source := createTestUser(t, db, "attendee1", constants.ROLE_ATTENDEE)
	target := createTestUser(t, db, "exhibitor1", constants.ROLE_EXHIBITOR)

	result, err := ToggleEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, int64(1), result.Count)

	exists, err := HasEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	assert.True(t, exists)

	// Toggle lần 2 trên cùng cặp -> gỡ cạnh, bộ đếm về như cũ
	result, err = ToggleEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, int64(0), result.Count)

	exists, err = HasEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	assert.False(t, exists)

	var refreshed model.User
	require.NoError(t, db.First(&refreshed, target.ID).Error)
	assert.Equal(t, int64(0), refreshed.FollowerCount)
}

func TestToggleEdgeKindsAreIndependent(t *testing.T) {
	db := setupEdgeDB(t)
	source := createTestUser(t, db, "attendee1", constants.ROLE_ATTENDEE)
	target := createTestUser(t, db, "speaker1", constants.ROLE_SPEAKER)

	_, err := ToggleEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	likeResult, err := ToggleEdge(db, source.ID, target.ID, constants.EDGE_LIKE)
	require.NoError(t, err)
	assert.True(t, likeResult.Active)

	var refreshed model.User
	require.NoError(t, db.First(&refreshed, target.ID).Error)
	assert.Equal(t, int64(1), refreshed.FollowerCount)
	assert.Equal(t, int64(1), refreshed.LikeCount)

	// Gỡ like không ảnh hưởng follow
	_, err = ToggleEdge(db, source.ID, target.ID, constants.EDGE_LIKE)
	require.NoError(t, err)
	require.NoError(t, db.First(&refreshed, target.ID).Error)
	assert.Equal(t, int64(1), refreshed.FollowerCount)
	assert.Equal(t, int64(0), refreshed.LikeCount)
}

func TestToggleEdgeSelfReference(t *testing.T) {
	db := setupEdgeDB(t)
	user := createTestUser(t, db, "organizer1", constants.ROLE_ORGANIZER)

	for _, kind := range []string{constants.EDGE_FOLLOW, constants.EDGE_LIKE} {
		_, err := ToggleEdge(db, user.ID, user.ID, kind)
		assert.ErrorIs(t, err, ErrSelfReference)
	}

	var edgeCount int64
	db.Model(&model.Edge{}).Count(&edgeCount)
	assert.Equal(t, int64(0), edgeCount)
}

func TestToggleEdgeInvalidKind(t *testing.T) {
	db := setupEdgeDB(t)
	source := createTestUser(t, db, "a", constants.ROLE_ATTENDEE)
	target := createTestUser(t, db, "b", constants.ROLE_EXHIBITOR)

	_, err := ToggleEdge(db, source.ID, target.ID, "BOOKMARK")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestToggleEdgeTargetNotFound(t *testing.T) {
	db := setupEdgeDB(t)
	source := createTestUser(t, db, "a", constants.ROLE_ATTENDEE)

	_, err := ToggleEdge(db, source.ID, 9999, constants.EDGE_FOLLOW)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Bộ đếm denormalize phải luôn khớp số cạnh thực tế sau chuỗi toggle bất kỳ
func TestEdgeCounterConvergence(t *testing.T) {
	db := setupEdgeDB(t)
	target := createTestUser(t, db, "venue1", constants.ROLE_VENUE)

	var sources []*model.User
	for i := 0; i < 10; i++ {
		sources = append(sources, createTestUser(t, db, fmt.Sprintf("fan%d", i), constants.ROLE_ATTENDEE))
	}

	// Tất cả follow, một nửa bỏ follow, 3 người follow lại
	for _, s := range sources {
		_, err := ToggleEdge(db, s.ID, target.ID, constants.EDGE_FOLLOW)
		require.NoError(t, err)
	}
	for _, s := range sources[:5] {
		_, err := ToggleEdge(db, s.ID, target.ID, constants.EDGE_FOLLOW)
		require.NoError(t, err)
	}
	for _, s := range sources[:3] {
		_, err := ToggleEdge(db, s.ID, target.ID, constants.EDGE_FOLLOW)
		require.NoError(t, err)
	}

	var edgeCount int64
	require.NoError(t, db.Model(&model.Edge{}).
		Where("target_id = ? AND kind = ?", target.ID, constants.EDGE_FOLLOW).
		Count(&edgeCount).Error)

	var refreshed model.User
	require.NoError(t, db.First(&refreshed, target.ID).Error)
	assert.Equal(t, int64(8), edgeCount)
	assert.Equal(t, edgeCount, refreshed.FollowerCount)
}

func TestListEdges(t *testing.T) {
	db := setupEdgeDB(t)
	target := createTestUser(t, db, "exhibitor1", constants.ROLE_EXHIBITOR)
	fan1 := createTestUser(t, db, "fan1", constants.ROLE_ATTENDEE)
	fan2 := createTestUser(t, db, "fan2", constants.ROLE_ATTENDEE)

	_, err := ToggleEdge(db, fan1.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	_, err = ToggleEdge(db, fan2.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)
	_, err = ToggleEdge(db, fan1.ID, target.ID, constants.EDGE_LIKE)
	require.NoError(t, err)

	followers, total, err := ListEdges(db, target.ID, constants.EDGE_FOLLOW, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, followers, 2)

	likers, total, err := ListEdges(db, target.ID, constants.EDGE_LIKE, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, likers, 1)
	assert.Equal(t, "fan1", likers[0].UserName)

	// Chiều ngược lại: fan1 đang follow ai
	following, total, err := ListEdges(db, fan1.ID, constants.EDGE_FOLLOW, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, following, 1)
	assert.Equal(t, "exhibitor1", following[0].UserName)
}

func TestListEdgesPaginationCap(t *testing.T) {
	db := setupEdgeDB(t)
	target := createTestUser(t, db, "organizer1", constants.ROLE_ORGANIZER)
	source := createTestUser(t, db, "fan1", constants.ROLE_ATTENDEE)
	_, err := ToggleEdge(db, source.ID, target.ID, constants.EDGE_FOLLOW)
	require.NoError(t, err)

	// limit vượt trần không gây lỗi, vẫn trả kết quả
	hugeLimit := 10000
	page := 1
	followers, total, err := ListEdges(db, target.ID, constants.EDGE_FOLLOW, true, &hugeLimit, &page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, followers, 1)
}
