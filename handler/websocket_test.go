package handler

import (
	"event_manager/constants"
	"event_manager/helper"
	"event_manager/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSubscribeNotifications(t *testing.T) {
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:   42,
		Username: "visitor1",
		Role:     constants.ROLE_ATTENDEE,
	})
	require.NoError(t, err)

	// Chỉ chủ kênh mới đăng ký được kênh của mình
	assert.True(t, canSubscribeNotifications(token, 42))

	// Token hợp lệ nhưng kênh của người khác -> chặn
	assert.False(t, canSubscribeNotifications(token, 43))

	// Thiếu token hoặc token rác -> chặn
	assert.False(t, canSubscribeNotifications("", 42))
	assert.False(t, canSubscribeNotifications("not-a-jwt", 42))
	assert.False(t, canSubscribeNotifications(token, 0))
}
