package utils

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Template được load theo đường dẫn tương đối lúc chạy,
// nên test đảm bảo cả hai file tồn tại và render được với dữ liệu thật.
func TestAppointmentConfirmationTemplateRenders(t *testing.T) {
	tmpl, err := template.ParseFiles("../templates/appointment_confirmation.html")
	require.NoError(t, err)

	var body bytes.Buffer
	require.NoError(t, tmpl.Execute(&body, AppointmentConfirmationData{
		AppointmentCode:  "abc-123",
		EventTitle:       "Vietnam Tech Expo",
		CounterpartyName: "Gian hàng A",
		ConfirmedSlot:    "11/09/2026 09:00",
		DurationMinutes:  30,
		Purpose:          "Tư vấn sản phẩm",
	}))

	html := body.String()
	assert.Contains(t, html, "abc-123")
	assert.Contains(t, html, "Vietnam Tech Expo")
	assert.Contains(t, html, "cid:qr_checkin_code")
}

func TestPromotionStatusTemplateRenders(t *testing.T) {
	tmpl, err := template.ParseFiles("../templates/promotion_status.html")
	require.NoError(t, err)

	var rejected bytes.Buffer
	require.NoError(t, tmpl.Execute(&rejected, PromotionStatusData{
		PromotionCode:   "promo-1",
		EventTitle:      "Vietnam Tech Expo",
		PackageType:     "banner",
		Status:          "REJECTED",
		RejectionReason: "Nội dung không phù hợp",
	}))
	assert.Contains(t, rejected.String(), "Nội dung không phù hợp")

	// Không có lý do từ chối thì block lý do không render
	var approved bytes.Buffer
	require.NoError(t, tmpl.Execute(&approved, PromotionStatusData{
		PromotionCode: "promo-2",
		EventTitle:    "Vietnam Tech Expo",
		PackageType:   "push",
		Status:        "APPROVED",
	}))
	assert.False(t, strings.Contains(approved.String(), "Lý do từ chối"))
}
