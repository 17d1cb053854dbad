package helper

import (
	"event_manager/constants"
	"event_manager/database"
	"event_manager/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var promotionScheduler gocron.Scheduler

// Bảng trạng thái kế tiếp hợp lệ của gói quảng bá. Trạng thái không có
// trong danh sách là chuyển đổi sai và bị từ chối (không chấp nhận ngầm).
var promotionTransitions = map[string][]string{
	constants.PROMOTION_PENDING:   {constants.PROMOTION_APPROVED, constants.PROMOTION_REJECTED},
	constants.PROMOTION_APPROVED:  {constants.PROMOTION_ACTIVE, constants.PROMOTION_EXPIRED},
	constants.PROMOTION_ACTIVE:    {constants.PROMOTION_COMPLETED, constants.PROMOTION_EXPIRED},
	constants.PROMOTION_REJECTED:  {},
	constants.PROMOTION_COMPLETED: {},
	constants.PROMOTION_EXPIRED:   {},
}

// CanPromotionTransition kiểm tra chuyển trạng thái from -> to có hợp lệ không
func CanPromotionTransition(from, to string) bool {
	for _, next := range promotionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsPromotionTerminal trạng thái kết thúc, không chuyển tiếp được nữa
func IsPromotionTerminal(status string) bool {
	return len(promotionTransitions[status]) == 0
}

// PromotionOwnerId chủ sở hữu đã normalize: organizer ?? exhibitor
func PromotionOwnerId(promotion *model.Promotion) uint {
	if promotion.OrganizerId != nil {
		return *promotion.OrganizerId
	}
	if promotion.ExhibitorId != nil {
		return *promotion.ExhibitorId
	}
	return 0
}

// PromotionOwner trả về user chủ sở hữu (organizer hoặc exhibitor, đúng một)
func PromotionOwner(promotion *model.Promotion) *model.User {
	if promotion.Organizer != nil {
		return promotion.Organizer
	}
	return promotion.Exhibitor
}

// CanActorTransitionPromotion gom toàn bộ check quyền chuyển trạng thái về một chỗ:
// admin duyệt/từ chối/kích hoạt/hết hạn; chủ sở hữu chỉ được kết thúc sớm gói ACTIVE.
func CanActorTransitionPromotion(claim model.TokenClaim, promotion *model.Promotion, newStatus string) bool {
	if IsAdmin(claim) {
		return true
	}
	if PromotionOwnerId(promotion) == claim.UserId {
		return newStatus == constants.PROMOTION_COMPLETED
	}
	return false
}

// AutoUpdatePromotionStatus quét gói đã duyệt/đang chạy và cập nhật theo mốc thời gian:
// APPROVED -> ACTIVE khi tới startDate, APPROVED/ACTIVE -> EXPIRED khi qua endDate.
func AutoUpdatePromotionStatus() {
	log.Println("[CRON] AutoUpdatePromotionStatus triggered")

	db := database.DB
	now := time.Now()

	expired := db.Model(&model.Promotion{}).
		Where("status IN ? AND end_date < ?", []string{constants.PROMOTION_APPROVED, constants.PROMOTION_ACTIVE}, now).
		Update("status", constants.PROMOTION_EXPIRED)
	if expired.Error != nil {
		log.Printf("Lỗi cập nhật gói quảng bá hết hạn: %v", expired.Error)
	} else if expired.RowsAffected > 0 {
		log.Printf("Đã chuyển %d gói quảng bá sang EXPIRED", expired.RowsAffected)
	}

	activated := db.Model(&model.Promotion{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", constants.PROMOTION_APPROVED, now, now).
		Update("status", constants.PROMOTION_ACTIVE)
	if activated.Error != nil {
		log.Printf("Lỗi kích hoạt gói quảng bá: %v", activated.Error)
	} else if activated.RowsAffected > 0 {
		log.Printf("Đã kích hoạt %d gói quảng bá", activated.RowsAffected)
	}
}

func StartPromotionStatusScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	promotionScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(AutoUpdatePromotionStatus),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Promotion status scheduler started (10m)")
}

func StopPromotionStatusScheduler() {
	if promotionScheduler != nil {
		if err := promotionScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng promotion scheduler: %v", err)
		}
	}
}
