package helper

import (
	"event_manager/model"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueEventSlug sinh slug từ title, thêm hậu tố -N khi trùng.
// excludeId loại sự kiện đang sửa khỏi check trùng, để lưu lại title
// không đổi không làm slug nhảy sang -1 và gãy URL công khai.
func GenerateUniqueEventSlug(tx *gorm.DB, title string, excludeId uint) string {
	base := slug.Make(title)
	result := base
	i := 1

	for {
		var count int64
		query := tx.Model(&model.Event{}).Where("slug = ?", result)
		if excludeId != 0 {
			query = query.Where("id != ?", excludeId)
		}
		query.Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
