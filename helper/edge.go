package helper

import (
	"errors"
	"event_manager/constants"
	"event_manager/model"

	"gorm.io/gorm"
)

var (
	ErrSelfReference = errors.New("không thể tự theo dõi hoặc thích chính mình")
	ErrInvalidKind   = errors.New("loại quan hệ không hợp lệ")
)

// cột bộ đếm denormalize trên bảng users ứng với từng loại cạnh
var edgeCounterColumn = map[string]string{
	constants.EDGE_FOLLOW: "follower_count",
	constants.EDGE_LIKE:   "like_count",
}

// ToggleEdge bật/tắt một cạnh (source -> target). Tạo cạnh + tăng bộ đếm,
// hoặc gỡ cạnh + giảm bộ đếm, luôn trong cùng một transaction để bộ đếm
// không bao giờ lệch so với bảng edges. Hai toggle đồng thời trên cùng cặp
// bị chặn bởi unique index idx_edge_pair.
func ToggleEdge(db *gorm.DB, sourceId, targetId uint, kind string) (*model.ToggleEdgeResult, error) {
	column, ok := edgeCounterColumn[kind]
	if !ok {
		return nil, ErrInvalidKind
	}
	// Chặn tự tham chiếu cho cả FOLLOW và LIKE
	if sourceId == targetId {
		return nil, ErrSelfReference
	}

	result := new(model.ToggleEdgeResult)
	err := db.Transaction(func(tx *gorm.DB) error {
		var target model.User
		if err := tx.First(&target, targetId).Error; err != nil {
			return err
		}

		del := tx.Where("source_id = ? AND target_id = ? AND kind = ?", sourceId, targetId, kind).
			Delete(&model.Edge{})
		if del.Error != nil {
			return del.Error
		}

		if del.RowsAffected > 0 {
			// Cạnh đã tồn tại -> gỡ và giảm bộ đếm
			if err := tx.Model(&model.User{}).Where("id = ?", targetId).
				UpdateColumn(column, gorm.Expr(column+" - 1")).Error; err != nil {
				return err
			}
			result.Active = false
		} else {
			edge := model.Edge{SourceId: sourceId, TargetId: targetId, Kind: kind}
			if err := tx.Create(&edge).Error; err != nil {
				// unique index chặn double-create khi hai request cùng tạo
				return err
			}
			if err := tx.Model(&model.User{}).Where("id = ?", targetId).
				UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
				return err
			}
			result.Active = true
		}

		// Đọc lại bộ đếm sau điều chỉnh
		var count int64
		if err := tx.Model(&model.User{}).Where("id = ?", targetId).
			Pluck(column, &count).Error; err != nil {
			return err
		}
		result.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasEdge kiểm tra cạnh (source -> target, kind) có tồn tại không
func HasEdge(db *gorm.DB, sourceId, targetId uint, kind string) (bool, error) {
	var count int64
	if err := db.Model(&model.Edge{}).
		Where("source_id = ? AND target_id = ? AND kind = ?", sourceId, targetId, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListEdges trả về profile công khai phía đối diện của các cạnh, mới nhất trước.
// incoming=true: ai đang trỏ tới userId (follower); false: userId đang trỏ tới ai.
func ListEdges(db *gorm.DB, userId uint, kind string, incoming bool, limit, page *int) ([]model.PublicProfile, int64, error) {
	if _, ok := edgeCounterColumn[kind]; !ok {
		return nil, 0, ErrInvalidKind
	}

	cond := db.Model(&model.Edge{}).Where("kind = ?", kind)
	if incoming {
		cond = cond.Where("target_id = ?", userId)
	} else {
		cond = cond.Where("source_id = ?", userId)
	}

	var totalCount int64
	if err := cond.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	joinOn := "users.id = edges.source_id"
	where := "edges.target_id = ?"
	if !incoming {
		joinOn = "users.id = edges.target_id"
		where = "edges.source_id = ?"
	}

	query := db.Table("edges").
		Select("users.id, users.public_code, users.user_name, users.display_name, users.role, users.company, users.avatar_url, users.follower_count, users.like_count").
		Joins("JOIN users ON "+joinOn).
		Where(where+" AND edges.kind = ?", userId, kind).
		Order("edges.created_at DESC")
	query = ApplyEdgePagination(query, limit, page)

	var profiles []model.PublicProfile
	if err := query.Scan(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, totalCount, nil
}

// ApplyEdgePagination như utils.ApplyPagination nhưng có trần limit
// để endpoint liệt kê follower không trả kết quả không giới hạn.
func ApplyEdgePagination(query *gorm.DB, limit, page *int) *gorm.DB {
	max := 100
	if limit == nil || *limit <= 0 || *limit > max {
		limit = &max
	}
	one := 1
	if page == nil || *page < 1 {
		page = &one
	}
	return query.Limit(*limit).Offset(*limit * (*page - 1))
}
