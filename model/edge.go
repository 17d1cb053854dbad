package model

// Edge quan hệ có hướng giữa hai người dùng (A theo dõi / thích B).
// Cặp (source, target, kind) là unique để không bao giờ có cạnh trùng.
type Edge struct {
	DTO
	SourceId uint   `gorm:"not null;index:idx_edge_source;index:idx_edge_pair,unique" json:"sourceId"`
	TargetId uint   `gorm:"not null;index:idx_edge_target;index:idx_edge_pair,unique" json:"targetId"`
	Kind     string `gorm:"not null;index:idx_edge_pair,unique" json:"kind"` // FOLLOW, LIKE
}
type Edges []Edge

func (Edge) TableName() string { return "edges" }

type ToggleEdgeResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

type FilterEdge struct {
	Limit *int `query:"limit"`
	Page  *int `query:"page"`
}
