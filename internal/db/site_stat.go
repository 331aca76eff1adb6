package db

import "time"

// SiteStat 记录站点每个自然日（UTC）的流量汇总，每天至多一行。
// BounceRate 与 AvgSessionDuration 保存的是当天最后一次写入的采样值，
// 同日多次写入时后写覆盖先写。
type SiteStat struct {
	ID                 uint      `gorm:"primaryKey"`
	Date               time.Time `gorm:"uniqueIndex"`
	PageViews          uint64    `gorm:"default:0"`
	UniqueVisitors     uint64    `gorm:"default:0"`
	BounceRate         float64   `gorm:"default:0"`
	AvgSessionDuration float64   `gorm:"default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName 指定自定义表名。
func (SiteStat) TableName() string {
	return "site_stats"
}

// SiteDailyVisitor 记录每天出现过的访客，用于 UV 去重。
type SiteDailyVisitor struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"uniqueIndex:idx_site_day_visitor"`
	VisitorID string    `gorm:"size:64;uniqueIndex:idx_site_day_visitor"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (SiteDailyVisitor) TableName() string {
	return "site_daily_visitors"
}
