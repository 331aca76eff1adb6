package service

import (
	"errors"
	"time"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsService 负责站点日粒度统计的写入、区间聚合与周期对比。
// 所有日期一律按 UTC 自然日分桶，进程内不得混用本地时区，
// 否则临近午夜的事件会落错桶。
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 创建 StatsService。
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// StatsAggregate 是区间聚合的结果，不落库。
type StatsAggregate struct {
	TotalPageViews      uint64  `json:"totalPageViews"`
	TotalUniqueVisitors uint64  `json:"totalUniqueVisitors"`
	AvgBounceRate       float64 `json:"avgBounceRate"`
	AvgSessionDuration  float64 `json:"avgSessionDuration"`
}

// Comparison 携带当前与上一周期的聚合，两者各自可能为 nil（区间内无数据）。
type Comparison struct {
	Current  *StatsAggregate `json:"current"`
	Previous *StatsAggregate `json:"previous"`
}

// DayStart 返回 t 所在 UTC 自然日的零点。
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordPageView 记录一次站点页面浏览：当天的行不存在则惰性创建，
// PageViews 自增，当天首次出现的访客再使 UniqueVisitors 自增。
func (s *StatsService) RecordPageView(visitorID string, now time.Time) error {
	if visitorID == "" {
		return errors.New("invalid visitor id")
	}

	day := DayStart(now)

	return s.db.Transaction(func(tx *gorm.DB) error {
		visitor := db.SiteDailyVisitor{Date: day, VisitorID: visitorID}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visitor)
		if insert.Error != nil {
			return insert.Error
		}
		isNewVisitor := insert.RowsAffected == 1

		if err := ensureDayRow(tx, day); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"page_views": gorm.Expr("page_views + 1"),
		}
		if isNewVisitor {
			updates["unique_visitors"] = gorm.Expr("unique_visitors + 1")
		}

		return tx.Model(&db.SiteStat{}).Where("date = ?", day).Updates(updates).Error
	})
}

// UpdateDailyAverages 写入当天的跳出率与平均会话时长采样。
// 已知局限：同一天多次写入时直接覆盖，最后一个写入者的单次采样胜出，
// 早先的采样被丢弃。准确做法是保存原始计数（会话数、跳出数、总时长）
// 并在读取时求真均值；在确认语义变更之前保持覆盖行为。
func (s *StatsService) UpdateDailyAverages(bounceRate, avgSessionDuration float64, now time.Time) error {
	day := DayStart(now)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureDayRow(tx, day); err != nil {
			return err
		}

		return tx.Model(&db.SiteStat{}).Where("date = ?", day).Updates(map[string]interface{}{
			"bounce_rate":          bounceRate,
			"avg_session_duration": avgSessionDuration,
		}).Error
	})
}

func ensureDayRow(tx *gorm.DB, day time.Time) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&db.SiteStat{Date: day}).Error
}

// Aggregate 聚合半开区间 [startInclusive, endExclusive) 内的日统计：
// PV/UV 求和，跳出率与会话时长取简单平均（按行、不按流量加权）。
// 区间内没有任何行时返回 nil——"无数据"与"数据为零"是两回事，调用方必须区分。
func (s *StatsService) Aggregate(startInclusive, endExclusive time.Time) (*StatsAggregate, error) {
	start := DayStart(startInclusive)
	end := DayStart(endExclusive)
	if !start.Before(end) {
		return nil, nil
	}

	var row struct {
		Days               int64
		PageViews          uint64
		UniqueVisitors     uint64
		BounceRate         float64
		AvgSessionDuration float64
	}

	err := s.db.Model(&db.SiteStat{}).
		Select("COUNT(*) AS days, " +
			"COALESCE(SUM(page_views), 0) AS page_views, " +
			"COALESCE(SUM(unique_visitors), 0) AS unique_visitors, " +
			"COALESCE(AVG(bounce_rate), 0) AS bounce_rate, " +
			"COALESCE(AVG(avg_session_duration), 0) AS avg_session_duration").
		Where("date >= ? AND date < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	// 区间内存在空缺的日子时它们没有对应行，不计入平均
	if row.Days == 0 {
		return nil, nil
	}

	return &StatsAggregate{
		TotalPageViews:      row.PageViews,
		TotalUniqueVisitors: row.UniqueVisitors,
		AvgBounceRate:       row.BounceRate,
		AvgSessionDuration:  row.AvgSessionDuration,
	}, nil
}

// Compare 按 periodDays 天为一个周期做环比：当前周期是截至今天（含今天）的
// periodDays 个自然日，上一周期是紧邻其前的 periodDays 天，无空隙无重叠。
// 两半互相独立，各自可能为 nil。
func (s *StatsService) Compare(periodDays int, now time.Time) (Comparison, error) {
	if periodDays <= 0 {
		return Comparison{}, errors.New("period days must be positive")
	}

	currentEnd := DayStart(now).AddDate(0, 0, 1)
	currentStart := currentEnd.AddDate(0, 0, -periodDays)
	previousStart := currentStart.AddDate(0, 0, -periodDays)

	current, err := s.Aggregate(currentStart, currentEnd)
	if err != nil {
		return Comparison{}, err
	}

	previous, err := s.Aggregate(previousStart, currentStart)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{Current: current, Previous: previous}, nil
}

// PercentChange 计算页面浏览量的环比百分比。
// previous 为 nil 或其 PV 为零时结果不可用（ok 为 false），
// 绝不返回 0%、NaN 或 Inf 冒充结果。
func PercentChange(current, previous *StatsAggregate) (float64, bool) {
	if current == nil || previous == nil || previous.TotalPageViews == 0 {
		return 0, false
	}

	curr := float64(current.TotalPageViews)
	prev := float64(previous.TotalPageViews)
	return (curr - prev) / prev * 100, true
}
