package service

import (
	"log"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

// ViewCounter 维护文章维度的浏览计数。
// 自增必须是存储层的单条原子更新（views = views + 1），
// 不允许应用侧读取后再写回，否则并发请求会丢失更新。
type ViewCounter struct {
	db *gorm.DB
}

// NewViewCounter 创建 ViewCounter。
func NewViewCounter(gdb *gorm.DB) *ViewCounter {
	return &ViewCounter{db: gdb}
}

// Increment 将指定文章的浏览计数加一。
// 文章不存在或存储出错时只记日志不上抛：计数失败不能影响页面渲染。
// 同会话内的重复浏览由调用方负责抑制，这里不做去重。
func (v *ViewCounter) Increment(articleID uint) {
	result := v.db.Model(&db.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("views", gorm.Expr("views + 1"))

	if result.Error != nil {
		log.Printf("view counter: failed to increment article %d: %v", articleID, result.Error)
		return
	}

	if result.RowsAffected == 0 {
		log.Printf("view counter: article %d not found, increment skipped", articleID)
	}
}
