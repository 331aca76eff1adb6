package db

import "gorm.io/gorm"

// Article 定义了文章模型。Views 只能通过存储层的原子自增更新，
// 应用侧不允许读改写。
type Article struct {
	gorm.Model
	Title      string `gorm:"size:255;not null"`
	Content    string `gorm:"type:text"`
	Summary    string `gorm:"size:500"`
	Status     string `gorm:"size:32;not null;default:draft"`
	OwnerID    uint   `gorm:"index;not null"`
	CategoryID *uint  `gorm:"index"`
	Views      int64  `gorm:"not null;default:0"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// 文章状态常量
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)
