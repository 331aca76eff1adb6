package db

import "gorm.io/gorm"

// Category 定义了文章分类模型
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string `gorm:"size:500"`

	ArticleCount int64 `gorm:"-"`
}
