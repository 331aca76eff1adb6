package db

import "gorm.io/gorm"

// ContactMessage 保存联系表单提交的留言
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:255;not null"`
	Email   string `gorm:"size:255;not null"`
	Subject string `gorm:"size:255"`
	Body    string `gorm:"type:text;not null"`
}

// TableName 指定自定义表名。
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Subscriber 保存邮件订阅者，email 唯一
type Subscriber struct {
	gorm.Model
	Email string `gorm:"unique;not null"`
}
