package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound    = errors.New("message not found")
	ErrMessageIncomplete  = errors.New("name, email and body are required")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrSubscriberBadEmail = errors.New("a valid email is required")
)

// MessageService 负责联系表单留言与邮件订阅的写入和后台读取。
type MessageService struct {
	db *gorm.DB
}

// NewMessageService 创建 MessageService。
func NewMessageService(gdb *gorm.DB) *MessageService {
	return &MessageService{db: gdb}
}

// ContactInput 描述联系表单的提交内容。
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// CreateContact 保存一条联系表单留言。
func (s *MessageService) CreateContact(input ContactInput) (*db.ContactMessage, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Body = strings.TrimSpace(input.Body)
	if input.Name == "" || input.Email == "" || input.Body == "" {
		return nil, ErrMessageIncomplete
	}

	message := db.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: strings.TrimSpace(input.Subject),
		Body:    input.Body,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListContacts 返回全部留言，最新的在前。
func (s *MessageService) ListContacts() ([]db.ContactMessage, error) {
	var messages []db.ContactMessage
	if err := s.db.Order("created_at desc").Order("id desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// GetContact 返回单条留言。
func (s *MessageService) GetContact(id uint) (*db.ContactMessage, error) {
	var message db.ContactMessage
	if err := s.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// Subscribe 登记一个订阅邮箱，重复订阅返回 ErrAlreadySubscribed。
func (s *MessageService) Subscribe(email string) (*db.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrSubscriberBadEmail
	}

	var existing db.Subscriber
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrAlreadySubscribed
	}

	subscriber := db.Subscriber{Email: email}
	if err := s.db.Create(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// ListSubscribers 返回全部订阅者。
func (s *MessageService) ListSubscribers() ([]db.Subscriber, error) {
	var subscribers []db.Subscriber
	if err := s.db.Order("created_at desc").Order("id desc").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}
