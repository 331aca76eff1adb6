package service

import (
	"errors"
	"testing"

	"github.com/inkpress/internal/db"
)

func TestCreateContactValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewMessageService(db.DB)

	if _, err := svc.CreateContact(ContactInput{Name: "a", Email: "a@example.com"}); !errors.Is(err, ErrMessageIncomplete) {
		t.Fatalf("expected ErrMessageIncomplete, got %v", err)
	}

	message, err := svc.CreateContact(ContactInput{Name: "a", Email: "a@example.com", Body: "hello"})
	if err != nil {
		t.Fatalf("failed to create contact message: %v", err)
	}

	loaded, err := svc.GetContact(message.ID)
	if err != nil {
		t.Fatalf("failed to load contact message: %v", err)
	}
	if loaded.Body != "hello" {
		t.Fatalf("unexpected message body: %q", loaded.Body)
	}
}

func TestSubscribeDeduplicates(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewMessageService(db.DB)

	if _, err := svc.Subscribe("Reader@Example.com "); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	// 邮箱统一小写比较，重复订阅被拒绝
	if _, err := svc.Subscribe("reader@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}

	if _, err := svc.Subscribe("not-an-email"); !errors.Is(err, ErrSubscriberBadEmail) {
		t.Fatalf("expected ErrSubscriberBadEmail, got %v", err)
	}

	subscribers, err := svc.ListSubscribers()
	if err != nil {
		t.Fatalf("failed to list subscribers: %v", err)
	}
	if len(subscribers) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(subscribers))
	}
}
