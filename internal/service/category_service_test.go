package service

import (
	"errors"
	"testing"

	"github.com/inkpress/internal/db"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewCategoryService(db.DB)

	if _, err := svc.Create("Go", "language"); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if _, err := svc.Create("Go", "again"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestUpdateCategoryKeepsUniqueness(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewCategoryService(db.DB)

	first, err := svc.Create("Go", "")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	second, err := svc.Create("Gin", "")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if _, err := svc.Update(second.ID, "Go", ""); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	updated, err := svc.Update(first.ID, "Golang", "renamed")
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	if updated.Name != "Golang" || updated.Description != "renamed" {
		t.Fatalf("unexpected category after update: %+v", updated)
	}
}

func TestDeleteCategoryBlockedWhenInUse(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewCategoryService(db.DB)

	category, err := svc.Create("Go", "")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	article := db.Article{Title: "Post", Status: db.ArticleStatusDraft, OwnerID: 1, CategoryID: &category.ID}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := db.DB.Delete(&article).Error; err != nil {
		t.Fatalf("failed to remove article: %v", err)
	}

	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("expected delete to succeed after article removal, got %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListCategoriesWithCounts(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewCategoryService(db.DB)

	go1, err := svc.Create("Go", "")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	if _, err := svc.Create("Gin", ""); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	for i := 0; i < 2; i++ {
		article := db.Article{Title: "Post", Status: db.ArticleStatusPublished, OwnerID: 1, CategoryID: &go1.ID}
		if err := db.DB.Create(&article).Error; err != nil {
			t.Fatalf("failed to seed article: %v", err)
		}
	}

	categories, err := svc.List()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}

	// List 按名称排序：Gin 在前，Go 在后
	if categories[0].Name != "Gin" || categories[0].ArticleCount != 0 {
		t.Fatalf("unexpected first category: %+v", categories[0])
	}
	if categories[1].Name != "Go" || categories[1].ArticleCount != 2 {
		t.Fatalf("unexpected second category: %+v", categories[1])
	}
}
