package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/inkpress/internal/db"
)

func TestCreateArticleValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	if _, err := svc.Create(1, ArticleInput{Title: "  "}); !errors.Is(err, ErrArticleTitle) {
		t.Fatalf("expected ErrArticleTitle, got %v", err)
	}

	if _, err := svc.Create(1, ArticleInput{Title: "Post", Status: "archived"}); !errors.Is(err, ErrArticleStatus) {
		t.Fatalf("expected ErrArticleStatus, got %v", err)
	}

	article, err := svc.Create(7, ArticleInput{Title: "Post", Content: "# Post"})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if article.Status != db.ArticleStatusDraft {
		t.Fatalf("expected default draft status, got %q", article.Status)
	}
	if article.OwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", article.OwnerID)
	}
}

func TestUpdateArticleDoesNotTouchViews(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	article, err := svc.Create(1, ArticleInput{Title: "Post", Status: db.ArticleStatusPublished})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	NewViewCounter(db.DB).Increment(article.ID)

	updated, err := svc.Update(article.ID, ArticleInput{Title: "Renamed", Status: db.ArticleStatusPublished})
	if err != nil {
		t.Fatalf("failed to update article: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %q", updated.Title)
	}

	var reloaded db.Article
	if err := db.DB.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("failed to reload article: %v", err)
	}
	if reloaded.Views != 1 {
		t.Fatalf("expected views to survive update, got %d", reloaded.Views)
	}
}

func TestUpdateArticleKeepsConcurrentViewIncrements(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)
	counter := NewViewCounter(db.DB)

	article, err := svc.Create(1, ArticleInput{Title: "Post", Status: db.ArticleStatusPublished})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	const increments = 300
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < increments; i++ {
			counter.Increment(article.ID)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if _, err := svc.Update(article.ID, ArticleInput{Title: "Renamed", Status: db.ArticleStatusPublished}); err != nil {
				t.Errorf("failed to update article: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	var reloaded db.Article
	if err := db.DB.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("failed to reload article: %v", err)
	}
	if reloaded.Views != increments {
		t.Fatalf("expected %d views after concurrent updates, got %d", increments, reloaded.Views)
	}
}

func TestListArticlesFilters(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	if _, err := svc.Create(1, ArticleInput{Title: "Draft", Status: db.ArticleStatusDraft}); err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if _, err := svc.Create(1, ArticleInput{Title: "Published", Status: db.ArticleStatusPublished}); err != nil {
		t.Fatalf("failed to create article: %v", err)
	}
	if _, err := svc.Create(2, ArticleInput{Title: "Other", Status: db.ArticleStatusPublished}); err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	published, err := svc.List(ArticleFilter{Status: db.ArticleStatusPublished})
	if err != nil {
		t.Fatalf("failed to list articles: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published articles, got %d", len(published))
	}

	owner := uint(1)
	mine, err := svc.List(ArticleFilter{OwnerID: &owner})
	if err != nil {
		t.Fatalf("failed to list articles: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 owned articles, got %d", len(mine))
	}
}

func TestDeleteArticle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewArticleService(db.DB)

	article, err := svc.Create(1, ArticleInput{Title: "Post"})
	if err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	if err := svc.Delete(article.ID); err != nil {
		t.Fatalf("failed to delete article: %v", err)
	}

	if err := svc.Delete(article.ID); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}

	if _, err := svc.Get(article.ID); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}
