package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrArticleTitle    = errors.New("article title is required")
	ErrArticleStatus   = errors.New("invalid article status")
)

// ArticleService wraps article related operations.
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// ArticleInput 描述创建与更新文章时的可写字段。
type ArticleInput struct {
	Title      string
	Content    string
	Summary    string
	Status     string
	CategoryID *uint
}

// ArticleFilter 描述列表查询的筛选条件。
type ArticleFilter struct {
	Status     string
	CategoryID *uint
	OwnerID    *uint
}

func (in *ArticleInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrArticleTitle
	}

	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = db.ArticleStatusDraft
	}
	if in.Status != db.ArticleStatusDraft && in.Status != db.ArticleStatusPublished {
		return ErrArticleStatus
	}

	return nil
}

// List returns articles matching the filter, newest first.
func (s *ArticleService) List(filter ArticleFilter) ([]db.Article, error) {
	query := s.db.Model(&db.Article{}).Preload("Category").Order("created_at desc").Order("id desc")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var articles []db.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Get returns a single article by id.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Category").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create inserts a new article owned by ownerID.
func (s *ArticleService) Create(ownerID uint, input ArticleInput) (*db.Article, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	article := db.Article{
		Title:      input.Title,
		Content:    input.Content,
		Summary:    strings.TrimSpace(input.Summary),
		Status:     input.Status,
		OwnerID:    ownerID,
		CategoryID: input.CategoryID,
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Update rewrites the editable fields of an article.
// Views 不在可写字段里，计数只走 ViewCounter 的原子自增。
func (s *ArticleService) Update(id uint, input ArticleInput) (*db.Article, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	var article db.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	article.Title = input.Title
	article.Content = input.Content
	article.Summary = strings.TrimSpace(input.Summary)
	article.Status = input.Status
	article.CategoryID = input.CategoryID

	// 只写编辑字段，不能整行 Save：整行写回会用 First 读到的旧 views
	// 覆盖中途落库的原子自增，计数会丢甚至回退。
	err := s.db.Model(&article).
		Select("title", "content", "summary", "status", "category_id").
		Updates(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Delete removes an article together with its view counter column.
func (s *ArticleService) Delete(id uint) error {
	result := s.db.Delete(&db.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}
