package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category is associated with articles")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns categories with their article counts.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	for i := range categories {
		count, err := s.articleUsageCount(categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].ArticleCount = count
	}

	return categories, nil
}

// Get returns a single category by id.
func (s *CategoryService) Get(id uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	count, err := s.articleUsageCount(category.ID)
	if err != nil {
		return nil, err
	}
	category.ArticleCount = count

	return &category, nil
}

// Create inserts a new category with unique name.
func (s *CategoryService) Create(name, description string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var existing db.Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := db.Category{Name: name, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// Update changes the category while keeping name uniqueness.
func (s *CategoryService) Update(id uint, name, description string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var existing db.Category
	if err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category.Name = name
	category.Description = strings.TrimSpace(description)
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}

	count, err := s.articleUsageCount(category.ID)
	if err != nil {
		return nil, err
	}
	category.ArticleCount = count

	return &category, nil
}

// Delete removes a category unless articles still reference it.
func (s *CategoryService) Delete(id uint) error {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.articleUsageCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.db.Delete(&category).Error
}

func (s *CategoryService) articleUsageCount(categoryID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&db.Article{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
