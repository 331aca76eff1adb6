package handler

import (
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db              *gorm.DB
	articles        *service.ArticleService
	categories      *service.CategoryService
	messages        *service.MessageService
	stats           *service.StatsService
	views           *service.ViewCounter
	resolver        *auth.Resolver
	tokens          auth.TokenService
	statsPeriodDays int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, tokens auth.TokenService, statsPeriodDays int) *API {
	if statsPeriodDays <= 0 {
		statsPeriodDays = 180
	}

	return &API{
		db:              db,
		articles:        service.NewArticleService(db),
		categories:      service.NewCategoryService(db),
		messages:        service.NewMessageService(db),
		stats:           service.NewStatsService(db),
		views:           service.NewViewCounter(db),
		resolver:        auth.NewResolver(service.NewIdentityStore(db), tokens),
		tokens:          tokens,
		statsPeriodDays: statsPeriodDays,
	}
}
