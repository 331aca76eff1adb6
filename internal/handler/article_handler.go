package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/metrics"
	"github.com/inkpress/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	visitorCookieName   = "ip_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

type articleInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`
}

func articleJSON(article *db.Article, htmlContent string) gin.H {
	payload := gin.H{
		"id":          article.ID,
		"title":       article.Title,
		"summary":     article.Summary,
		"status":      article.Status,
		"owner_id":    article.OwnerID,
		"category_id": article.CategoryID,
		"views":       article.Views,
		"created_at":  article.CreatedAt,
		"updated_at":  article.UpdatedAt,
	}
	if article.Category != nil {
		payload["category"] = gin.H{"id": article.Category.ID, "name": article.Category.Name}
	}
	if htmlContent != "" {
		payload["content"] = article.Content
		payload["html"] = htmlContent
	}
	return payload
}

// ListArticles 返回文章列表。匿名访客只能看到已发布的文章；
// 已认证用户可以用 status 参数筛选草稿。
func (a *API) ListArticles(c *gin.Context) {
	actor, ok := a.currentActor(c)
	if !ok {
		return
	}

	filter := service.ArticleFilter{Status: db.ArticleStatusPublished}
	if actor.Authenticated() {
		filter.Status = c.DefaultQuery("status", "")
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}

	articles, err := a.articles.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	items := make([]gin.H, 0, len(articles))
	for i := range articles {
		items = append(items, articleJSON(&articles[i], ""))
	}

	c.JSON(http.StatusOK, gin.H{"articles": items})
}

// GetArticle 返回文章详情并渲染 markdown 正文。
// 成功获取已发布文章时顺带记录一次浏览（同会话去重）。
func (a *API) GetArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "article not found")
		return
	}

	actor, ok := a.currentActor(c)
	if !ok {
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load article")
		}
		return
	}

	if article.Status != db.ArticleStatusPublished && !actor.Authenticated() {
		respondError(c, http.StatusNotFound, "article not found")
		return
	}

	if article.Status == db.ArticleStatusPublished {
		if a.recordArticleView(c, article.ID) {
			article.Views++
		}
	}

	htmlContent, err := renderMarkdown(article.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render article")
		return
	}

	c.JSON(http.StatusOK, articleJSON(article, htmlContent))
}

// ViewArticle 显式上报一次文章浏览，返回最新计数。
func (a *API) ViewArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "article not found")
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		// 计数缺口不破坏调用方，按约定静默成功
		c.Status(http.StatusNoContent)
		return
	}

	// 草稿对 GetArticle 的匿名访问者不可见，这里同样不外泄存在与计数
	if article.Status != db.ArticleStatusPublished {
		c.Status(http.StatusNoContent)
		return
	}

	if a.recordArticleView(c, article.ID) {
		article.Views++
	}

	c.JSON(http.StatusOK, gin.H{"views": article.Views})
}

// recordArticleView 记录一次浏览：文章计数原子自增、站点日统计累加。
// 同一会话内的重复浏览被抑制，刷新不会刷计数。返回是否真正计入。
func (a *API) recordArticleView(c *gin.Context, articleID uint) bool {
	session := sessions.Default(c)
	viewedKey := fmt.Sprintf("viewed_article_%d", articleID)
	if viewed, ok := session.Get(viewedKey).(bool); ok && viewed {
		return false
	}

	visitorID := a.ensureVisitorID(c)

	a.views.Increment(articleID)
	if err := a.stats.RecordPageView(visitorID, time.Now().UTC()); err != nil {
		c.Error(err) // 不中断响应，但记录错误
	}
	metrics.CountArticleView()

	session.Set(viewedKey, true)
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	return true
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && id != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}

// CreateArticle 创建文章，归属当前调用方。
func (a *API) CreateArticle(c *gin.Context) {
	actor, ok := a.authorize(c, auth.ActionCreate, auth.ArticleResource("", ""))
	if !ok {
		return
	}

	var input articleInput
	if !bindJSON(c, &input, "invalid article payload") {
		return
	}

	ownerID, err := strconv.ParseUint(actor.ID, 10, 32)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "invalid actor identity")
		return
	}

	article, createErr := a.articles.Create(uint(ownerID), service.ArticleInput{
		Title:      input.Title,
		Content:    input.Content,
		Summary:    input.Summary,
		Status:     input.Status,
		CategoryID: input.CategoryID,
	})
	if createErr != nil {
		respondError(c, http.StatusBadRequest, createErr.Error())
		return
	}

	c.JSON(http.StatusCreated, articleJSON(article, ""))
}

// UpdateArticle 修改文章，仅限管理员或文章作者。
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "article not found")
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load article")
		}
		return
	}

	if _, ok := a.authorize(c, auth.ActionUpdate, auth.ArticleResource(formatID(article.ID), formatID(article.OwnerID))); !ok {
		return
	}

	var input articleInput
	if !bindJSON(c, &input, "invalid article payload") {
		return
	}

	updated, updateErr := a.articles.Update(id, service.ArticleInput{
		Title:      input.Title,
		Content:    input.Content,
		Summary:    input.Summary,
		Status:     input.Status,
		CategoryID: input.CategoryID,
	})
	if updateErr != nil {
		respondError(c, http.StatusBadRequest, updateErr.Error())
		return
	}

	c.JSON(http.StatusOK, articleJSON(updated, ""))
}

// DeleteArticle 删除文章，仅限管理员或文章作者。
func (a *API) DeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "article not found")
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load article")
		}
		return
	}

	if _, ok := a.authorize(c, auth.ActionDelete, auth.ArticleResource(formatID(article.ID), formatID(article.OwnerID))); !ok {
		return
	}

	if err := a.articles.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	c.Status(http.StatusNoContent)
}
