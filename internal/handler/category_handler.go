package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/service"
)

type categoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories 返回全部分类，公开可读。
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory 返回单个分类，公开可读。
func (a *API) GetCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	category, err := a.categories.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load category")
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory 创建分类，仅限管理员。
func (a *API) CreateCategory(c *gin.Context) {
	if _, ok := a.authorize(c, auth.ActionCreate, auth.CategoryResource("")); !ok {
		return
	}

	var input categoryInput
	if !bindJSON(c, &input, "invalid category payload") {
		return
	}

	category, err := a.categories.Create(input.Name, input.Description)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory 修改分类，仅限管理员。
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	if _, ok := a.authorize(c, auth.ActionUpdate, auth.CategoryResource(formatID(id))); !ok {
		return
	}

	var input categoryInput
	if !bindJSON(c, &input, "invalid category payload") {
		return
	}

	category, updateErr := a.categories.Update(id, input.Name, input.Description)
	if updateErr != nil {
		if errors.Is(updateErr, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
		} else {
			respondError(c, http.StatusBadRequest, updateErr.Error())
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory 删除分类，仅限管理员；仍被文章引用时拒绝。
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	if _, ok := a.authorize(c, auth.ActionDelete, auth.CategoryResource(formatID(id))); !ok {
		return
	}

	if err := a.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusBadRequest, "category is associated with articles")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete category")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
