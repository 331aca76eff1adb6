package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) verifyCredentials(c *gin.Context) (*db.User, bool) {
	var req loginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return nil, false
	}

	username := strings.TrimSpace(req.Username)

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return nil, false
	}

	return &user, true
}

// Login 处理用户登录请求，成功后在会话里记录用户 ID。
func (a *API) Login(c *gin.Context) {
	user, ok := a.verifyCredentials(c)
	if !ok {
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// IssueToken 为 API 客户端签发访问令牌，凭证校验与登录一致。
func (a *API) IssueToken(c *gin.Context) {
	user, ok := a.verifyCredentials(c)
	if !ok {
		return
	}

	role := auth.RoleAuthor
	if user.Role == db.RoleAdmin {
		role = auth.RoleAdmin
	}

	token, expiresAt, err := a.tokens.CreateAccessToken(formatID(user.ID), user.Email, role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"tokenType":   "Bearer",
		"expiresAt":   expiresAt,
	})
}

// Logout 处理用户登出，清空会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}
	c.Status(http.StatusNoContent)
}
