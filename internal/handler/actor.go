package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
)

const actorContextKey = "__actor"

const sessionUserKey = "user_id"

// currentActor 把本次请求的凭证解析为 Actor：优先 Authorization 头的 bearer
// 令牌，其次会话 cookie。结果缓存在请求上下文里，一个请求只解析一次。
// 身份源不可达时直接响应 503 并返回 false——那不是"未登录"，调用方不能把
// 它当成匿名继续走授权。
func (a *API) currentActor(c *gin.Context) (auth.Actor, bool) {
	if cached, exists := c.Get(actorContextKey); exists {
		if actor, ok := cached.(auth.Actor); ok {
			return actor, true
		}
	}

	actor, err := a.resolveActor(c)
	if err != nil {
		if errors.Is(err, auth.ErrProviderUnavailable) {
			respondError(c, http.StatusServiceUnavailable, "identity provider unavailable")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to resolve identity")
		}
		return auth.Actor{}, false
	}

	c.Set(actorContextKey, actor)
	return actor, true
}

func (a *API) resolveActor(c *gin.Context) (auth.Actor, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		actor, err := a.resolver.ResolveBearer(header)
		if err != nil || actor.Authenticated() {
			return actor, err
		}
	}

	session := sessions.Default(c)
	return a.resolver.ResolveSession(session.Get(sessionUserKey))
}

// authorize 解析 Actor 并做策略判定，拒绝时按原因写出 401/403 并返回 false。
// 具体拒绝原因只进服务端日志，不透给客户端。
func (a *API) authorize(c *gin.Context, action auth.Action, resource auth.Resource) (auth.Actor, bool) {
	actor, ok := a.currentActor(c)
	if !ok {
		return auth.Actor{}, false
	}

	decision := auth.Decide(actor, action, resource)
	if decision.Allowed {
		return actor, true
	}

	if decision.Reason == auth.ReasonUnauthenticated {
		respondError(c, http.StatusUnauthorized, "authentication required")
	} else {
		respondError(c, http.StatusForbidden, "not allowed")
	}
	c.Error(errors.New(string(decision.Reason)))

	return auth.Actor{}, false
}
