package auth

import (
	"errors"
	"strconv"
	"strings"
)

// 身份源不可达与凭证无效必须可区分：前者返回 ErrProviderUnavailable（上层映射为 503），
// 后者只是解析为匿名调用方。
var ErrProviderUnavailable = errors.New("identity provider unavailable")

// Identity 是身份源返回的档案快照。
type Identity struct {
	ID    string
	Role  Role
	Email string
}

// IdentityProvider 按用户 ID 查询档案。用户不存在时返回 (nil, nil)；
// 查询失败（连接中断等）时返回非空 error。
type IdentityProvider interface {
	IdentityByID(userID string) (*Identity, error)
}

// Resolver 把入站凭证（bearer token 或会话中的用户 ID）解析为 Actor。
// 认证与授权保持正交：这里从不判断权限，只产出身份。
type Resolver struct {
	provider IdentityProvider
	tokens   TokenService
}

// NewResolver 创建 Resolver。
func NewResolver(provider IdentityProvider, tokens TokenService) *Resolver {
	return &Resolver{provider: provider, tokens: tokens}
}

// ResolveBearer 解析 Authorization 头的 bearer 令牌。
// 凭证缺失或无效时返回匿名 Actor 而不是错误；身份源故障时返回 ErrProviderUnavailable。
func (r *Resolver) ResolveBearer(header string) (Actor, error) {
	header = strings.TrimSpace(header)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return Anonymous(), nil
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	userID, err := r.tokens.ParseToken(tokenStr)
	if err != nil {
		return Anonymous(), nil
	}

	return r.lookup(userID)
}

// ResolveSession 解析会话中保存的用户 ID。
func (r *Resolver) ResolveSession(rawUserID interface{}) (Actor, error) {
	userID := sessionUserID(rawUserID)
	if userID == "" {
		return Anonymous(), nil
	}
	return r.lookup(userID)
}

func (r *Resolver) lookup(userID string) (Actor, error) {
	identity, err := r.provider.IdentityByID(userID)
	if err != nil {
		return Anonymous(), ErrProviderUnavailable
	}
	if identity == nil {
		// 凭证格式合法但对应账号已不存在，按匿名处理
		return Anonymous(), nil
	}

	role := identity.Role
	if role != RoleAdmin && role != RoleAuthor {
		role = RoleAuthor
	}

	return Actor{ID: identity.ID, Role: role, Email: identity.Email}, nil
}

// sessionUserID 兼容 gob 会话里可能出现的几种整型与字符串形态。
func sessionUserID(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		if v <= 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		if v <= 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
