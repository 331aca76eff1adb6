package auth

// Reason 说明一次拒绝的原因，只用于服务端日志与状态码映射，不直接下发给客户端。
type Reason string

// 拒绝原因常量
const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotOwnerOrAdmin Reason = "forbidden: not owner or admin"
	ReasonAdminRequired   Reason = "forbidden: admin required"
	ReasonUnknownPair     Reason = "unknown resource/action pair"
)

// Decision 是 Decide 的返回值。Allowed 为 false 时 Reason 必定非空。
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow 构造放行决策。
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 构造拒绝决策。
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide 判定 actor 能否对 resource 执行 action。
// 纯函数：无 I/O、无副作用，规则按顺序求值、首个命中生效，未命中一律拒绝。
// 所有路由处理器都必须经由这里做权限判断，不允许各自内联角色检查。
func Decide(actor Actor, action Action, resource Resource) Decision {
	// 公开内容：文章与分类任何人可读
	if action == ActionRead && (resource.Kind == ResourceArticle || resource.Kind == ResourceCategory) {
		return Allow()
	}

	// 匿名调用方不允许任何写操作
	if action == ActionCreate || action == ActionUpdate || action == ActionDelete {
		if actor.Role == RoleAnonymous {
			return Deny(ReasonUnauthenticated)
		}
	}

	// 文章的修改与删除：管理员或作者本人
	if resource.Kind == ResourceArticle && (action == ActionUpdate || action == ActionDelete) {
		if actor.Role == RoleAdmin || (actor.ID != "" && actor.ID == resource.OwnerID) {
			return Allow()
		}
		return Deny(ReasonNotOwnerOrAdmin)
	}

	// 仅限管理员：统计面板读取、留言/订阅者读取、分类的任何写操作
	adminOnly := (action == ActionRead && resource.Kind == ResourceDashboardStats) ||
		(action == ActionRead && resource.Kind == ResourceMessage) ||
		(resource.Kind == ResourceCategory && action != ActionRead)
	if adminOnly {
		if actor.Role == RoleAdmin {
			return Allow()
		}
		return Deny(ReasonAdminRequired)
	}

	// 创建文章：作者或管理员
	if resource.Kind == ResourceArticle && action == ActionCreate {
		if actor.Role == RoleAuthor || actor.Role == RoleAdmin {
			return Allow()
		}
		return Deny(ReasonAdminRequired)
	}

	// 兜底拒绝
	return Deny(ReasonUnknownPair)
}
