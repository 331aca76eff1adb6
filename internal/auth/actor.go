package auth

// Role 表示调用方的角色。
type Role string

// 角色常量，与 users 表的 role 列保持一致；匿名访客没有对应的表行。
const (
	RoleAnonymous Role = "anonymous"
	RoleAuthor    Role = "author"
	RoleAdmin     Role = "admin"
)

// Actor 表示一次请求的调用方。只在请求期间存在，不落库；
// SessionResolver 每次请求都会重新构造它。
type Actor struct {
	ID    string
	Role  Role
	Email string
}

// Anonymous 返回匿名调用方。
func Anonymous() Actor {
	return Actor{Role: RoleAnonymous}
}

// Authenticated 报告调用方是否已通过认证。
func (a Actor) Authenticated() bool {
	return a.Role != RoleAnonymous && a.ID != ""
}

// Action 表示调用方试图执行的操作。
type Action string

// 操作常量
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind 表示操作目标的种类。
type ResourceKind string

// 资源种类常量
const (
	ResourceArticle        ResourceKind = "article"
	ResourceCategory       ResourceKind = "category"
	ResourceMessage        ResourceKind = "message"
	ResourceDashboardStats ResourceKind = "dashboard_stats"
)

// Resource 表示操作目标。OwnerID 只对文章有意义，其余种类留空。
type Resource struct {
	Kind    ResourceKind
	ID      string
	OwnerID string
}

// ArticleResource 构造文章资源。
func ArticleResource(id, ownerID string) Resource {
	return Resource{Kind: ResourceArticle, ID: id, OwnerID: ownerID}
}

// CategoryResource 构造分类资源。
func CategoryResource(id string) Resource {
	return Resource{Kind: ResourceCategory, ID: id}
}

// MessageResource 构造留言/订阅者资源。
func MessageResource(id string) Resource {
	return Resource{Kind: ResourceMessage, ID: id}
}

// DashboardStatsResource 构造后台统计面板资源。
func DashboardStatsResource() Resource {
	return Resource{Kind: ResourceDashboardStats}
}
