package service

import (
	"errors"
	"strconv"

	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

// IdentityStore 以 users 表为身份源，实现 auth.IdentityProvider。
type IdentityStore struct {
	db *gorm.DB
}

// NewIdentityStore 创建 IdentityStore。
func NewIdentityStore(gdb *gorm.DB) *IdentityStore {
	return &IdentityStore{db: gdb}
}

// IdentityByID 按用户 ID 查询档案。ID 不合法或账号不存在返回 (nil, nil)；
// 存储故障原样上抛，调用方据此区分"没登录"与"查不了"。
func (s *IdentityStore) IdentityByID(userID string) (*auth.Identity, error) {
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil || id == 0 {
		return nil, nil
	}

	var user db.User
	if err := s.db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	role := auth.RoleAuthor
	if user.Role == db.RoleAdmin {
		role = auth.RoleAdmin
	}

	return &auth.Identity{
		ID:    strconv.FormatUint(uint64(user.ID), 10),
		Role:  role,
		Email: user.Email,
	}, nil
}
