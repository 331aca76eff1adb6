package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultAccessTTL = 30 * time.Minute

// TokenService 负责 API 客户端访问令牌的签发与校验（HS256）。
type TokenService struct {
	Secret    []byte
	Issuer    string
	AccessTTL time.Duration
}

// NewTokenService 创建 TokenService，ttl 为零时使用默认 30 分钟。
func NewTokenService(secret, issuer string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return TokenService{Secret: []byte(secret), Issuer: issuer, AccessTTL: ttl}
}

// CreateAccessToken 为指定用户签发访问令牌，返回令牌与过期时间（unix 秒）。
func (t TokenService) CreateAccessToken(userID, email string, role Role) (string, int64, error) {
	now := time.Now().UTC()
	expires := now.Add(t.AccessTTL)
	claims := jwt.MapClaims{
		"iss":   t.Issuer,
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"typ":   "access",
		"iat":   now.Unix(),
		"exp":   expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, expires.Unix(), nil
}

// ParseToken 校验令牌的签名、签发者与类型，返回 subject 声明。
func (t TokenService) ParseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims["typ"] != "access" {
		return "", errors.New("invalid token type")
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", errors.New("missing subject")
	}
	return subject, nil
}
