package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 权限点
const (
	PermItemWrite  = "item:write"
	PermDMRNCreate = "dmrn:create"
	PermItemExport = "item:export"
	PermAll        = "*"
)

// JWTClaims JWT claims
type JWTClaims struct {
	UserID      string   `json:"uid"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"perms"`
	jwt.RegisteredClaims
}

func abort(c *gin.Context, status, code int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": msg})
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// JWTAuth JWT认证中间件，issuer 非空时校验 iss
func JWTAuth(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, 40100, "Authorization is required")
			return
		}

		claims := &JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, 40102, "Invalid or expired token")
			return
		}
		if claims.UserID == "" {
			claims.UserID, _ = claims.GetSubject()
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserName, claims.Name)
		c.Set(KeyUserEmail, claims.Email)
		c.Set(KeyRoles, claims.Roles)
		c.Set(KeyPermissions, claims.Permissions)
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// RequirePermission 权限检查中间件，"*" 视为拥有全部权限
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms := c.GetStringSlice(KeyPermissions)
		if slices.Contains(perms, permission) || slices.Contains(perms, PermAll) {
			c.Next()
			return
		}
		abort(c, http.StatusForbidden, 40302, "Permission denied: "+permission)
	}
}
