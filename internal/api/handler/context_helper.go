package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"enlistment/backend/internal/api/middleware"
	"enlistment/backend/pkg/response"
)

// MustGetRole 从 Gin 上下文中安全提取 role。
// JWT 中间件未注入时写入 401 响应，调用方应在 ok=false 时直接 return。
func MustGetRole(c *gin.Context) (string, bool) {
	role := c.GetString(middleware.CtxRole)
	if role == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return role, true
}

// MustGetSubjectID 提取登录身份编号（学号或管理员编号）
func MustGetSubjectID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.GetString(middleware.CtxSubject))
	if err != nil || id <= 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}

// tokenMeta 当前 Token 的 jti 与过期时间（登出使用）
func tokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.CtxTokenID), c.GetTime(middleware.CtxExpiresAt)
}
