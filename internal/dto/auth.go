package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// 学生以学号登录，管理员以管理员编号登录
type LoginRequest struct {
	Role     string `json:"role"     binding:"required,oneof=student admin"`
	ID       int    `json:"id"       binding:"required,min=1"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse Token 响应
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"` // Access Token 有效期（秒）
	Profile     ProfileResponse `json:"profile"`
}

// ProfileResponse 当前登录者信息（GET /auth/me）
type ProfileResponse struct {
	ID        int    `json:"id"`
	Role      string `json:"role"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}
