package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/repository"
	"enlistment/backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// TokenBlacklist Token 黑名单（由 pkg/redis.Client 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, role string, id int) (*dto.ProfileResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询账号
	profile, hash, err := s.lookup(ctx, req.Role, req.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.String("role", req.Role), zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(strconv.Itoa(req.ID), req.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Profile:     *profile,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		s.logger.Warn("Redis 不可用，登出仅依赖 Token 自然过期", zap.String("jti", jti))
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, role string, id int) (*dto.ProfileResponse, error) {
	profile, _, err := s.lookup(ctx, role, id)
	return profile, err
}

// lookup 按角色查询账号，返回资料与密码哈希
func (s *authService) lookup(ctx context.Context, role string, id int) (*dto.ProfileResponse, string, error) {
	switch role {
	case jwt.RoleStudent:
		student, err := s.repo.Student.GetByNumber(ctx, id)
		if err != nil {
			return nil, "", mapUserErr(err)
		}
		return &dto.ProfileResponse{
			ID:        student.StudentNumber,
			Role:      role,
			Firstname: student.Firstname,
			Lastname:  student.Lastname,
		}, student.PasswordHash, nil
	case jwt.RoleAdmin:
		admin, err := s.repo.Admin.GetByID(ctx, id)
		if err != nil {
			return nil, "", mapUserErr(err)
		}
		return &dto.ProfileResponse{
			ID:        admin.AdminID,
			Role:      role,
			Firstname: admin.Firstname,
			Lastname:  admin.Lastname,
		}, admin.PasswordHash, nil
	default:
		return nil, "", ErrUserNotFound
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
