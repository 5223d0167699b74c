package service

import (
	"go.uber.org/zap"

	"enlistment/backend/config"
	"enlistment/backend/internal/repository"
	"enlistment/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Enlist   EnlistService
	Section  SectionService
	Catalog  CatalogService
	Export   ExportService
	Calendar CalendarService
}

// NewService 创建 Service 聚合
// blacklist 可为 nil（Redis 不可用时登出仅依赖 Token 自然过期）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, blacklist, logger),
		Enlist:   NewEnlistService(&cfg.Enlist, repo, logger),
		Section:  NewSectionService(&cfg.Enlist, repo, logger),
		Catalog:  NewCatalogService(repo, logger),
		Export:   NewExportService(&cfg.Term, repo, logger),
		Calendar: NewCalendarService(&cfg.Term, repo, logger),
	}
}
