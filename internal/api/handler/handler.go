package handler

import "enlistment/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Enlist  *EnlistHandler
	Section *SectionHandler
	Catalog *CatalogHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Enlist:  NewEnlistHandler(svc.Enlist, svc.Calendar),
		Section: NewSectionHandler(svc.Section),
		Catalog: NewCatalogHandler(svc.Catalog),
		Export:  NewExportHandler(svc.Export),
	}
}
