package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/service"
	"enlistment/backend/pkg/response"
)

// SectionHandler 班级模块 HTTP 处理器
type SectionHandler struct {
	sectionSvc service.SectionService
}

// NewSectionHandler 创建 SectionHandler
func NewSectionHandler(sectionSvc service.SectionService) *SectionHandler {
	return &SectionHandler{sectionSvc: sectionSvc}
}

// Create 新建班级（管理员）
// POST /api/v1/sections
func (h *SectionHandler) Create(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.sectionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.Created(c, result)
}

// List 班级列表（分页）
// GET /api/v1/sections
func (h *SectionHandler) List(c *gin.Context) {
	var req dto.SectionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.sectionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 班级详情
// GET /api/v1/sections/:id
func (h *SectionHandler) Get(c *gin.Context) {
	result, err := h.sectionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *SectionHandler) handleSectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSchedule):
		response.BadRequest(c, 13001, err.Error())
	case errors.Is(err, domain.ErrInvalidSectionID):
		response.BadRequest(c, 13003, err.Error())
	case handleDomainError(c, err):
	default:
		response.InternalError(c)
	}
}
