package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/service"
	"enlistment/backend/pkg/response"
)

// CatalogHandler 教室 / 课程 / 学生档案（管理员）
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// CreateRoom POST /api/v1/rooms
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.catalogSvc.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, result)
}

// ListRooms GET /api/v1/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.catalogSvc.ListRooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rooms})
}

// CreateSubject POST /api/v1/subjects
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.catalogSvc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, result)
}

// ListSubjects GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": subjects})
}

// CreateStudent POST /api/v1/students
func (h *CatalogHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.catalogSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, result)
}

// SectionPage 建班表单数据
// GET /api/v1/sections/page
func (h *CatalogHandler) SectionPage(c *gin.Context) {
	page, err := h.catalogSvc.SectionPage(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, page)
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomExists):
		response.Conflict(c, 14001, "教室已存在")
	case errors.Is(err, service.ErrSubjectExists):
		response.Conflict(c, 14002, "课程已存在")
	case errors.Is(err, service.ErrStudentExists):
		response.Conflict(c, 14003, "学号已存在")
	default:
		response.InternalError(c)
	}
}
