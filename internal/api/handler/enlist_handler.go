package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/service"
	"enlistment/backend/pkg/response"
)

// EnlistHandler 选课模块 HTTP 处理器（学生）
type EnlistHandler struct {
	enlistSvc   service.EnlistService
	calendarSvc service.CalendarService
}

// NewEnlistHandler 创建 EnlistHandler
func NewEnlistHandler(enlistSvc service.EnlistService, calendarSvc service.CalendarService) *EnlistHandler {
	return &EnlistHandler{enlistSvc: enlistSvc, calendarSvc: calendarSvc}
}

// Execute 选课或退选
// POST /api/v1/enlist
func (h *EnlistHandler) Execute(c *gin.Context) {
	studentNumber, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	var req dto.EnlistRequest
	if !bindJSON(c, &req) {
		return
	}
	action, err := domain.ParseAction(req.Action)
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	result, err := h.enlistSvc.Execute(c.Request.Context(), studentNumber, req.SectionID, action)
	if err != nil {
		if !handleDomainError(c, err) {
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Overview 已选班级与可选班级
// GET /api/v1/enlist
func (h *EnlistHandler) Overview(c *gin.Context) {
	studentNumber, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	result, err := h.enlistSvc.Overview(c.Request.Context(), studentNumber)
	if err != nil {
		if !handleDomainError(c, err) {
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Calendar 导出课表 (.ics)
// GET /api/v1/enlist/calendar
func (h *EnlistHandler) Calendar(c *gin.Context) {
	studentNumber, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	data, filename, err := h.calendarSvc.Timetable(c.Request.Context(), studentNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCalendarNoSections):
			response.NotFound(c, 12101, "尚未选任何班级")
		case handleDomainError(c, err):
		default:
			response.InternalError(c)
		}
		return
	}
	response.Attachment(c, filename, "text/calendar; charset=utf-8", data)
}
