package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"enlistment/backend/internal/domain"
	"enlistment/backend/pkg/response"
)

// ── 领域错误码 ──

const (
	codeCapacityExceeded   = 12001
	codeScheduleConflict   = 12002
	codeNotEnrolled        = 12003
	codeInvalidState       = 12004
	codeConcurrencyExhaust = 12005
	codeNotFound           = 12006
	codeDuplicateSection   = 13002
	codeRequestCanceled    = 10006
)

// handleDomainError 将领域错误写入统一响应；无法识别时返回 false
//
// 业务规则拒绝为 409 / 422 / 404，重试耗尽为 503（客户端可稍后重试）。
func handleDomainError(c *gin.Context, err error) bool {
	var (
		capErr    *domain.CapacityExceededError
		conflict  *domain.ScheduleConflictError
		notEnroll *domain.NotEnrolledError
		state     *domain.InvalidStateError
		notFound  *domain.NotFoundError
		duplicate *domain.DuplicateSectionError
		exhausted *domain.ConcurrencyExhaustedError
	)
	switch {
	case errors.As(err, &capErr):
		response.Conflict(c, codeCapacityExceeded, capErr.Error())
	case errors.As(err, &conflict):
		response.Conflict(c, codeScheduleConflict, conflict.Error())
	case errors.As(err, &notEnroll):
		response.UnprocessableEntity(c, codeNotEnrolled, notEnroll.Error())
	case errors.As(err, &state):
		response.Conflict(c, codeInvalidState, state.Error())
	case errors.As(err, &notFound):
		response.NotFound(c, codeNotFound, notFound.Error())
	case errors.As(err, &duplicate):
		response.Conflict(c, codeDuplicateSection, duplicate.Error())
	case errors.As(err, &exhausted):
		response.ServiceUnavailable(c, codeConcurrencyExhaust, exhausted.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.ServiceUnavailable(c, codeRequestCanceled, "请求已取消或超时")
	default:
		return false
	}
	return true
}
