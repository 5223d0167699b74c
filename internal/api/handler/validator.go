package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"enlistment/backend/internal/domain"
	"enlistment/backend/pkg/response"
)

// RegisterValidators 注册自定义 binding 校验规则：
//
//	days  星期组合代码（MTH / TF / WS / MW / TTH）
//	clock 墙钟时间（15:04 或 3:04PM）
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
	}
	if err := v.RegisterValidation("days", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDays(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
}

// bindJSON 绑定请求体；失败时写入 400（字段校验失败附带字段名）或 413
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return false
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", fe.Field()+": "+fe.Tag())
		return false
	}
	response.BadRequest(c, 10001, "参数校验失败")
	return false
}
