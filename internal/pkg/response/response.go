package response

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = service.BadRequest
	Unauthorized        = service.Unauthorized
	Forbidden           = service.Forbidden
	NotFound            = service.NotFound
	InternalServerError = service.InternalServerError
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误，未登记的错误统一按系统异常返回
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}
	if errors.Is(err, util.ErrValidation) {
		Fail(c, BadRequest, err.Error())
		return
	}
	if isJSONError(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		log.ErrorContext(c.Request.Context(), "unexpected error", "path", c.FullPath(), "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, err.Error())
}

// isJSONError gin 绑定使用标准库解码，事件消息使用 go-json，两者都要识别
func isJSONError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	var stdTypeError *stdjson.UnmarshalTypeError
	var stdSyntaxError *stdjson.SyntaxError
	return errors.As(err, &unmarshalTypeError) || errors.As(err, &syntaxError) ||
		errors.As(err, &stdTypeError) || errors.As(err, &stdSyntaxError)
}
