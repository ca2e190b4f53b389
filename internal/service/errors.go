package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户已存在")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrFileTooLarge      = errors.New("文件过大")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrPostForbidden     = errors.New("只能操作自己的帖子")
	ErrSysBoxNotFound    = errors.New("系统通知不存在")
	ErrSysBoxDisabled    = errors.New("系统通知未启用")
	ErrStorageDisabled   = errors.New("文件存储未启用")
	ErrMetricsDisabled   = errors.New("统计服务未启用")
	ErrMetricsNotReady   = errors.New("统计数据尚未生成")
	ErrPushDisabled      = errors.New("实时推送未启用")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrFileNotSupported:  BadRequest,
	ErrFileTooLarge:      BadRequest,
	ErrPostNotFound:      NotFound,
	ErrPostForbidden:     Forbidden,
	ErrSysBoxNotFound:    NotFound,
	ErrSysBoxDisabled:    ServiceUnavailable,
	ErrStorageDisabled:   ServiceUnavailable,
	ErrMetricsDisabled:   ServiceUnavailable,
	ErrMetricsNotReady:   NotFound,
	ErrPushDisabled:      ServiceUnavailable,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
