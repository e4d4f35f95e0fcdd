package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrForbidden        = errors.New("无权操作该资源")
	ErrActionConflict   = errors.New("并发操作冲突，请稍后重试")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrCategoryNotFound: NotFound,
	ErrPostNotFound:     NotFound,
	ErrCommentNotFound:  NotFound,
	ErrForbidden:        Forbidden,
	ErrActionConflict:   Conflict,
	UnExpectedError:     InternalServerError,
}
