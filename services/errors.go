package services

import (
	"fmt"
	"strings"
)

// 错误分类：校验错误整批返回，冲突与未找到由视图层映射为对应状态码

// FieldError 单条校验错误，定位到模块和字段
type FieldError struct {
	Module  string `json:"module"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("[%s.%s] %s", fe.Module, fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
