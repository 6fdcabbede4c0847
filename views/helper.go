package views

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/services"
)

// renderServiceError 服务层错误分类映射到状态码
// 校验错误整批带回，其余给单条消息
func renderServiceError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		response.BadRequestWithData(c, "校验未通过", verrs)
		return
	}
	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		response.Conflict(c, conflict.Message)
		return
	}
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		response.NotFound(c, notFound.Message)
		return
	}
	response.InternalError(c, err.Error())
}
