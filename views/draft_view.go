package views

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/services"
)

type UserController struct{}

type SubmitData struct {
	DraftVersionID int64                  `json:"draft_version_id" binding:"required"`
	ModuleKey      string                 `json:"module_key" binding:"required"`
	EntityTable    string                 `json:"entity_table" binding:"required"`
	EntityID       int64                  `json:"entity_id" binding:"required"`
	Payload        map[string]interface{} `json:"payload" binding:"required"`
}

// Submit 提交一次字段变更，返回差异与是否需要确认
func (uc *UserController) Submit(c *gin.Context) {
	var data SubmitData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	service := services.NewSubmitService(models.DB)
	result, err := service.Submit(&services.SubmitRequest{
		AppVersionNameID: data.DraftVersionID,
		ModuleKey:        data.ModuleKey,
		EntityTable:      data.EntityTable,
		EntityID:         data.EntityID,
		SubmitBy:         currentUsername(c),
		Payload:          data.Payload,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"submission_id":  result.SubmissionID,
		"submit_version": result.SubmitVersion,
		"status":         result.Status,
		"need_confirm":   result.NeedConfirm,
		"diff":           result.Diff,
	})
}

type ConfirmData struct {
	SubmissionID int64 `json:"submission_id" binding:"required"`
}

// Confirm 确认一条待确认提交，重复确认报冲突
func (uc *UserController) Confirm(c *gin.Context) {
	var data ConfirmData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	service := services.NewSubmitService(models.DB)
	if err := service.Confirm(data.SubmissionID, currentUsername(c)); err != nil {
		renderServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "确认成功", gin.H{"ok": true})
}

// GetSubmissions 按版本/模块/实体过滤提交记录，提交人已换展示名
func (uc *UserController) GetSubmissions(c *gin.Context) {
	versionID, _ := strconv.ParseInt(c.Query("draft_version_id"), 10, 64)
	entityID, _ := strconv.ParseInt(c.Query("entity_id"), 10, 64)

	service := services.NewSubmitService(models.DB)
	items, err := service.ListSubmissions(&services.SubmissionQuery{
		AppVersionNameID: versionID,
		ModuleKey:        c.Query("module_key"),
		EntityTable:      c.Query("entity_table"),
		EntityID:         entityID,
	})
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, items)
}
