package views

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/services"
)

type SyncData struct {
	DraftVersionID int64    `json:"draft_version_id" binding:"required"`
	Confirm        bool     `json:"confirm"` // 覆盖同名生产版本需显式确认
	Modules        []string `json:"modules"`
}

// StartSync 配置后台侧触发同步，返回逐模块报告
// 校验类失败也走200带结构化明细，只有冲突和系统错误走错误状态码
func (uc *UserController) StartSync(c *gin.Context) {
	var data SyncData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	service := services.NewSyncService(models.DB)
	result, err := service.Sync(&services.SyncRequest{
		AppVersionNameID: data.DraftVersionID,
		TriggeredBy:      currentUsername(c),
		Overwrite:        data.Confirm,
		Modules:          data.Modules,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// SyncPush 生产端接收推送快照，导入本地草稿后走同一套同步编排
func (uc *UserController) SyncPush(c *gin.Context) {
	var data services.PushRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if data.TriggeredBy == "" {
		data.TriggeredBy = "push"
	}

	service := services.NewSyncService(models.DB)
	result, err := service.ImportAndSync(&data)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// GetPushPayload 导出草稿快照，即 /sync/push 的请求体
// 推送到生产端由运维脚本带静态密钥完成
func (uc *UserController) GetPushPayload(c *gin.Context) {
	versionID, err := strconv.ParseInt(c.Query("draft_version_id"), 10, 64)
	if err != nil || versionID <= 0 {
		response.BadRequest(c, "draft_version_id 参数错误")
		return
	}

	service := services.NewSyncService(models.DB)
	payload, err := service.BuildPushPayload(versionID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, payload)
}

// GetSyncJobs 某版本的模块同步记录
func (uc *UserController) GetSyncJobs(c *gin.Context) {
	versionID, err := strconv.ParseInt(c.Query("draft_version_id"), 10, 64)
	if err != nil || versionID <= 0 {
		response.BadRequest(c, "draft_version_id 参数错误")
		return
	}

	service := services.NewSyncService(models.DB)
	jobs, err := service.ListModuleJobs(versionID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, jobs)
}
