package views

import (
	"github.com/gin-gonic/gin"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/response"
	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/services"
)

type VersionData struct {
	AppVersionName   string `json:"app_version_name" binding:"required"`
	LocationName     string `json:"location_name" binding:"required"`
	FeishuFieldNames string `json:"feishu_field_names"`
	AiModal          string `json:"ai_modal"`
}

// AddVersion 新建草稿版本
func (uc *UserController) AddVersion(c *gin.Context) {
	var data VersionData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	DB := models.DB
	var count int64
	DB.Model(&models.AppVersionName{}).
		Where("app_version_name = ? AND location_name = ?", data.AppVersionName, data.LocationName).
		Count(&count)
	if count > 0 {
		response.Conflict(c, "同名草稿版本已存在")
		return
	}

	version := models.AppVersionName{
		AppVersionName:   data.AppVersionName,
		LocationName:     data.LocationName,
		FeishuFieldNames: data.FeishuFieldNames,
		AiModal:          data.AiModal,
		DraftStatus:      models.DraftStatusEditing,
	}
	if err := DB.Create(&version).Error; err != nil {
		response.InternalError(c, err.Error())
		return
	}

	services.WriteAudit(DB, currentUsername(c), models.AuditActionCreate, services.ModuleVersionNames,
		"app_version_names", version.ID, map[string]interface{}{"app_version_name": data.AppVersionName})
	response.Success(c, version)
}

// GetVersionList 草稿版本列表，新的在前
func (uc *UserController) GetVersionList(c *gin.Context) {
	var versions []models.AppVersionName
	if err := models.DB.Order("id DESC").Find(&versions).Error; err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, versions)
}
