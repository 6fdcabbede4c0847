package services

import (
	"encoding/json"
	"log"

	"github.com/liunian-zy/shushu-app-ui-dashboard-sub001/models"
	"gorm.io/gorm"
)

// WriteAudit 落一条操作流水，detail 序列化失败不阻断主流程
func WriteAudit(db *gorm.DB, username, action, moduleKey, targetTable string, targetID int64, detail interface{}) {
	row := models.AuditLog{
		Username:    username,
		Action:      action,
		ModuleKey:   moduleKey,
		TargetTable: targetTable,
		TargetID:    targetID,
	}
	if detail != nil {
		if data, err := json.Marshal(detail); err == nil {
			row.Detail = data
		}
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("写入审计日志失败: %v", err)
	}
}
