package models

import (
	"time"

	"gorm.io/datatypes"
)

// 审计动作
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionSubmit  = "submit"
	AuditActionConfirm = "confirm"
	AuditActionSync    = "sync"
)

// AuditLog 操作流水，只增不改
type AuditLog struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string         `gorm:"type:varchar(255);index" json:"username"`
	Action      string         `gorm:"type:varchar(50);index" json:"action"`
	ModuleKey   string         `gorm:"type:varchar(100)" json:"module_key"`
	TargetTable string         `gorm:"type:varchar(100)" json:"target_table"`
	TargetID    int64          `gorm:"default:0" json:"target_id"`
	Detail      datatypes.JSON `gorm:"type:json" json:"detail"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
