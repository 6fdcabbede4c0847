package models

import (
	"time"

	"gorm.io/datatypes"
)

// 提交记录状态
const (
	SubmissionStatusSubmitted      = "submitted"
	SubmissionStatusPendingConfirm = "pending_confirm"
	SubmissionStatusConfirmed      = "confirmed"
)

// Submission 一次字段提交的不可变快照
// Diff 为与上一次记录状态逐字段比较的结果，PrevID 串联同一实体的提交链
type Submission struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionNameID int64          `gorm:"index:idx_sub_version" json:"app_version_name_id"`
	SubmitVersion    int64          `gorm:"index:idx_sub_version" json:"submit_version"` // 版本内全局唯一
	ModuleKey        string         `gorm:"type:varchar(100);index" json:"module_key"`
	EntityTable      string         `gorm:"type:varchar(100);index:idx_sub_entity" json:"entity_table"`
	EntityID         int64          `gorm:"index:idx_sub_entity" json:"entity_id"`
	Payload          datatypes.JSON `gorm:"type:json" json:"payload"`
	Diff             datatypes.JSON `gorm:"type:json" json:"diff"`
	NeedConfirm      bool           `gorm:"default:false" json:"need_confirm"`
	Status           string         `gorm:"type:varchar(50);index" json:"status"`
	PrevID           int64          `gorm:"default:0" json:"prev_id"` // 同一实体上一次提交
	SubmitBy         string         `gorm:"type:varchar(255)" json:"submit_by"`
	ConfirmedBy      string         `gorm:"type:varchar(255)" json:"confirmed_by"`
	ConfirmedAt      *time.Time     `json:"confirmed_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// FieldHistory 每个变更字段一行，独立于提交JSON可查询，只增不改
type FieldHistory struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmissionID     int64          `gorm:"index" json:"submission_id"`
	AppVersionNameID int64          `gorm:"index" json:"app_version_name_id"`
	ModuleKey        string         `gorm:"type:varchar(100)" json:"module_key"`
	EntityTable      string         `gorm:"type:varchar(100);index:idx_fh_entity" json:"entity_table"`
	EntityID         int64          `gorm:"index:idx_fh_entity" json:"entity_id"`
	FieldName        string         `gorm:"type:varchar(255)" json:"field_name"`
	OldValue         datatypes.JSON `gorm:"type:json" json:"old_value"`
	NewValue         datatypes.JSON `gorm:"type:json" json:"new_value"`
	SubmitBy         string         `gorm:"type:varchar(255)" json:"submit_by"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (FieldHistory) TableName() string {
	return "field_histories"
}
