package models

import "time"

// 草稿状态
const (
	DraftStatusEditing   = "editing"
	DraftStatusSubmitted = "submitted"
)

// 同步状态
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusFailed  = "failed"
)

// AppVersionName 草稿版本，一条记录圈定一份可编辑的配置快照
// (app_version_name, location_name) 唯一确定一个版本
type AppVersionName struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionName   string     `gorm:"type:varchar(255);index" json:"app_version_name"`
	LocationName     string     `gorm:"type:varchar(255)" json:"location_name"`
	FeishuFieldNames string     `gorm:"type:varchar(255)" json:"feishu_field_names"`
	AiModal          string     `gorm:"type:varchar(255)" json:"ai_modal"`
	Status           int        `gorm:"default:1" json:"status"`
	DraftStatus      string     `gorm:"type:varchar(50);default:editing" json:"draft_status"`
	SubmitVersion    int64      `gorm:"default:0" json:"submit_version"` // 单调递增，提交时加一
	SyncStatus       string     `gorm:"type:varchar(50)" json:"sync_status"`
	SyncMessage      string     `gorm:"type:varchar(500)" json:"sync_message"`
	SyncedAt         *time.Time `json:"synced_at"`
	ConfirmedBy      string     `gorm:"type:varchar(255)" json:"confirmed_by"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	TargetID         int64      `gorm:"default:0" json:"target_id"` // 上次同步到的生产版本ID
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppVersionName) TableName() string {
	return "app_version_names"
}

// ProdAppVersionName 生产版本表，与草稿表独立编号
type ProdAppVersionName struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppVersionName   string    `gorm:"type:varchar(255);index" json:"app_version_name"`
	LocationName     string    `gorm:"type:varchar(255)" json:"location_name"`
	FeishuFieldNames string    `gorm:"type:varchar(255)" json:"feishu_field_names"`
	AiModal          string    `gorm:"type:varchar(255)" json:"ai_modal"`
	Status           int       `gorm:"default:1" json:"status"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProdAppVersionName) TableName() string {
	return "prod_app_version_names"
}
